package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nolancacheux/webscrapping-clubs/internal/club"
)

// District sites render their club listing as anchors pointing at the
// identifier-addressed detail page (recherche-clubs?scl=N). The listing
// strategy collects those anchors in document order; the detail strategy
// reads the label/value markup older district templates still serve.

// districtList extracts (name, detail link) pairs from a listing page.
// Entries are deduplicated by detail URL, keeping first occurrence order.
func districtList(doc *goquery.Document, baseURL string) []ListEntry {
	entries := make([]ListEntry, 0)
	seen := make(map[string]bool)

	collect := func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		name := strings.TrimSpace(sel.Text())
		if name == "" {
			// Some templates wrap the name in a child heading.
			name = strings.TrimSpace(sel.Find("h3, .club-name, span").First().Text())
		}
		if name == "" {
			return
		}
		detail := absoluteURL(baseURL, href)
		if seen[detail] {
			return
		}
		seen[detail] = true
		entries = append(entries, ListEntry{Name: name, DetailURL: detail})
	}

	// Preferred: the structured results container.
	doc.Find(".resultats-clubs a[href*='scl='], ul.list-clubs li a").Each(collect)

	// Fallback: any anchor addressing a club detail page.
	if len(entries) == 0 {
		doc.Find("a[href*='scl=']").Each(collect)
	}
	return entries
}

// districtDetail extracts a club from a district detail page. It reads the
// structured label markup first and falls back to the SPA strategy, since
// several districts migrated to the same Angular component.
func districtDetail(doc *goquery.Document, rawHTML, sourceURL, sourceID string) *club.Record {
	name := strings.TrimSpace(doc.Find(".club-infos h1, h1.club-name").First().Text())
	if name == "" || !plausibleName(name) {
		return sclDetail(doc, rawHTML, sourceURL, sourceID)
	}

	rec := &club.Record{
		Name:      name,
		SourceURL: sourceURL,
		SourceID:  sourceID,
	}

	if m := affiliationPattern.FindStringSubmatch(rawHTML); m != nil {
		rec.Affiliation = m[1]
	}

	principal, officiel, email := extractEmails(rawHTML)
	rec.PrimaryEmail = principal
	rec.OfficialEmail = officiel
	rec.Email = email
	rec.Phone = extractPhone(rawHTML)
	rec.Address = extractAddress(doc, rawHTML)
	return rec
}
