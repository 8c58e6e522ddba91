package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/nolancacheux/webscrapping-clubs/internal/club"
)

// The identifier-addressed club pages are rendered by an Angular component.
// The markup is unstable across districts, so extraction layers several
// strategies: structured headings first, raw-HTML regexes second, the page
// title last. Labels and their ordering come from the federation pages
// themselves ("N°affiliation", "Email principal", "Téléphone travail", ...).

var affiliationPattern = regexp.MustCompile(`(?i)N[°\s]*affiliation[:\s]*(\d+)`)

// navWords mark headings that belong to site chrome, not to the club.
var navWords = []string{
	"accueil", "gironde", "paris", "ensemble", "ecrivons", "écrivons",
	"resultats", "résultats", "calendrier", "equipes", "équipes", "staff",
	"terrains", "siege social", "siège social", "n°affiliation",
	"installations", "rencontres", "prochaines", "dernieres", "dernières",
}

// plausibleName filters heading text down to strings that can be a club
// name: 5 to 100 runes, at least one letter, more than one word or longer
// than 8 runes, and not a navigation heading. "District de la Gironde" is
// chrome, but "CLUB DISTRICT GERS" and "CLUB LIGUE ALSACE" are real clubs.
func plausibleName(text string) bool {
	n := len([]rune(text))
	if n <= 5 || n >= 100 {
		return false
	}
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}
	if len(strings.Fields(text)) == 1 && n <= 8 {
		return false
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "club ligue") {
		return true
	}
	for _, w := range navWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	if strings.Contains(lower, "district de") && !strings.Contains(lower, "club district") {
		return false
	}
	return true
}

var namePatterns = []*regexp.Regexp{
	// h1 immediately before the affiliation h2
	regexp.MustCompile(`(?is)<h1[^>]*>([A-Z][A-Z\s\.\-']{5,80}?)</h1>\s*<h2[^>]*>N[°\s]*affiliation`),
	// h2 holding both the name and the affiliation line
	regexp.MustCompile(`(?is)<h2[^>]*>([A-Z][A-Z\s\.\-']{5,80}?)</h2>\s*N[°\s]*affiliation[:\s]*\d+`),
	// upper-case run directly before the affiliation marker in flat text
	regexp.MustCompile(`(?is)([A-Z][A-Z\s\.\-']{5,80}?)\s*N[°\s]*affiliation[:\s]*\d+`),
}

// extractName runs the heading, regex, and title strategies in order.
func extractName(doc *goquery.Document, rawHTML string) string {
	var name string

	// Strategy 1: headings near the Angular club component.
	doc.Find("app-club h1, .club-title h1, h1, h2").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if plausibleName(text) {
			name = text
			return false
		}
		return true
	})
	if name != "" {
		return name
	}

	// Strategy 2: regexes over the raw HTML.
	for _, pattern := range namePatterns {
		if m := pattern.FindStringSubmatch(rawHTML); m != nil {
			candidate := strings.TrimSpace(m[1])
			if plausibleName(candidate) {
				return candidate
			}
		}
	}

	// Strategy 3: page title, up to the first separator.
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title != "" {
		part := strings.TrimSpace(regexp.MustCompile(`[|\-]`).Split(title, 2)[0])
		lower := strings.ToLower(part)
		if len([]rune(part)) > 5 &&
			!strings.Contains(lower, "recherche") &&
			!strings.Contains(lower, "district") {
			return part
		}
	}
	return ""
}

// labelValuePatterns builds the regex variants used for "Label : value"
// scraping in the raw HTML, with and without bold markup around the label.
func labelValuePatterns(label, valueExpr string) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`(?is)` + label + `\s*:\s*` + valueExpr),
		regexp.MustCompile(`(?is)<b>` + label + `</b>\s*:\s*` + valueExpr),
		regexp.MustCompile(`(?is)` + label + `[:\s]+` + valueExpr),
	}
}

const (
	emailExpr = `([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`
	phoneExpr = `([0-9\s\.\-\(\)]{6,})`
)

// firstLabelValue returns the first capture of any pattern variant.
func firstLabelValue(rawHTML, label, valueExpr string) string {
	for _, pattern := range labelValuePatterns(label, valueExpr) {
		if m := pattern.FindStringSubmatch(rawHTML); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// extractEmails returns (principal, officiel, coalesced) honoring the page's
// priority order: principal, then officiel, then autre.
func extractEmails(rawHTML string) (principal, officiel, coalesced string) {
	principal = cleanEmail(firstLabelValue(rawHTML, "Email principal", emailExpr))
	officiel = cleanEmail(firstLabelValue(rawHTML, "Email officiel", emailExpr))
	autre := cleanEmail(firstLabelValue(rawHTML, "Email autre", emailExpr))

	switch {
	case principal != "":
		coalesced = principal
	case officiel != "":
		coalesced = officiel
	default:
		coalesced = autre
	}
	return principal, officiel, coalesced
}

// extractPhone returns the first phone in priority order: travail, domicile,
// mobile personnel, autre, then a generic Téléphone/Tel line.
func extractPhone(rawHTML string) string {
	for _, label := range []string{
		"Téléphone travail", "Téléphone domicile", "Mobile personnel", "Téléphone autre",
	} {
		if p := cleanPhone(firstLabelValue(rawHTML, label, phoneExpr)); p != "" {
			return p
		}
	}
	for _, label := range []string{"Téléphone", "Tel"} {
		if p := cleanPhone(firstLabelValue(rawHTML, label, phoneExpr)); p != "" {
			return p
		}
	}
	return ""
}

var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<b>Adresse\s*:</b>\s*<span[^>]*>([^<]+)</span>`),
	regexp.MustCompile(`(?i)Adresse\s*:\s*([^<\n]+)`),
	regexp.MustCompile(`(?i)Siège social[:\s]*([^<]+)`),
}

// extractAddress reads the registered-office block ("Siège social"), trying
// the structured span first and raw-HTML patterns second. Short fragments
// are rejected; a postal address is longer than ten characters.
func extractAddress(doc *goquery.Document, rawHTML string) string {
	var address string
	doc.Find(".txt-map-siege span").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= 10 {
			return false
		}
		text := strings.TrimSpace(sel.Text())
		if len(text) > 15 && strings.Contains(strings.ToLower(text), "adresse") {
			if m := regexp.MustCompile(`(?i)Adresse\s*:\s*(.+)`).FindStringSubmatch(text); m != nil {
				address = strings.TrimSpace(m[1])
				return false
			}
		}
		return true
	})
	if address == "" {
		for _, pattern := range addressPatterns {
			if m := pattern.FindStringSubmatch(rawHTML); m != nil {
				candidate := flattenHTML(m[1])
				if len(candidate) > 10 {
					address = candidate
					break
				}
			}
		}
	}
	return spacePattern.ReplaceAllString(address, " ")
}

// sclDetail extracts a club from the identifier-addressed Angular page.
// Returns nil when the page holds no club at that identifier.
func sclDetail(doc *goquery.Document, rawHTML, sourceURL, sourceID string) *club.Record {
	m := affiliationPattern.FindStringSubmatch(rawHTML)
	if m == nil {
		return nil
	}
	// Affiliation "0" is real for a handful of federation-level clubs, so it
	// is accepted as long as a name is found.
	affiliation := m[1]

	name := extractName(doc, rawHTML)
	if name == "" {
		return nil
	}

	principal, officiel, email := extractEmails(rawHTML)

	return &club.Record{
		Name:          name,
		Affiliation:   affiliation,
		Email:         email,
		PrimaryEmail:  principal,
		OfficialEmail: officiel,
		Phone:         extractPhone(rawHTML),
		Address:       extractAddress(doc, rawHTML),
		SourceURL:     sourceURL,
		SourceID:      sourceID,
	}
}
