package extract

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nolancacheux/webscrapping-clubs/internal/club"
)

// Layout tags select the extraction strategy for a page. The tag travels
// with each endpoint in the persisted registry.
const (
	// LayoutDistrictList is a district's club listing page.
	LayoutDistrictList = "district-list"
	// LayoutDistrictDetail is a district club page with label/value markup.
	LayoutDistrictDetail = "district-detail"
	// LayoutSCLDetail is the identifier-addressed Angular club page.
	LayoutSCLDetail = "scl-detail"
)

// ErrNoExtractor reports that no strategy is registered for a layout tag.
var ErrNoExtractor = errors.New("no extractor for layout")

// ListEntry is one (club name, detail link) pair from a listing page.
type ListEntry struct {
	Name      string
	DetailURL string
}

type listFunc func(doc *goquery.Document, baseURL string) []ListEntry

type detailFunc func(doc *goquery.Document, rawHTML, sourceURL, sourceID string) *club.Record

var listStrategies = map[string]listFunc{
	LayoutDistrictList: districtList,
}

var detailStrategies = map[string]detailFunc{
	LayoutDistrictDetail: districtDetail,
	LayoutSCLDetail:      sclDetail,
}

// List extracts the (name, detail link) entries of a listing page using the
// strategy for the given layout tag.
func List(layout, html, baseURL string) ([]ListEntry, error) {
	strategy, ok := listStrategies[layout]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoExtractor, layout)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing list page: %w", err)
	}
	return strategy(doc, baseURL), nil
}

// Detail extracts a club record from a detail page using the strategy for
// the given layout tag. A nil record with nil error means the page holds no
// club (the identifier is skipped by the caller).
func Detail(layout, html, sourceURL, sourceID string) (*club.Record, error) {
	strategy, ok := detailStrategies[layout]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoExtractor, layout)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing detail page: %w", err)
	}
	return strategy(doc, html, sourceURL, sourceID), nil
}

// emailPattern is the minimal local@domain.tld shape an extracted email must
// satisfy; anything else is dropped silently rather than failing the record.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// validEmail reports whether s looks like an email address.
func validEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// cleanEmail trims s and returns it if it validates, "" otherwise. Comma
// separated lists yield their first entry.
func cleanEmail(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if !validEmail(s) {
		return ""
	}
	return s
}

var digitsOnly = regexp.MustCompile(`[^\d]`)

// cleanPhone keeps only digits and requires at least six of them; some rural
// club lines are shorter than the national ten-digit format.
func cleanPhone(s string) string {
	p := digitsOnly.ReplaceAllString(s, "")
	if len(p) < 6 {
		return ""
	}
	return p
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// flattenHTML strips tags and collapses whitespace.
func flattenHTML(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(tagPattern.ReplaceAllString(s, " "), " "))
}

// absoluteURL resolves href against the endpoint base URL.
func absoluteURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
