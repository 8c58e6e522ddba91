// Package normalize derives canonical keys from club names so that spelling
// variants of the same club compare equal: "A. S. SAFRAN BORDEAUX" and
// "AS Safran Bordeaux" both canonicalize to "safran bordeaux".
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes to NFD, drops combining marks, and recomposes,
// turning "Étoile" into "Etoile".
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stopTokens are articles plus legal-entity and club-structure abbreviations
// that carry no identity. Single-letter tokens are dropped separately, which
// also covers dotted forms like "A. S." once punctuation is stripped.
var stopTokens = map[string]struct{}{
	"de":          {},
	"du":          {},
	"des":         {},
	"le":          {},
	"la":          {},
	"les":         {},
	"as":          {},
	"fc":          {},
	"us":          {},
	"es":          {},
	"sc":          {},
	"cs":          {},
	"aj":          {},
	"ca":          {},
	"js":          {},
	"asso":        {},
	"association": {},
	"club":        {},
	"sportif":     {},
	"sportive":    {},
	"sportifs":    {},
	"amicale":     {},
	"entente":     {},
	"etoile":      {},
	"olympique":   {},
	"stade":       {},
	"football":    {},
	"foot":        {},
}

// Key returns the canonical key for a club name: lower-cased, accent-free,
// punctuation collapsed to spaces, stop tokens and single letters removed,
// whitespace collapsed. Key is idempotent: Key(Key(s)) == Key(s).
func Key(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}
	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	kept := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len([]rune(tok)) < 2 {
			continue
		}
		if _, stop := stopTokens[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}

	// A name made entirely of stop tokens ("Football Club") would otherwise
	// canonicalize to nothing; keep the undiscriminated form instead.
	if len(kept) == 0 {
		return strings.Join(fields, " ")
	}
	return strings.Join(kept, " ")
}
