// Package match pairs crawled club records with rows of the existing
// dataset. Two names match when their canonical keys are identical, or when
// the Jaro-Winkler similarity of the keys reaches the confidence threshold.
// Jaro-Winkler weighs shared prefixes, which suits club names that drift in
// their suffixes rather than their stems.
//
// Matching is pure and deterministic: exact key equality always wins, and a
// similarity tie is broken by the earliest row in dataset order.
package match

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/nolancacheux/webscrapping-clubs/internal/normalize"
)

// DefaultThreshold is the minimum similarity for a non-exact match. 0.90
// keeps abbreviation drift ("A. S. SAFRAN BORDEAUX" vs "AS Safran Bordeaux")
// matched while rejecting neighboring-town near-misses.
const DefaultThreshold = 0.90

// Decision is the matcher's verdict for one incoming record. Not persisted.
type Decision struct {
	Matched    bool
	RowKey     int
	Confidence float64
	Exact      bool
}

// NoMatch is the zero decision.
var NoMatch = Decision{}

type candidate struct {
	rowKey int
	key    string
}

// Matcher indexes the canonical keys of existing dataset rows.
type Matcher struct {
	threshold  float64
	jw         *metrics.JaroWinkler
	candidates []candidate
	exact      map[string]int // canonical key -> first row key in dataset order
}

// New creates a matcher with the given confidence threshold.
func New(threshold float64) *Matcher {
	return &Matcher{
		threshold: threshold,
		jw:        metrics.NewJaroWinkler(),
		exact:     make(map[string]int),
	}
}

// Add indexes an existing row under its club name. Rows must be added in
// dataset order; the first row registered for a key wins exact matches.
func (m *Matcher) Add(rowKey int, name string) {
	key := normalize.Key(name)
	if key == "" {
		return
	}
	m.candidates = append(m.candidates, candidate{rowKey: rowKey, key: key})
	if _, seen := m.exact[key]; !seen {
		m.exact[key] = rowKey
	}
}

// Len returns the number of indexed rows.
func (m *Matcher) Len() int {
	return len(m.candidates)
}

// Match returns the best-scoring row at or above the threshold for the given
// club name, or NoMatch if none qualifies.
func (m *Matcher) Match(name string) Decision {
	key := normalize.Key(name)
	if key == "" {
		return NoMatch
	}

	if rowKey, ok := m.exact[key]; ok {
		return Decision{Matched: true, RowKey: rowKey, Confidence: 1, Exact: true}
	}

	best := NoMatch
	for _, c := range m.candidates {
		score := strutil.Similarity(key, c.key, m.jw)
		if score >= m.threshold && score > best.Confidence {
			best = Decision{Matched: true, RowKey: c.rowKey, Confidence: score}
		}
	}
	return best
}
