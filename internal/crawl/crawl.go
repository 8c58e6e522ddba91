// Package crawl drives page extraction across a district's club listing or
// a numeric identifier range. Visits are strictly sequential: the browser
// session is shared state and the source servers expect polite pacing. Every
// page visit is bounded by a timeout, and a timeout or a page without a club
// name is a skip, never an aborted batch.
package crawl

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nolancacheux/webscrapping-clubs/internal/browser"
	"github.com/nolancacheux/webscrapping-clubs/internal/club"
	"github.com/nolancacheux/webscrapping-clubs/internal/extract"
	"github.com/nolancacheux/webscrapping-clubs/internal/logger"
	"github.com/nolancacheux/webscrapping-clubs/internal/resolver"
)

const (
	// DefaultTimeout bounds one page navigation. Five seconds is enough for
	// a live club page; unassigned identifiers simply never answer.
	DefaultTimeout = 5 * time.Second
	// DefaultSettle is the fixed delay granted to client-side rendering
	// after navigation, before extraction is attempted.
	DefaultSettle = 300 * time.Millisecond
	// DefaultPace is the minimum inter-request interval in district mode.
	DefaultPace = time.Second
	// DefaultPopulation is the stated identifier universe used for the
	// extrapolated-duration figure in run statistics.
	DefaultPopulation = 30000

	progressInterval = 100
)

// Visit reports one page visit to the OnVisit hook. Record is nil when the
// visit was a skip.
type Visit struct {
	SourceID string
	SCL      int
	Record   *club.Record
	Took     time.Duration
}

// Options configures a crawl run.
type Options struct {
	Timeout time.Duration
	Settle  time.Duration
	// Pace is the minimum interval between consecutive navigations. Zero is
	// legitimate in bulk range mode, trading politeness for throughput.
	Pace time.Duration
	// Limit caps the number of found records; zero means unlimited.
	Limit int
	// Population is the stated total identifier universe for extrapolation.
	Population int
	// OnVisit, when set, is called after every page visit. Found records are
	// delivered here before the run ends, so per-record commits (CSV
	// appends) survive a mid-run abort.
	OnVisit func(Visit)
}

// Stats accumulates run statistics. It is an explicit result returned at
// run end, not ambient state.
type Stats struct {
	Attempted int           `json:"attempted"`
	Found     int           `json:"found"`
	Skipped   int           `json:"skipped"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Rate returns visited identifiers per second.
func (s *Stats) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Attempted) / s.Elapsed.Seconds()
}

// Extrapolate returns the projected duration to visit population
// identifiers at the observed rate.
func (s *Stats) Extrapolate(population int) time.Duration {
	rate := s.Rate()
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(population)/rate) * time.Second
}

// Controller owns the records it accumulates for the duration of one run.
type Controller struct {
	renderer browser.Renderer
	opts     Options
}

// New creates a controller, filling unset options with defaults.
func New(renderer browser.Renderer, opts Options) *Controller {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	if opts.Population <= 0 {
		opts.Population = DefaultPopulation
	}
	return &Controller{renderer: renderer, opts: opts}
}

// District enumerates a resolved district's listing and visits each entry's
// detail page, in listing order.
func (c *Controller) District(name string, ep resolver.Endpoint) ([]*club.Record, *Stats, error) {
	start := time.Now()
	stats := &Stats{}

	listHTML, err := c.fetch(ep.URL)
	if err != nil {
		return nil, stats, fmt.Errorf("loading district listing %s: %w", ep.URL, err)
	}
	entries, err := extract.List(ep.Layout, listHTML, ep.URL)
	if err != nil {
		return nil, stats, fmt.Errorf("extracting district listing: %w", err)
	}
	logger.Info("district listing loaded", logger.Fields{
		"district": name,
		"entries":  len(entries),
	})

	records := make([]*club.Record, 0, len(entries))
	for _, entry := range entries {
		if c.opts.Limit > 0 && len(records) >= c.opts.Limit {
			break
		}
		c.pace()

		stats.Attempted++
		rec, took := c.visitDetail(extract.LayoutDistrictDetail, entry.DetailURL, name)
		c.report(Visit{SourceID: name, Record: rec, Took: took})
		if !rec.Found() {
			stats.Skipped++
			continue
		}
		stats.Found++
		records = append(records, rec)
	}

	stats.Elapsed = time.Since(start)
	c.finish(stats)
	return records, stats, nil
}

// Range iterates the closed-open identifier range [start, end) in ascending
// order, constructing a direct detail URL per identifier. Skip, when
// non-nil, short-circuits identifiers already harvested.
func (c *Controller) Range(baseURL string, start, end int, skip func(scl int) bool) ([]*club.Record, *Stats, error) {
	if end < start {
		return nil, nil, fmt.Errorf("invalid range [%d, %d)", start, end)
	}

	began := time.Now()
	stats := &Stats{}
	records := make([]*club.Record, 0)

	for scl := start; scl < end; scl++ {
		if c.opts.Limit > 0 && len(records) >= c.opts.Limit {
			break
		}
		if skip != nil && skip(scl) {
			continue
		}
		c.pace()

		if (scl-start)%progressInterval == 0 && scl > start {
			logger.Info("range progress", logger.Fields{
				"scl":   scl,
				"found": stats.Found,
			})
		}

		url := DetailURL(baseURL, scl)
		stats.Attempted++
		rec, took := c.visitDetail(extract.LayoutSCLDetail, url, strconv.Itoa(scl))
		c.report(Visit{SourceID: strconv.Itoa(scl), SCL: scl, Record: rec, Took: took})
		if !rec.Found() {
			stats.Skipped++
			continue
		}
		stats.Found++
		records = append(records, rec)
	}

	stats.Elapsed = time.Since(began)
	c.finish(stats)
	return records, stats, nil
}

// DetailURL builds the identifier-addressed detail URL. The identifier is
// federation-wide, so any district base works.
func DetailURL(baseURL string, scl int) string {
	return fmt.Sprintf("%s/recherche-clubs?scl=%d", baseURL, scl)
}

// visitDetail fetches and extracts one detail page. All failure modes
// (timeout, extractor error, no name) collapse into a nil record.
func (c *Controller) visitDetail(layout, url, sourceID string) (*club.Record, time.Duration) {
	began := time.Now()

	html, err := c.fetch(url)
	if err != nil {
		took := time.Since(began)
		if !errors.Is(err, browser.ErrNavigationTimeout) {
			logger.Warn("page visit failed", logger.Fields{"url": url, "error": err.Error()})
		}
		logger.IncrCounter("crawl.skipped")
		return nil, took
	}

	rec, err := extract.Detail(layout, html, url, sourceID)
	took := time.Since(began)
	logger.RecordTiming("crawl.page", took)

	if err != nil {
		logger.Warn("extraction failed", logger.Fields{"url": url, "error": err.Error()})
		logger.IncrCounter("crawl.skipped")
		return nil, took
	}
	if !rec.Found() {
		logger.IncrCounter("crawl.skipped")
		return nil, took
	}

	logger.IncrCounter("crawl.found")
	logger.Debug("club extracted", logger.Fields{"url": url, "name": rec.Name})
	return rec, took
}

// fetch navigates with one retry on timeout; some pages load cleanly on the
// second attempt.
func (c *Controller) fetch(url string) (string, error) {
	html, err := c.renderer.Fetch(url, c.opts.Timeout, c.opts.Settle)
	if err == nil {
		return html, nil
	}
	if !errors.Is(err, browser.ErrNavigationTimeout) {
		return "", err
	}
	return c.renderer.Fetch(url, c.opts.Timeout, c.opts.Settle)
}

func (c *Controller) pace() {
	if c.opts.Pace > 0 {
		time.Sleep(c.opts.Pace)
	}
}

func (c *Controller) report(v Visit) {
	if c.opts.OnVisit != nil {
		c.opts.OnVisit(v)
	}
}

func (c *Controller) finish(stats *Stats) {
	logger.SetGauge("crawl.rate", stats.Rate())
	logger.Info("crawl finished", logger.Fields{
		"attempted": stats.Attempted,
		"found":     stats.Found,
		"skipped":   stats.Skipped,
		"elapsed":   stats.Elapsed.String(),
	})
}
