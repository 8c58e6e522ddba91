// Package resolver discovers which district endpoints are live. Each
// candidate slug is probed with a bounded-timeout GET; a district is valid
// when some slug answers 200 and the body carries the expected structural
// marker. Valid (district, URL) pairs are persisted as a registry so
// repeated runs skip re-probing.
package resolver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/nolancacheux/webscrapping-clubs/internal/extract"
	"github.com/nolancacheux/webscrapping-clubs/internal/logger"
)

const (
	probeTimeout = 10 * time.Second
	probePace    = time.Second
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// defaultMarker must appear in a listing page body for the endpoint to
	// count as structurally valid; a bare holding page serves a 200 too.
	defaultMarker = "club"
)

// ErrEndpointUnreachable reports a failed district probe. It is recorded and
// the district excluded; it never aborts the batch.
var ErrEndpointUnreachable = errors.New("endpoint unreachable")

// Prober validates district endpoints.
type Prober struct {
	client *http.Client
	marker string
	pace   time.Duration
}

// NewProber creates a prober with the default timeout, marker, and pacing.
func NewProber() *Prober {
	return &Prober{
		client: &http.Client{Timeout: probeTimeout},
		marker: defaultMarker,
		pace:   probePace,
	}
}

// Resolve probes every candidate district and returns the registry of valid
// endpoints in probe order. Individual failures are logged and excluded.
func (p *Prober) Resolve(districts []District) *Registry {
	reg := NewRegistry()

	for i, district := range districts {
		url, err := p.resolveDistrict(district)
		if err != nil {
			logger.Warn("district excluded", logger.Fields{
				"district": district.Name,
				"reason":   err.Error(),
			})
			logger.IncrCounter("resolve.excluded")
			continue
		}

		reg.Add(district.Name, Endpoint{URL: url, Layout: extract.LayoutDistrictList})
		logger.Info("district resolved", logger.Fields{
			"district": district.Name,
			"url":      url,
		})
		logger.IncrCounter("resolve.valid")

		// Politeness pause between districts, skipped after the last one.
		if p.pace > 0 && i < len(districts)-1 {
			time.Sleep(p.pace)
		}
	}
	return reg
}

// resolveDistrict tries each slug candidate in order and returns the first
// URL that probes valid.
func (p *Prober) resolveDistrict(district District) (string, error) {
	var lastErr error
	for _, slug := range district.Slugs {
		url := URLTemplate(slug)
		if err := p.probe(url); err != nil {
			lastErr = err
			continue
		}
		return url, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no slug candidates", ErrEndpointUnreachable)
	}
	return "", lastErr
}

// probe fetches url once, retrying a transient failure a single time with
// exponential backoff, and checks status plus the structural marker.
func (p *Prober) probe(url string) error {
	op := func() error {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := p.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrEndpointUnreachable, url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: %s: status %d", ErrEndpointUnreachable, url, resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return fmt.Errorf("%w: %s: reading body: %v", ErrEndpointUnreachable, url, err)
		}
		if p.marker != "" && !strings.Contains(strings.ToLower(string(body)), p.marker) {
			return backoff.Permanent(fmt.Errorf("%w: %s: marker %q not found", ErrEndpointUnreachable, url, p.marker))
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 1)
	return backoff.Retry(op, policy)
}
