// Package browser wraps chromedp behind the small rendered-page capability
// the crawl controller needs: navigate to a URL with a bounded timeout, let
// client-side rendering settle, and hand back the rendered HTML.
//
// The federation club pages are Angular applications; the HTML returned by a
// plain GET has none of the club fields, so every visit goes through a real
// browser tab. One tab is shared for the whole run and visits are strictly
// sequential.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Renderer is the capability consumed by the crawl controller. Fetch
// navigates to url with the given page-load timeout, waits settle for
// asynchronous rendering, and returns the rendered document HTML.
type Renderer interface {
	Fetch(url string, timeout, settle time.Duration) (string, error)
}

// ErrNavigationTimeout reports that the page did not load within the
// configured timeout. Callers treat it as a skip, not a failure.
var ErrNavigationTimeout = errors.New("browser: navigation timed out")

// Chrome is a chromedp-backed Renderer owning one browser process and tab.
type Chrome struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

// Launch starts a Chrome process and opens the tab used for all fetches.
// Close must be called to release the process.
func Launch(headless bool) (*Chrome, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so a missing Chrome binary surfaces here
	// rather than on the first page visit.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	return &Chrome{
		ctx:     tabCtx,
		cancels: []context.CancelFunc{cancelTab, cancelAlloc},
	}, nil
}

// Close releases the tab and the browser process.
func (c *Chrome) Close() {
	for _, cancel := range c.cancels {
		cancel()
	}
}

// Fetch navigates to url and returns the rendered HTML. The timeout bounds
// navigation; settle is the fixed delay granted to client-side rendering
// before the document is read.
func (c *Chrome) Fetch(url string, timeout, settle time.Duration) (string, error) {
	navCtx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s", ErrNavigationTimeout, url)
		}
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}

	var html string
	readCtx, cancelRead := context.WithTimeout(c.ctx, timeout+settle)
	defer cancelRead()

	err := chromedp.Run(readCtx,
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s", ErrNavigationTimeout, url)
		}
		return "", fmt.Errorf("reading document at %s: %w", url, err)
	}
	return html, nil
}
