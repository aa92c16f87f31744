// Package rod renders directory pages in headless Chrome, for profile pages
// that build their text with JavaScript.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/medroster"
)

// DefaultFetchTimeout bounds one page fetch, including the settle delay.
const DefaultFetchTimeout = 30 * time.Second

// DefaultSettleDelay is how long a page is given after load and after
// scrolling to finish lazy rendering.
const DefaultSettleDelay = time.Second

// scrollScript scrolls to the bottom so lazily loaded sections render.
const scrollScript = `() => window.scrollTo(0, document.body.scrollHeight)`

// Ensure Fetcher implements medroster.Fetcher at compile time.
var _ medroster.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser     *Browser
	browserOpts []BrowserOption
	timeout     time.Duration
	settle      time.Duration
	closed      atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleDelay sets the wait after load and after scrolling.
// Zero disables both waits and the scroll.
func WithSettleDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithBrowserOptions passes options to the underlying Browser.
func WithBrowserOptions(opts ...BrowserOption) FetcherOption {
	return func(f *Fetcher) {
		f.browserOpts = append(f.browserOpts, opts...)
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		settle:  DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	browser, err := NewBrowser(f.browserOpts...)
	if err != nil {
		return nil, err
	}
	f.browser = browser
	return f, nil
}

// Fetch navigates to the URL, scrolls to the bottom, and returns the
// rendered HTML. Returns EINVALID after Close.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", medroster.Errorf(medroster.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	tab, release, err := f.browser.Tab()
	if err != nil {
		return "", err
	}
	defer release()

	page := tab.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.settle > 0 {
		if err := sleep(ctx, f.settle); err != nil {
			return "", err
		}
		if _, err := page.Eval(scrollScript); err != nil {
			return "", err
		}
		if err := sleep(ctx, f.settle); err != nil {
			return "", err
		}
	}

	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.browser.LauncherPID()
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
