package medroster

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation for directories that build
// profile pages with JavaScript.
type Fetcher interface {
	// Fetch retrieves the URL and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
