package medroster

import "context"

// LinkKind classifies a link found on a directory listing page.
type LinkKind int

// Link kinds.
const (
	LinkOther LinkKind = iota
	LinkProfile
	LinkListing
)

// LinkPriority orders listing pages in the frontier (higher is visited first).
type LinkPriority int

// PriorityListing is the base priority of listing pages. Later pages get
// lower priority so they are visited in page order.
const PriorityListing LinkPriority = 1_000_000

// DiscoveredLink represents a URL found on a listing page.
type DiscoveredLink struct {
	URL      string
	Kind     LinkKind
	Priority LinkPriority
	Text     string
}

// LinkReader finds profile and pagination links on a listing page.
type LinkReader interface {
	// ReadLinks parses HTML and returns profile and listing links in
	// document order. The baseURL is used to resolve relative URLs.
	ReadLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the next URL by priority.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// HostLimiter provides per-host rate limiting.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
