package crawl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/medroster"
)

// DefaultMaxPages caps the listing pages visited in one discovery.
const DefaultMaxPages = 500

const (
	// frontierExpectedURLs sizes the Bloom filter.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for
	// listing page deduplication.
	frontierFalsePositiveRate = 0.01
)

// Discoverer walks a directory's paginated listing and collects profile URLs.
type Discoverer struct {
	Fetcher     medroster.Fetcher
	Links       medroster.LinkReader
	RateLimiter medroster.HostLimiter
	MaxPages    int
	RetryDelays []time.Duration

	// Skip holds profile URLs that are not returned, typically those
	// already scraped.
	Skip URLSet

	// OnPage, if set, receives a ProgressCompleted event per listing page
	// with Total set to the profiles found so far, or ProgressFailed.
	OnPage ProgressFunc
}

// Discover visits listing pages starting at listingURL, following
// pagination links in page order, and returns profile URLs in first-seen
// order. A failure on the first page is returned; later page failures are
// reported through OnPage and skipped. On cancellation the URLs found so far
// are returned with the context error.
func (d *Discoverer) Discover(ctx context.Context, listingURL string) ([]string, error) {
	base, err := url.Parse(listingURL)
	if err != nil || !base.IsAbs() || base.Host == "" {
		return nil, medroster.Errorf(medroster.EINVALID, "invalid listing URL %q", listingURL)
	}

	maxPages := d.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	backoff := backoffOrDefault(d.RetryDelays)

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(medroster.DiscoveredLink{
		URL:      listingURL,
		Kind:     medroster.LinkListing,
		Priority: medroster.PriorityListing,
	})

	found := NewURLSet()
	urls := []string{}

	for pages := 0; pages < maxPages; pages++ {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return urls, err
		}

		links, err := d.readListing(ctx, link.URL, backoff)
		if err != nil {
			if ctx.Err() != nil {
				return urls, ctx.Err()
			}
			if pages == 0 {
				return nil, fmt.Errorf("listing %s: %w", link.URL, err)
			}
			d.OnPage.emit(ProgressEvent{Type: ProgressFailed, Completed: pages + 1, URL: link.URL, Error: err})
			continue
		}

		for _, l := range links {
			switch l.Kind {
			case medroster.LinkProfile:
				if found.Has(l.URL) || d.Skip.Has(l.URL) {
					continue
				}
				found.Add(l.URL)
				urls = append(urls, l.URL)
			case medroster.LinkListing:
				frontier.Push(l)
			}
		}

		d.OnPage.emit(ProgressEvent{Type: ProgressCompleted, Completed: pages + 1, Total: len(urls), URL: link.URL})
	}

	return urls, nil
}

func (d *Discoverer) readListing(ctx context.Context, pageURL string, backoff Backoff) ([]medroster.DiscoveredLink, error) {
	if d.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, err
		}
		if err := d.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := backoff.Fetch(ctx, d.Fetcher, pageURL, nil)
	if err != nil {
		return nil, err
	}
	return d.Links.ReadLinks(html, pageURL)
}
