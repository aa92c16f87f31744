package mock

import (
	"context"

	"github.com/fwojciec/medroster"
)

var (
	_ medroster.Fetcher        = (*Fetcher)(nil)
	_ medroster.SitemapService = (*SitemapService)(nil)
	_ medroster.HostLimiter    = (*HostLimiter)(nil)
)

// Fetcher is a mock of medroster.Fetcher. A nil CloseFn closes cleanly.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

// SitemapService is a mock of medroster.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *medroster.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *medroster.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

// HostLimiter is a mock of medroster.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
