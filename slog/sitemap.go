package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/medroster"
)

var _ medroster.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs each sitemap walk with the number of profile
// URLs it produced.
type LoggingSitemapService struct {
	next   medroster.SitemapService
	logger *slog.Logger
}

func NewLoggingSitemapService(next medroster.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *medroster.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"site", baseURL,
			"urls", len(urls),
			"filtered", filter != nil,
			"duration", time.Since(begin),
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "walk sitemaps", append(attrs, "err", err)...)
			return
		}
		s.logger.InfoContext(ctx, "walk sitemaps", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
