package medroster

import (
	"context"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// SitemapService lists profile URLs published in a directory's sitemaps.
type SitemapService interface {
	// DiscoverURLs reads the sitemaps named in robots.txt, falling back to
	// /sitemap.xml, and follows sitemap indexes. URLs the filter rejects are
	// dropped; a nil filter keeps everything.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter selects profile URLs out of a sitemap.
type URLFilter struct {
	// PathMarkers lists path fragments; a URL whose path holds none of them
	// is rejected. Empty keeps every path.
	PathMarkers []string

	// Exclude rejects URLs matching any pattern, even when a marker matched.
	Exclude []*regexp.Regexp
}

// ProfileFilter keeps URLs whose path contains marker, such as "/doctors/".
func ProfileFilter(marker string) *URLFilter {
	return &URLFilter{PathMarkers: []string{marker}}
}

// Match reports whether rawURL passes the filter. A nil filter passes
// everything. Markers are checked against the path only, so a host or
// query string that happens to contain one does not count.
func (f *URLFilter) Match(rawURL string) bool {
	if f == nil {
		return true
	}
	if len(f.PathMarkers) > 0 {
		path := rawURL
		if u, err := url.Parse(rawURL); err == nil {
			path = u.Path
		}
		if !slices.ContainsFunc(f.PathMarkers, func(m string) bool { return strings.Contains(path, m) }) {
			return false
		}
	}
	return !slices.ContainsFunc(f.Exclude, func(re *regexp.Regexp) bool { return re.MatchString(rawURL) })
}
