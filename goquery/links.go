package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medroster"
)

// DefaultProfileMarker identifies doctor profile paths.
const DefaultProfileMarker = "/doctors/"

// DefaultPageParam is the query parameter carrying the listing page number.
const DefaultPageParam = "page"

// Compile-time interface verification.
var _ medroster.LinkReader = (*LinkReader)(nil)

// LinkReader finds profile and pagination links on directory listing pages.
type LinkReader struct {
	ProfileMarker string
	PageParam     string
}

// NewLinkReader creates a LinkReader with the default profile marker and
// page parameter.
func NewLinkReader() *LinkReader {
	return &LinkReader{
		ProfileMarker: DefaultProfileMarker,
		PageParam:     DefaultPageParam,
	}
}

// ReadLinks returns same-host profile links and pagination links in
// document order, each URL once. Profile URLs lose their query and fragment.
// Pagination links are those sharing the listing page's path with a
// numeric page parameter; later pages get lower priority.
func (r *LinkReader) ReadLinks(htmlContent string, baseURL string) ([]medroster.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, medroster.Errorf(medroster.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, medroster.Errorf(medroster.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []medroster.DiscoveredLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil || resolved.Host != base.Host {
			return
		}

		link, ok := r.classify(base, resolved)
		if !ok || seen[link.URL] {
			return
		}
		seen[link.URL] = true
		link.Text = cleanLine(sel.Text())
		links = append(links, link)
	})

	return links, nil
}

func (r *LinkReader) classify(base, u *url.URL) (medroster.DiscoveredLink, bool) {
	if r.ProfileMarker != "" && strings.Contains(u.Path, r.ProfileMarker) {
		profile := *u
		profile.RawQuery = ""
		profile.ForceQuery = false
		return medroster.DiscoveredLink{URL: profile.String(), Kind: medroster.LinkProfile}, true
	}

	if u.Path != base.Path || r.PageParam == "" {
		return medroster.DiscoveredLink{}, false
	}
	page, err := strconv.Atoi(u.Query().Get(r.PageParam))
	if err != nil || page < 1 {
		return medroster.DiscoveredLink{}, false
	}
	return medroster.DiscoveredLink{
		URL:      u.String(),
		Kind:     medroster.LinkListing,
		Priority: medroster.PriorityListing - medroster.LinkPriority(page),
	}, true
}

// resolveURL resolves a relative URL against a base URL with the fragment
// stripped. Returns nil if the href cannot be parsed or points back at the
// base page.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if resolved.String() == baseNoFragment.String() {
		return nil
	}
	return resolved
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
