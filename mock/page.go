package mock

import "github.com/fwojciec/medroster"

var (
	_ medroster.PageReader = (*PageReader)(nil)
	_ medroster.LinkReader = (*LinkReader)(nil)
)

// PageReader is a mock implementation of medroster.PageReader.
type PageReader struct {
	ReadPageFn func(html, url string) (*medroster.Page, error)
}

func (r *PageReader) ReadPage(html, url string) (*medroster.Page, error) {
	return r.ReadPageFn(html, url)
}

// LinkReader is a mock implementation of medroster.LinkReader.
type LinkReader struct {
	ReadLinksFn func(html string, baseURL string) ([]medroster.DiscoveredLink, error)
}

func (r *LinkReader) ReadLinks(html string, baseURL string) ([]medroster.DiscoveredLink, error) {
	return r.ReadLinksFn(html, baseURL)
}
