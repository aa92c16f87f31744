package crawl_test

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/mock"
)

// noRetry makes a single fetch attempt.
var noRetry = []time.Duration{}

// profileHTML is what the fake directory serves for a profile URL.
func profileHTML(url string) string {
	return "<html>" + url + "</html>"
}

func staticFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return profileHTML(url), nil
		},
		CloseFn: func() error { return nil },
	}
}

// lineReader turns fake HTML back into a one-line page.
func lineReader() *mock.PageReader {
	return &mock.PageReader{
		ReadPageFn: func(html, url string) (*medroster.Page, error) {
			body := strings.TrimSuffix(strings.TrimPrefix(html, "<html>"), "</html>")
			return &medroster.Page{URL: url, Lines: []string{body}}, nil
		},
	}
}

// slugExtractor names each doctor after the last path segment.
func slugExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(page *medroster.Page) medroster.RawRecord {
			slug := page.URL[strings.LastIndex(page.URL, "/")+1:]
			return medroster.RawRecord{ProfileURL: page.URL, Name: "Dr. " + slug}
		},
	}
}

func profileURL(slug string) string {
	return "https://www.doctorbd.test/doctors/" + slug
}

func recordURLs(records []*medroster.Record) []string {
	urls := make([]string, len(records))
	for i, r := range records {
		urls[i] = r.ProfileURL
	}
	return urls
}
