// Package crawl discovers doctor profile URLs on directory listing pages and
// scrapes each profile into a raw record.
package crawl

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/fwojciec/medroster"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of profiles fetched at once.
const DefaultConcurrency = 4

// ProgressEvent reports progress during discovery, scraping or repair.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

func (fn ProgressFunc) emit(event ProgressEvent) {
	if fn != nil {
		fn(event)
	}
}

// URLSet is an exact set of URLs. A nil URLSet is empty.
type URLSet map[string]struct{}

// NewURLSet returns a set holding urls.
func NewURLSet(urls ...string) URLSet {
	s := make(URLSet, len(urls))
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

// Has reports whether url is in the set.
func (s URLSet) Has(url string) bool {
	_, ok := s[url]
	return ok
}

// Add inserts url.
func (s URLSet) Add(url string) {
	s[url] = struct{}{}
}

// profileSource turns a profile URL into a raw record: rate limit, fetch
// with retry, read lines, extract.
type profileSource struct {
	fetcher   medroster.Fetcher
	reader    medroster.PageReader
	extractor medroster.Extractor
	limiter   medroster.HostLimiter
	delays    []time.Duration
}

// outcome is the result for the profile at index in the input.
type outcome struct {
	index  int
	record medroster.RawRecord
	err    error
}

func (s profileSource) read(ctx context.Context, rawURL string) (medroster.RawRecord, error) {
	if s.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return medroster.RawRecord{}, medroster.Errorf(medroster.EINVALID, "invalid profile URL %q", rawURL)
		}
		if err := s.limiter.Wait(ctx, u.Host); err != nil {
			return medroster.RawRecord{}, err
		}
	}

	html, err := backoffOrDefault(s.delays).Fetch(ctx, s.fetcher, rawURL, nil)
	if err != nil {
		return medroster.RawRecord{}, err
	}

	page, err := s.reader.ReadPage(html, rawURL)
	if err != nil {
		return medroster.RawRecord{}, err
	}

	rec := s.extractor.Extract(page)
	if rec.ProfileURL == "" {
		rec.ProfileURL = rawURL
	}
	return rec, nil
}

// readAll reads every URL with bounded concurrency. handle runs on the
// calling goroutine once per outcome, in completion order; an error from
// handle stops the remaining work and is returned. Outcomes that failed only
// because ctx was canceled are not handed over.
func (s profileSource) readAll(ctx context.Context, urls []string, concurrency int, handle func(outcome) error) error {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	resultCh := make(chan outcome, len(urls))

	g, gctx := errgroup.WithContext(workCtx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				rec, err := s.read(gctx, u)
				resultCh <- outcome{index: i, record: rec, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var handleErr error
	for o := range resultCh {
		if handleErr != nil {
			continue
		}
		if o.err != nil && workCtx.Err() != nil && errors.Is(o.err, workCtx.Err()) {
			continue
		}
		if err := handle(o); err != nil {
			handleErr = err
			cancel()
		}
	}

	if handleErr != nil {
		return handleErr
	}
	return ctx.Err()
}

// compact returns the non-nil records in order.
func compact(records []*medroster.Record) []*medroster.Record {
	out := make([]*medroster.Record, 0, len(records))
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
