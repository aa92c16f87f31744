package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/medroster"
)

// DefaultCheckpointEvery is how many scraped records pass between
// checkpoints.
const DefaultCheckpointEvery = 25

// Scraper fetches profile pages and extracts a raw record from each.
type Scraper struct {
	Fetcher     medroster.Fetcher
	Reader      medroster.PageReader
	Extractor   medroster.Extractor
	RateLimiter medroster.HostLimiter
	Concurrency int
	RetryDelays []time.Duration

	// Existing holds URLs scraped by an earlier run; they are skipped.
	Existing URLSet

	// Checkpoint, if set, receives every record scraped so far (in input
	// order) each CheckpointEvery records. An error aborts the scrape.
	Checkpoint      func(ctx context.Context, records []*medroster.Record) error
	CheckpointEvery int
}

// ScrapeResult holds the outcome of a scrape.
type ScrapeResult struct {
	Records []*medroster.Record
	Skipped int
	Failed  int
}

// Scrape scrapes urls, skipping duplicates and Existing entries. Records
// keep the order of urls; a failed fetch produces no record. On
// cancellation the records gathered so far are returned with the context
// error.
func (s *Scraper) Scrape(ctx context.Context, urls []string, progress ProgressFunc) (*ScrapeResult, error) {
	result := &ScrapeResult{}

	seen := NewURLSet()
	var pending []string
	for _, u := range urls {
		if s.Existing.Has(u) || seen.Has(u) {
			result.Skipped++
			continue
		}
		seen.Add(u)
		pending = append(pending, u)
	}

	every := s.CheckpointEvery
	if every <= 0 {
		every = DefaultCheckpointEvery
	}

	total := len(pending)
	progress.emit(ProgressEvent{Type: ProgressStarted, Total: total})

	src := profileSource{
		fetcher:   s.Fetcher,
		reader:    s.Reader,
		extractor: s.Extractor,
		limiter:   s.RateLimiter,
		delays:    s.RetryDelays,
	}

	records := make([]*medroster.Record, total)
	var completed, scraped int

	err := src.readAll(ctx, pending, s.Concurrency, func(o outcome) error {
		completed++
		url := pending[o.index]
		if o.err != nil {
			result.Failed++
			progress.emit(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, URL: url, Error: o.err})
			return nil
		}

		records[o.index] = &medroster.Record{RawRecord: o.record}
		scraped++
		progress.emit(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: url})

		if s.Checkpoint != nil && scraped%every == 0 {
			if err := s.Checkpoint(ctx, compact(records)); err != nil {
				return fmt.Errorf("checkpoint: %w", err)
			}
		}
		return nil
	})

	result.Records = compact(records)
	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})

	return result, err
}
