package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/medroster"
)

// Repairer re-scrapes records that lack a critical field and fills in only
// what is missing.
type Repairer struct {
	Fetcher     medroster.Fetcher
	Reader      medroster.PageReader
	Extractor   medroster.Extractor
	RateLimiter medroster.HostLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// RepairResult holds repaired records and per-field fix counts.
type RepairResult struct {
	Records   []*medroster.Record
	Attempted int
	Failed    int
	Fixed     map[medroster.Field]int
}

// Repair returns copies of records where each missing hospital, location or
// specialty is filled from a fresh extraction of the profile when the fresh
// value is non-empty. Present values are never overwritten and the input is
// not modified.
func (r *Repairer) Repair(ctx context.Context, records []*medroster.Record, progress ProgressFunc) (*RepairResult, error) {
	out := make([]*medroster.Record, len(records))
	var targets []int
	var urls []string
	for i, rec := range records {
		if rec == nil {
			return nil, medroster.Errorf(medroster.EINVALID, "record %d is nil", i)
		}
		out[i] = rec.Clone()
		if rec.ProfileURL != "" && len(rec.MissingCritical()) > 0 {
			targets = append(targets, i)
			urls = append(urls, rec.ProfileURL)
		}
	}

	result := &RepairResult{
		Records:   out,
		Attempted: len(urls),
		Fixed:     make(map[medroster.Field]int),
	}

	total := len(urls)
	progress.emit(ProgressEvent{Type: ProgressStarted, Total: total})

	src := profileSource{
		fetcher:   r.Fetcher,
		reader:    r.Reader,
		extractor: r.Extractor,
		limiter:   r.RateLimiter,
		delays:    r.RetryDelays,
	}

	var completed int
	err := src.readAll(ctx, urls, r.Concurrency, func(o outcome) error {
		completed++
		rec := out[targets[o.index]]
		if o.err != nil {
			result.Failed++
			progress.emit(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, URL: rec.ProfileURL, Error: o.err})
			return nil
		}

		fresh := &medroster.Record{RawRecord: o.record}
		for _, f := range rec.MissingCritical() {
			if v := fresh.Value(f); v != "" {
				rec.SetValue(f, v)
				result.Fixed[f]++
			}
		}
		progress.emit(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: rec.ProfileURL})
		return nil
	})

	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})

	return result, err
}
