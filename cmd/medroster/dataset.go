package main

import (
	"log/slog"
	"slices"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/csv"
	"github.com/fwojciec/medroster/fs"
)

// loadExisting reads a prior dataset. A missing file is an empty dataset.
func loadExisting(deps *Dependencies, store *csv.Store) ([]*medroster.Record, error) {
	records, err := store.Load(deps.Ctx)
	if medroster.ErrorCode(err) == medroster.ENOTFOUND {
		return nil, nil
	}
	return records, err
}

// layoutOf picks the normalized layout when any record carries normalized
// values.
func layoutOf(records []*medroster.Record) csv.Layout {
	for _, r := range records {
		if r.ExperienceYears != nil || r.Country != "" {
			return csv.LayoutNormalized
		}
	}
	return csv.LayoutRaw
}

func merge(existing, scraped []*medroster.Record) []*medroster.Record {
	return append(slices.Clip(existing), scraped...)
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

var _ medroster.PageReader = (*dumpingReader)(nil)

// dumpingReader saves every page it reads so that extraction can be replayed
// offline with the extract command.
type dumpingReader struct {
	next   medroster.PageReader
	dump   *fs.Dump
	logger *slog.Logger
}

func (r *dumpingReader) ReadPage(html, url string) (*medroster.Page, error) {
	page, err := r.next.ReadPage(html, url)
	if err != nil {
		return nil, err
	}
	if path, err := r.dump.Save(page); err != nil {
		r.logger.Warn("dump page", "url", url, "err", err)
	} else {
		r.logger.Debug("dump page", "url", url, "path", path)
	}
	return page, nil
}
