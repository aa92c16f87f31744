package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/crawl"
	"github.com/fwojciec/medroster/csv"
	"github.com/fwojciec/medroster/fs"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	store := csv.NewStore(c.Out, csv.LayoutRaw)
	existing, err := loadExisting(deps, store)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
		return err
	}
	skip := crawl.NewURLSet()
	for _, r := range existing {
		skip.Add(r.ProfileURL)
	}
	if len(existing) > 0 {
		fmt.Fprintf(deps.Stdout, "Resuming: %d profiles already in %s\n", len(existing), c.Out)
	}

	urls, err := c.discover(deps, skip)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
		return err
	}

	if c.Preview {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Found %d new profile URLs\n", len(urls))
	if len(urls) == 0 {
		return nil
	}

	reader := deps.Reader
	if c.Dump != "" {
		reader = &dumpingReader{next: reader, dump: fs.NewDump(c.Dump), logger: deps.Logger}
	}

	cfg := deps.Config.Scrape
	scraper := &crawl.Scraper{
		Fetcher:     deps.Fetcher,
		Reader:      reader,
		Extractor:   deps.Extractor,
		RateLimiter: deps.RateLimiter,
		Concurrency: firstPositive(c.Concurrency, cfg.Concurrency),
		RetryDelays: cfg.RetryDelays,
		Existing:    skip,
		Checkpoint: func(ctx context.Context, records []*medroster.Record) error {
			return store.Save(ctx, merge(existing, records))
		},
		CheckpointEvery: cfg.CheckpointEvery,
	}

	start := time.Now()
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, crawl.DisplayURL(event.URL, 70))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, scrapeErr := scraper.Scrape(deps.Ctx, urls, progress)
	if result != nil {
		// Save whatever was scraped, including after an interrupt.
		if err := store.Save(context.WithoutCancel(deps.Ctx), merge(existing, result.Records)); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
			return err
		}
		elapsed := time.Since(start)
		fmt.Fprintf(deps.Stdout, "Scraped %d profiles (%d skipped, %d failed) in %s, %s\n",
			len(result.Records), result.Skipped, result.Failed,
			elapsed.Round(time.Second), crawl.PerMinute(len(result.Records)+result.Failed, elapsed))
	}
	if scrapeErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(scrapeErr))
		return scrapeErr
	}
	return nil
}

func (c *ScrapeCmd) discover(deps *Dependencies, skip crawl.URLSet) ([]string, error) {
	cfg := deps.Config.Scrape

	if c.Sitemap {
		all, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, medroster.ProfileFilter(cfg.ProfileMarker))
		if err != nil {
			return nil, err
		}
		var urls []string
		for _, u := range all {
			if !skip.Has(u) {
				urls = append(urls, u)
			}
		}
		return urls, nil
	}

	starts := []string{c.URL}
	if len(c.Country) > 0 {
		starts = starts[:0]
		for _, country := range c.Country {
			id, ok := medroster.ListingCountryIDs[country]
			if !ok {
				return nil, medroster.Errorf(medroster.EINVALID, "no listing id for country %q", country)
			}
			u, err := medroster.ListingURL(c.URL, id, 1)
			if err != nil {
				return nil, err
			}
			starts = append(starts, u)
		}
	}

	seen := crawl.NewURLSet()
	var urls []string
	for _, start := range starts {
		d := &crawl.Discoverer{
			Fetcher:     deps.Fetcher,
			Links:       deps.Links,
			RateLimiter: deps.RateLimiter,
			MaxPages:    firstPositive(c.MaxPages, cfg.MaxPages),
			RetryDelays: cfg.RetryDelays,
			Skip:        skip,
			OnPage: func(event crawl.ProgressEvent) {
				switch event.Type {
				case crawl.ProgressCompleted:
					fmt.Fprintf(deps.Stdout, "  listing page %d: %d profiles\n", event.Completed, event.Total)
				case crawl.ProgressFailed:
					fmt.Fprintf(deps.Stderr, "  skip listing %s: %v\n", event.URL, event.Error)
				}
			},
		}
		found, err := d.Discover(deps.Ctx, start)
		for _, u := range found {
			if !seen.Has(u) {
				seen.Add(u)
				urls = append(urls, u)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return urls, nil
}
