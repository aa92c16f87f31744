package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/crawl"
	"github.com/fwojciec/medroster/csv"
)

// Run executes the repair command.
func (c *RepairCmd) Run(deps *Dependencies) error {
	records, err := csv.NewStore(c.In, csv.LayoutRaw).Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
		return err
	}

	cfg := deps.Config.Scrape
	repairer := &crawl.Repairer{
		Fetcher:     deps.Fetcher,
		Reader:      deps.Reader,
		Extractor:   deps.Extractor,
		RateLimiter: deps.RateLimiter,
		Concurrency: firstPositive(c.Concurrency, cfg.Concurrency),
		RetryDelays: cfg.RetryDelays,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Repairing %d incomplete profiles\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, repairErr := repairer.Repair(deps.Ctx, records, progress)
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(repairErr))
		return repairErr
	}

	if err := csv.NewStore(c.Out, layoutOf(records)).Save(context.WithoutCancel(deps.Ctx), result.Records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Attempted %d, failed %d\n", result.Attempted, result.Failed)
	for _, f := range medroster.CriticalFields {
		fmt.Fprintf(deps.Stdout, "  %s fixed: %d\n", f, result.Fixed[f])
	}

	if repairErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(repairErr))
		return repairErr
	}
	return nil
}
