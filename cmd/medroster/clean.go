package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/clean"
	"github.com/fwojciec/medroster/csv"
	"github.com/fwojciec/medroster/xlsx"
)

// Run executes the clean command.
func (c *CleanCmd) Run(deps *Dependencies) error {
	start := time.Now()

	records, err := csv.NewStore(c.In, csv.LayoutRaw).Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
		return err
	}

	pipeline := clean.NewPipeline(deps.Vocabulary,
		clean.WithCountries(c.countries(deps)...),
	)
	result, err := pipeline.Run(deps.Ctx, records)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
		return err
	}

	if err := csv.NewStore(c.Out, csv.LayoutNormalized).Save(deps.Ctx, result.Records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
		return err
	}
	if c.XLSX != "" {
		if err := xlsx.NewWriter(c.XLSX).Save(deps.Ctx, result.Records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
			return err
		}
	}

	if deps.Records != nil {
		n, err := deps.Records.UpsertRecords(deps.Ctx, result.Records)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Stored %d changed records\n", n)
	}

	if err := writeStageReport(deps.Stdout, len(records), result.Stages); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d of %d records to %s\n", len(result.Records), len(records), c.Out)

	if deps.Runs != nil {
		run := &medroster.Run{
			Source:   c.In,
			Input:    len(records),
			Output:   len(result.Records),
			Stages:   result.Stages,
			Duration: time.Since(start),
		}
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Recorded run %s\n", run.ID)
	}
	return nil
}

func (c *CleanCmd) countries(deps *Dependencies) []string {
	switch {
	case c.AllCountries:
		return nil
	case len(c.Country) > 0:
		return c.Country
	default:
		return deps.Config.Clean.Countries
	}
}
