package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/medroster"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if deps.Runs == nil {
		err := medroster.Errorf(medroster.EINVALID, "no database configured; pass --db or set MEDROSTER_DB_PATH")
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
		return err
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medroster.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'medroster clean --db' to record one.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.ID,
			r.Source,
			strconv.Itoa(r.Input),
			strconv.Itoa(r.Output),
			r.Duration.Round(time.Millisecond).String(),
		})
	}
	return writeTable(deps.Stdout, []string{"created", "id", "source", "in", "out", "duration"}, rows)
}
