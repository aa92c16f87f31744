package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	page := fs.ParsePage(string(data))
	if page.URL == "" {
		page.URL = c.URL
	}
	raw := deps.Extractor.Extract(page)

	rec := &medroster.Record{RawRecord: raw}
	rows := make([][]string, 0, len(medroster.TextFields))
	for _, f := range medroster.TextFields {
		v := rec.Value(f)
		if v == "" {
			v = medroster.NotAvailable
		}
		rows = append(rows, []string{string(f), v})
	}
	fmt.Fprintf(deps.Stdout, "%d lines\n", len(page.Lines))
	return writeTable(deps.Stdout, []string{"field", "value"}, rows)
}
