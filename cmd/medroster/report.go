package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/medroster"
	"github.com/mattn/go-runewidth"
)

// writeStageReport prints how many records each pipeline stage removed.
func writeStageReport(w io.Writer, input int, stages []medroster.StageCount) error {
	rows := make([][]string, 0, len(stages)+1)
	rows = append(rows, []string{"input", "", strconv.Itoa(input), ""})
	for _, s := range stages {
		rows = append(rows, []string{
			s.Stage,
			strconv.Itoa(s.Before),
			strconv.Itoa(s.After),
			strconv.Itoa(s.Removed()),
		})
	}
	return writeTable(w, []string{"stage", "before", "after", "removed"}, rows)
}

// writeTable renders a pipe table padded by display width, so names in
// Bengali or Devanagari line up with Latin ones.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = max(runewidth.StringWidth(h), 3)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	var sb strings.Builder
	line := func(cells []string) {
		sb.WriteString("|")
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(cell, width))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	line(header)
	sb.WriteString("|")
	for _, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", width))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
	for _, row := range rows {
		line(row)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
