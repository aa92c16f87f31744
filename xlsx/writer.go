// Package xlsx exports clean doctor datasets as Excel workbooks.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/csv"
	"github.com/fwojciec/medroster/fs"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet names the worksheet holding the records.
const DefaultSheet = "Doctors"

// Writer saves records to a workbook using the normalized CSV columns.
type Writer struct {
	Path  string
	Sheet string
}

// NewWriter returns a Writer for path.
func NewWriter(path string) *Writer {
	return &Writer{Path: path, Sheet: DefaultSheet}
}

// Save replaces the workbook at Path. The previous file stays intact if
// writing fails.
func (w *Writer) Save(ctx context.Context, records []*medroster.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := fs.CreateAtomic(w.Path)
	if err != nil {
		return err
	}
	defer f.Abort()

	if err := WriteRecords(f, records, w.Sheet); err != nil {
		return fmt.Errorf("write %s: %w", w.Path, err)
	}
	return f.Commit()
}

// WriteRecords writes a workbook with one sheet: a bold header row and one
// row per record. Experience years are numeric cells.
func WriteRecords(out io.Writer, records []*medroster.Record, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	designation := false
	for _, r := range records {
		if r.Designation != "" {
			designation = true
			break
		}
	}
	header := csv.LayoutNormalized.Header(designation)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells(r, header)); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	_, err = f.WriteTo(out)
	return err
}

func cells(r *medroster.Record, header []string) []any {
	text := csv.Row(r, header)
	out := make([]any, len(text))
	for i, v := range text {
		out[i] = v
		if header[i] == csv.HeaderExperienceYears && v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				out[i] = n
			}
		}
	}
	return out
}
