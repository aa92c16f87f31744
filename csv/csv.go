// Package csv reads and writes doctor datasets as CSV files compatible with
// spreadsheet tools.
package csv

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/fs"
)

// BOM is written first so spreadsheet tools detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Column headers that differ from field names.
const (
	HeaderExperienceYears = "experience(IN YEARS OVERALL)"
	headerDesignations    = "designations"
)

// Layout selects the columns written.
type Layout int

const (
	// LayoutRaw writes scraped text with N/A for missing values.
	LayoutRaw Layout = iota
	// LayoutNormalized writes experience in years and the country column.
	LayoutNormalized
)

// Header returns the header row for the layout. The designation column is
// included only when asked for.
func (l Layout) Header(designation bool) []string {
	h := []string{
		string(medroster.FieldProfileURL),
		string(medroster.FieldName),
		string(medroster.FieldQualifications),
		string(medroster.FieldSpecialty),
	}
	if l == LayoutNormalized {
		h = append(h, HeaderExperienceYears)
	} else {
		h = append(h, string(medroster.FieldExperience))
	}
	h = append(h, string(medroster.FieldHospital), string(medroster.FieldLocation))
	if l == LayoutNormalized {
		h = append(h, string(medroster.FieldCountry))
	}
	if designation {
		h = append(h, string(medroster.FieldDesignation))
	}
	return h
}

var _ medroster.RecordStore = (*Store)(nil)

// Store keeps a dataset in a single CSV file.
type Store struct {
	Path   string
	Layout Layout
}

// NewStore returns a Store for path.
func NewStore(path string, layout Layout) *Store {
	return &Store{Path: path, Layout: layout}
}

// Load reads every record in the file. Returns ENOTFOUND if the file does
// not exist.
func (s *Store) Load(ctx context.Context) ([]*medroster.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, medroster.Errorf(medroster.ENOTFOUND, "dataset %s not found", s.Path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return records, nil
}

// Save replaces the file with records. The previous file stays intact if
// writing fails.
func (s *Store) Save(ctx context.Context, records []*medroster.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := fs.CreateAtomic(s.Path)
	if err != nil {
		return err
	}
	defer f.Abort()

	if err := WriteRecords(f, records, s.Layout); err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	return f.Commit()
}

// WriteRecords writes the BOM, a header and one row per record.
func WriteRecords(w io.Writer, records []*medroster.Record, layout Layout) error {
	designation := false
	for _, r := range records {
		if r.Designation != "" {
			designation = true
			break
		}
	}

	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := layout.Header(designation)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(Row(r, header)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row renders r as cells in header order. Missing text is N/A; missing
// years and country are empty.
func Row(r *medroster.Record, header []string) []string {
	out := make([]string, len(header))
	for i, col := range header {
		switch col {
		case HeaderExperienceYears:
			if r.ExperienceYears != nil {
				out[i] = strconv.Itoa(*r.ExperienceYears)
			}
		case string(medroster.FieldCountry):
			out[i] = r.Country
		default:
			out[i] = orNotAvailable(r.Value(medroster.Field(col)))
		}
	}
	return out
}

func orNotAvailable(v string) string {
	if v == "" {
		return medroster.NotAvailable
	}
	return v
}

// ReadRecords parses a dataset in either layout. A leading BOM is skipped,
// header names are matched case-insensitively, and N/A or empty cells read
// as missing. A profile_url column is required.
func ReadRecords(r io.Reader) ([]*medroster.Record, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(BOM)); err == nil && bytes.Equal(prefix, BOM) {
		_, _ = br.Discard(len(BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []*medroster.Record{}, nil
	} else if err != nil {
		return nil, medroster.Errorf(medroster.EINVALID, "invalid CSV header: %v", err)
	}

	columns := make([]string, len(header))
	hasURL := false
	for i, h := range header {
		columns[i] = canonicalColumn(h)
		if columns[i] == string(medroster.FieldProfileURL) {
			hasURL = true
		}
	}
	if !hasURL {
		return nil, medroster.Errorf(medroster.EINVALID, "CSV has no %s column", medroster.FieldProfileURL)
	}

	records := []*medroster.Record{}
	for line := 2; ; line++ {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, medroster.Errorf(medroster.EINVALID, "invalid CSV at line %d: %v", line, err)
		}

		rec := &medroster.Record{}
		for i, cell := range cells {
			if i >= len(columns) {
				break
			}
			setCell(rec, columns[i], cell)
		}
		records = append(records, rec)
	}
	return records, nil
}

// squashHeader lowercases h and drops spaces, so "experience (IN YEARS
// OVERALL)" and "experience(IN YEARS OVERALL)" name the same column.
func squashHeader(h string) string {
	return strings.ToLower(strings.ReplaceAll(h, " ", ""))
}

func canonicalColumn(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	switch squashHeader(h) {
	case squashHeader(HeaderExperienceYears):
		return HeaderExperienceYears
	case headerDesignations:
		return string(medroster.FieldDesignation)
	}
	return h
}

func setCell(rec *medroster.Record, column, cell string) {
	cell = strings.TrimSpace(cell)
	if cell == medroster.NotAvailable {
		cell = ""
	}
	if column == HeaderExperienceYears {
		if years, ok := parseYears(cell); ok {
			rec.ExperienceYears = &years
		} else {
			rec.Experience = cell
		}
		return
	}
	rec.SetValue(medroster.Field(column), cell)
}

// parseYears accepts non-negative integers and whole floats such as "12.0".
func parseYears(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, n >= 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
