package xlsx_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func intPtr(n int) *int { return &n }

func doctor() *medroster.Record {
	return &medroster.Record{
		RawRecord: medroster.RawRecord{
			ProfileURL:     "https://example.com/doctors/dr-rahim-uddin",
			Name:           "Dr. Rahim Uddin",
			Qualifications: "MBBS, FCPS (Medicine)",
			Specialty:      "Cardiologist",
			Hospital:       "Square Hospital Ltd",
			Location:       "18/F West Panthapath, Dhaka",
		},
		ExperienceYears: intPtr(12),
		Country:         "Bangladesh",
	}
}

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriteRecords(t *testing.T) {
	t.Parallel()

	t.Run("writes header and normalized columns", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, xlsx.WriteRecords(&buf, []*medroster.Record{doctor()}, ""))

		rows := readRows(t, buf.Bytes(), xlsx.DefaultSheet)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{
			"profile_url", "name", "qualifications", "specialty",
			"experience(IN YEARS OVERALL)", "hospital", "location", "country",
		}, rows[0])
		assert.Equal(t, []string{
			"https://example.com/doctors/dr-rahim-uddin", "Dr. Rahim Uddin",
			"MBBS, FCPS (Medicine)", "Cardiologist", "12", "Square Hospital Ltd",
			"18/F West Panthapath, Dhaka", "Bangladesh",
		}, rows[1])
	})

	t.Run("uses the named sheet", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, xlsx.WriteRecords(&buf, []*medroster.Record{doctor()}, "Clean"))

		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, []string{"Clean"}, f.GetSheetList())
		v, err := f.GetCellValue("Clean", "E2")
		require.NoError(t, err)
		assert.Equal(t, "12", v)
	})

	t.Run("adds designation column when present", func(t *testing.T) {
		t.Parallel()

		r := doctor()
		r.Designation = "Senior Consultant"
		var buf bytes.Buffer
		require.NoError(t, xlsx.WriteRecords(&buf, []*medroster.Record{r}, ""))

		rows := readRows(t, buf.Bytes(), xlsx.DefaultSheet)
		assert.Equal(t, "designation", rows[0][len(rows[0])-1])
		assert.Equal(t, "Senior Consultant", rows[1][len(rows[1])-1])
	})

	t.Run("empty dataset has only the header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, xlsx.WriteRecords(&buf, nil, ""))

		rows := readRows(t, buf.Bytes(), xlsx.DefaultSheet)
		assert.Len(t, rows, 1)
	})
}

func TestWriter_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes workbook to path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "doctors.xlsx")
		w := xlsx.NewWriter(path)

		require.NoError(t, w.Save(context.Background(), []*medroster.Record{doctor()}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, readRows(t, data, xlsx.DefaultSheet), 2)
	})

	t.Run("canceled context writes nothing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doctors.xlsx")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := xlsx.NewWriter(path).Save(ctx, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, path)
	})
}
