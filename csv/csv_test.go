package csv_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func years(n int) *int { return &n }

func TestWriteRecords(t *testing.T) {
	t.Parallel()

	t.Run("writes raw layout with BOM and N/A for missing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := csv.WriteRecords(&buf, []*medroster.Record{{RawRecord: medroster.RawRecord{
			ProfileURL: "https://example.com/doctors/a",
			Name:       "Dr. A",
			Specialty:  "Cardiologist",
		}}}, csv.LayoutRaw)

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), csv.BOM))
		assert.Equal(t,
			"profile_url,name,qualifications,specialty,experience,hospital,location\n"+
				"https://example.com/doctors/a,Dr. A,N/A,Cardiologist,N/A,N/A,N/A\n",
			string(buf.Bytes()[len(csv.BOM):]))
	})

	t.Run("writes normalized layout with years and empty country", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := csv.WriteRecords(&buf, []*medroster.Record{
			{
				RawRecord: medroster.RawRecord{
					ProfileURL:     "https://example.com/doctors/a",
					Name:           "Dr. A",
					Qualifications: "MBBS, FCPS",
					Specialty:      "Cardiology",
					Hospital:       "Square Hospital Ltd",
					Location:       "Panthapath, Dhaka, Bangladesh",
				},
				ExperienceYears: years(12),
				Country:         "Bangladesh",
			},
			{RawRecord: medroster.RawRecord{ProfileURL: "https://example.com/doctors/b"}},
		}, csv.LayoutNormalized)

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(buf.Bytes()[len(csv.BOM):])), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "profile_url,name,qualifications,specialty,experience(IN YEARS OVERALL),hospital,location,country", lines[0])
		assert.Equal(t, `https://example.com/doctors/a,Dr. A,"MBBS, FCPS",Cardiology,12,Square Hospital Ltd,"Panthapath, Dhaka, Bangladesh",Bangladesh`, lines[1])
		assert.Equal(t, "https://example.com/doctors/b,N/A,N/A,N/A,,N/A,N/A,", lines[2])
	})

	t.Run("adds designation column when any record has one", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := csv.WriteRecords(&buf, []*medroster.Record{
			{RawRecord: medroster.RawRecord{ProfileURL: "https://example.com/doctors/a", Designation: "Professor"}},
		}, csv.LayoutRaw)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "location,designation\n")
		assert.Contains(t, buf.String(), ",Professor\n")
	})
}

func TestReadRecords(t *testing.T) {
	t.Parallel()

	t.Run("reads raw layout with BOM and N/A", func(t *testing.T) {
		t.Parallel()

		in := "\ufeffprofile_url,name,qualifications,specialty,experience,hospital,location\n" +
			"https://example.com/doctors/a,Dr. A,N/A,Cardiologist,10+ years experience,N/A,N/A\n"

		records, err := csv.ReadRecords(strings.NewReader(in))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, medroster.RawRecord{
			ProfileURL: "https://example.com/doctors/a",
			Name:       "Dr. A",
			Specialty:  "Cardiologist",
			Experience: "10+ years experience",
		}, records[0].RawRecord)
		assert.Nil(t, records[0].ExperienceYears)
	})

	t.Run("reads normalized layout with float years and designations", func(t *testing.T) {
		t.Parallel()

		in := "profile_url,experience(IN YEARS OVERALL),country,Designations\n" +
			"https://example.com/doctors/a,12.0,India,Consultant\n" +
			"https://example.com/doctors/b,,,\n"

		records, err := csv.ReadRecords(strings.NewReader(in))

		require.NoError(t, err)
		require.Len(t, records, 2)
		require.NotNil(t, records[0].ExperienceYears)
		assert.Equal(t, 12, *records[0].ExperienceYears)
		assert.Equal(t, "India", records[0].Country)
		assert.Equal(t, "Consultant", records[0].Designation)
		assert.Nil(t, records[1].ExperienceYears)
		assert.Empty(t, records[1].Country)
	})

	t.Run("accepts the years header with a space before the parenthesis", func(t *testing.T) {
		t.Parallel()

		in := "profile_url,experience (IN YEARS OVERALL),country\n" +
			"https://example.com/doctors/a,12,Bangladesh\n"

		records, err := csv.ReadRecords(strings.NewReader(in))

		require.NoError(t, err)
		require.Len(t, records, 1)
		require.NotNil(t, records[0].ExperienceYears)
		assert.Equal(t, 12, *records[0].ExperienceYears)
		assert.Empty(t, records[0].Experience)
	})

	t.Run("keeps negative years as text instead of a count", func(t *testing.T) {
		t.Parallel()

		in := "profile_url," + csv.HeaderExperienceYears + "\n" +
			"https://example.com/doctors/a,-7\n" +
			"https://example.com/doctors/b,-3.0\n"

		records, err := csv.ReadRecords(strings.NewReader(in))

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Nil(t, records[0].ExperienceYears)
		assert.Equal(t, "-7", records[0].Experience)
		assert.Nil(t, records[1].ExperienceYears)
	})

	t.Run("tolerates short rows", func(t *testing.T) {
		t.Parallel()

		records, err := csv.ReadRecords(strings.NewReader("profile_url,name\nhttps://example.com/doctors/a\n"))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Empty(t, records[0].Name)
	})

	t.Run("returns EINVALID without profile_url column", func(t *testing.T) {
		t.Parallel()

		_, err := csv.ReadRecords(strings.NewReader("name,specialty\nDr. A,Cardiologist\n"))

		assert.Equal(t, medroster.EINVALID, medroster.ErrorCode(err))
	})

	t.Run("returns no records for empty input", func(t *testing.T) {
		t.Parallel()

		records, err := csv.ReadRecords(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestStore(t *testing.T) {
	t.Parallel()

	t.Run("round-trips normalized records through a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "clean", "doctors.csv")
		store := csv.NewStore(path, csv.LayoutNormalized)
		in := []*medroster.Record{{
			RawRecord: medroster.RawRecord{
				ProfileURL: "https://example.com/doctors/a",
				Name:       "Dr. A",
				Specialty:  "Neurology",
				Hospital:   "Apollo Hospitals",
				Location:   "Greams Road, Chennai, India",
			},
			ExperienceYears: years(7),
			Country:         "India",
		}}

		require.NoError(t, store.Save(context.Background(), in))
		out, err := store.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		store := csv.NewStore(filepath.Join(t.TempDir(), "missing.csv"), csv.LayoutRaw)

		_, err := store.Load(context.Background())

		assert.Equal(t, medroster.ENOTFOUND, medroster.ErrorCode(err))
	})

	t.Run("keeps previous file when context is canceled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doctors.csv")
		require.NoError(t, os.WriteFile(path, []byte("profile_url\n"), 0o644))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := csv.NewStore(path, csv.LayoutRaw).Save(ctx, nil)

		assert.ErrorIs(t, err, context.Canceled)
		content, _ := os.ReadFile(path)
		assert.Equal(t, "profile_url\n", string(content))
	})
}
