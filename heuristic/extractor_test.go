package heuristic_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/heuristic"
	"github.com/stretchr/testify/assert"
)

func extract(lines ...string) medroster.RawRecord {
	return heuristic.NewExtractor(nil).Extract(&medroster.Page{
		URL:   "https://example.com/doctors/dr-a",
		Lines: lines,
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts a typical profile", func(t *testing.T) {
		t.Parallel()

		page := &medroster.Page{
			URL:     "https://sasthyaseba.com/doctors/dr-rahim",
			Heading: "Dr. Abdur Rahim",
			Lines: []string{
				"Home",
				"Dr. Abdur Rahim",
				"MBBS, FCPS (Medicine)",
				"MD (Cardiology)",
				"Cardiologist",
				"15 Years of Experience Overall",
				"Doctor Reg. BMDC A-12345",
				"Chamber",
				"Square Hospital Ltd",
				"Get Direction",
				"18/F, Bir Uttam Qazi Nuruzzaman Sarak, Dhaka 1205",
				"Book Appointment",
			},
		}

		got := heuristic.NewExtractor(nil).Extract(page)

		assert.Equal(t, medroster.RawRecord{
			ProfileURL:     "https://sasthyaseba.com/doctors/dr-rahim",
			Name:           "Dr. Abdur Rahim",
			Qualifications: "MBBS, FCPS (Medicine), MD (Cardiology)",
			Specialty:      "Cardiologist",
			Experience:     "15 Years of Experience Overall",
			Hospital:       "Square Hospital Ltd",
			Location:       "18/F, Bir Uttam Qazi Nuruzzaman Sarak, Dhaka 1205",
		}, got)
	})

	t.Run("returns all fields missing for an empty page", func(t *testing.T) {
		t.Parallel()

		got := heuristic.NewExtractor(nil).Extract(&medroster.Page{URL: "https://example.com/doctors/x"})

		assert.Equal(t, medroster.RawRecord{ProfileURL: "https://example.com/doctors/x"}, got)
	})

	t.Run("returns empty record for nil page", func(t *testing.T) {
		t.Parallel()

		got := heuristic.NewExtractor(nil).Extract(nil)

		assert.Equal(t, medroster.RawRecord{}, got)
	})

	t.Run("trims caller lines and ignores blank ones", func(t *testing.T) {
		t.Parallel()

		got := extract("", "  Square Hospital Ltd  ", "\t", " 123 Panthapath Road, Dhaka ")

		assert.Equal(t, "Square Hospital Ltd", got.Hospital)
		assert.Equal(t, "123 Panthapath Road, Dhaka", got.Location)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		lines := []string{"Dr. A", "MBBS", "Neurologist", "City Hospital", "Road 5, Dhaka, Bangladesh"}

		assert.Equal(t, extract(lines...), extract(lines...))
	})
}

func TestExtractor_Extract_Total(t *testing.T) {
	t.Parallel()

	pool := []string{
		"", " ", "Dr.", "Prof. Dr. X", "MBBS", "MS", "Hospital", "Clinic",
		"Get Direction", "Info", ",", "Road", "Specialist", "Surgeon",
		"Years of Experience", "Qualifications:", "ক্লিনিক", "日本語", " ",
		"Book", "ENT", "ist", strings.Repeat("x", 300), "Medical College, Dhaka",
	}
	rng := rand.New(rand.NewPCG(1, 2))
	e := heuristic.NewExtractor(nil)

	for range 500 {
		n := rng.IntN(40)
		lines := make([]string, n)
		for i := range lines {
			var b strings.Builder
			for range rng.IntN(4) + 1 {
				b.WriteString(pool[rng.IntN(len(pool))])
				b.WriteString(" ")
			}
			lines[i] = b.String()
		}

		got := e.Extract(&medroster.Page{URL: "https://example.com/doctors/x", Lines: lines})

		rec := &medroster.Record{RawRecord: got}
		for _, f := range medroster.TextFields {
			v := rec.Value(f)
			assert.Equal(t, strings.TrimSpace(v), v, "field %s not trimmed", f)
			if v != "" {
				assert.NotEmpty(t, strings.TrimSpace(v), "field %s is blank but present", f)
			}
		}
	}
}
