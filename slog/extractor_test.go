package slog_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/mock"
	medslog "github.com/fwojciec/medroster/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns inner record and logs missing critical fields", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		want := medroster.RawRecord{
			ProfileURL: "https://example.com/doctors/a",
			Name:       "Dr. A",
			Specialty:  "Cardiologist",
		}
		inner := &mock.Extractor{
			ExtractFn: func(*medroster.Page) medroster.RawRecord { return want },
		}

		got := medslog.NewLoggingExtractor(inner, debugLogger(&buf)).Extract(&medroster.Page{
			URL:   want.ProfileURL,
			Lines: []string{"Dr. A", "Cardiologist"},
		})

		assert.Equal(t, want, got)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "lines=2")
		assert.Contains(t, output, "missing=hospital,location")
	})

	t.Run("accepts nil page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(*medroster.Page) medroster.RawRecord { return medroster.RawRecord{} },
		}

		got := medslog.NewLoggingExtractor(inner, debugLogger(&buf)).Extract(nil)

		assert.Equal(t, medroster.RawRecord{}, got)
		assert.Contains(t, buf.String(), "lines=0")
	})
}
