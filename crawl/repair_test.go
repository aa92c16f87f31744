package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/crawl"
	"github.com/fwojciec/medroster/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freshExtractor finds every critical field on re-extraction.
func freshExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(page *medroster.Page) medroster.RawRecord {
			return medroster.RawRecord{
				ProfileURL: page.URL,
				Specialty:  "Neurologist",
				Hospital:   "Square Hospital Ltd",
				Location:   "18/F West Panthapath, Dhaka",
			}
		},
	}
}

func newRepairer() *crawl.Repairer {
	return &crawl.Repairer{
		Fetcher:     staticFetcher(),
		Reader:      lineReader(),
		Extractor:   freshExtractor(),
		Concurrency: 2,
		RetryDelays: noRetry,
	}
}

func TestRepairer_Repair(t *testing.T) {
	t.Parallel()

	t.Run("fills only missing critical fields", func(t *testing.T) {
		t.Parallel()

		in := []*medroster.Record{{RawRecord: medroster.RawRecord{
			ProfileURL: profileURL("a"),
			Name:       "Dr. A",
			Specialty:  "Cardiologist",
		}}}

		result, err := newRepairer().Repair(context.Background(), in, nil)

		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		got := result.Records[0]
		assert.Equal(t, "Cardiologist", got.Specialty)
		assert.Equal(t, "Square Hospital Ltd", got.Hospital)
		assert.Equal(t, "18/F West Panthapath, Dhaka", got.Location)
		assert.Equal(t, "Dr. A", got.Name)
		assert.Equal(t, map[medroster.Field]int{
			medroster.FieldHospital: 1,
			medroster.FieldLocation: 1,
		}, result.Fixed)
		assert.Equal(t, 1, result.Attempted)
	})

	t.Run("does not modify input records", func(t *testing.T) {
		t.Parallel()

		in := []*medroster.Record{{RawRecord: medroster.RawRecord{ProfileURL: profileURL("a")}}}

		_, err := newRepairer().Repair(context.Background(), in, nil)

		require.NoError(t, err)
		assert.Empty(t, in[0].Hospital)
		assert.Empty(t, in[0].Specialty)
	})

	t.Run("skips complete records and records without URL", func(t *testing.T) {
		t.Parallel()

		r := newRepairer()
		r.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				t.Errorf("unexpected fetch of %s", url)
				return "", errors.New("unexpected")
			},
		}
		in := []*medroster.Record{
			{RawRecord: medroster.RawRecord{
				ProfileURL: profileURL("a"),
				Specialty:  "Cardiologist",
				Hospital:   "Labaid Hospital",
				Location:   "House 1, Road 4, Dhanmondi, Dhaka",
			}},
			{RawRecord: medroster.RawRecord{Name: "Dr. No URL"}},
		}

		result, err := r.Repair(context.Background(), in, nil)

		require.NoError(t, err)
		assert.Zero(t, result.Attempted)
		assert.Len(t, result.Records, 2)
	})

	t.Run("counts failed fetches and keeps record unchanged", func(t *testing.T) {
		t.Parallel()

		r := newRepairer()
		r.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("HTTP 500")
			},
		}
		in := []*medroster.Record{{RawRecord: medroster.RawRecord{ProfileURL: profileURL("a")}}}

		result, err := r.Repair(context.Background(), in, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Empty(t, result.Records[0].Hospital)
		assert.Empty(t, result.Fixed)
	})

	t.Run("returns EINVALID for nil record", func(t *testing.T) {
		t.Parallel()

		_, err := newRepairer().Repair(context.Background(), []*medroster.Record{nil}, nil)

		assert.Equal(t, medroster.EINVALID, medroster.ErrorCode(err))
	})
}
