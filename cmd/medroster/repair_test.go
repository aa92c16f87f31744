package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/medroster"
	main "github.com/fwojciec/medroster/cmd/medroster"
	"github.com/fwojciec/medroster/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("fills missing fields and writes the dataset", func(t *testing.T) {
		t.Parallel()

		in := writeFile(t, "raw.csv",
			"profile_url,name,qualifications,specialty,experience,hospital,location\n"+
				"https://example.com/doctors/a,Dr. A,MBBS,Cardiologist,N/A,N/A,\"Panthapath, Dhaka\"\n"+
				"https://example.com/doctors/b,Dr. B,MBBS,Neurologist,N/A,City Hospital,\"Road 5, Dhaka\"\n")
		out := filepath.Join(t.TempDir(), "fixed.csv")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)

		var fetched []string
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = append(fetched, url)
				return "<html></html>", nil
			},
		}
		deps.Reader = &mock.PageReader{
			ReadPageFn: func(_, url string) (*medroster.Page, error) {
				return &medroster.Page{URL: url}, nil
			},
		}
		deps.Extractor = &mock.Extractor{
			ExtractFn: func(page *medroster.Page) medroster.RawRecord {
				return medroster.RawRecord{Hospital: "Square Hospital Ltd", Specialty: "Medicine Specialist"}
			},
		}
		deps.RateLimiter = &mock.HostLimiter{
			WaitFn: func(context.Context, string) error { return nil },
		}

		err := (&main.RepairCmd{In: in, Out: out}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/doctors/a"}, fetched)
		written := readFile(t, out)
		assert.Contains(t, written, "https://example.com/doctors/a,Dr. A,MBBS,Cardiologist,N/A,Square Hospital Ltd,")
		assert.Contains(t, written, "https://example.com/doctors/b,Dr. B,MBBS,Neurologist,N/A,City Hospital,")
		assert.Contains(t, stdout.String(), "Attempted 1, failed 0")
		assert.Contains(t, stdout.String(), "hospital fixed: 1")
		assert.Contains(t, stdout.String(), "specialty fixed: 0")
	})

	t.Run("keeps normalized layout", func(t *testing.T) {
		t.Parallel()

		in := writeFile(t, "clean.csv",
			"profile_url,name,qualifications,specialty,experience(IN YEARS OVERALL),hospital,location,country\n"+
				"https://example.com/doctors/a,Dr. A,MBBS,Cardiologist,12,City Hospital,\"Road 5, Dhaka, Bangladesh\",Bangladesh\n")
		out := filepath.Join(t.TempDir(), "fixed.csv")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := (&main.RepairCmd{In: in, Out: out}).Run(testDeps(stdout, stderr))

		require.NoError(t, err)
		written := readFile(t, out)
		assert.Contains(t, written, "experience(IN YEARS OVERALL)")
		assert.Contains(t, written, ",12,City Hospital,")
		assert.Contains(t, stdout.String(), "Attempted 0, failed 0")
	})
}
