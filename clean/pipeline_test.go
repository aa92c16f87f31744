package clean_test

import (
	"context"
	"testing"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/clean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("normalizes then filters", func(t *testing.T) {
		t.Parallel()

		good := complete("a")
		good.Specialty = "Senior Consultant Cardiologist"
		good.Country = ""
		dup := complete("a")
		bmdc := complete("b")
		bmdc.Qualifications = "BMDC-12345"
		noSpecialty := complete("c")
		noSpecialty.Specialty = ""
		collapsed := complete("d")
		collapsed.Location = collapsed.Hospital

		res, err := clean.NewPipeline(nil).Run(context.Background(), []*medroster.Record{good, dup, bmdc, noSpecialty, collapsed})

		require.NoError(t, err)
		require.Len(t, res.Records, 1)
		assert.Equal(t, "Cardiologist", res.Records[0].Specialty)
		assert.Equal(t, "Bangladesh", res.Records[0].Country)
		assert.Equal(t, 10, *res.Records[0].ExperienceYears)
		assert.Equal(t, []medroster.StageCount{
			{Stage: "invalid-credential", Before: 5, After: 4},
			{Stage: "repeated-value", Before: 4, After: 3},
			{Stage: "dedup", Before: 3, After: 2},
			{Stage: "completeness", Before: 2, After: 1},
		}, res.Stages)
		assert.Equal(t, 4, res.Removed())

		// Input records are left as they were.
		assert.Equal(t, "Senior Consultant Cardiologist", good.Specialty)
	})

	t.Run("applies country allow-list", func(t *testing.T) {
		t.Parallel()

		nepal := complete("b")
		nepal.Location = "Thamel, Kathmandu, Nepal"

		res, err := clean.NewPipeline(nil, clean.WithCountries(medroster.DefaultCountries...)).
			Run(context.Background(), []*medroster.Record{complete("a"), nepal})

		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, urls(res.Records))
	})

	t.Run("is stable on its own output", func(t *testing.T) {
		t.Parallel()

		p := clean.NewPipeline(nil, clean.WithConcurrency(2))
		first, err := p.Run(context.Background(), []*medroster.Record{complete("a"), complete("b"), complete("c")})
		require.NoError(t, err)

		second, err := p.Run(context.Background(), first.Records)

		require.NoError(t, err)
		assert.Equal(t, first.Records, second.Records)
		assert.Zero(t, second.Removed())
	})

	t.Run("keeps input order", func(t *testing.T) {
		t.Parallel()

		var in []*medroster.Record
		var want []string
		for _, u := range []string{"e", "d", "c", "b", "a", "f", "g"} {
			in = append(in, complete(u))
			want = append(want, u)
		}

		res, err := clean.NewPipeline(nil, clean.WithConcurrency(3)).Run(context.Background(), in)

		require.NoError(t, err)
		assert.Equal(t, want, urls(res.Records))
	})

	t.Run("returns EINVALID for a record without profile URL", func(t *testing.T) {
		t.Parallel()

		res, err := clean.NewPipeline(nil).Run(context.Background(), []*medroster.Record{complete("a"), complete("")})

		assert.Nil(t, res)
		assert.Equal(t, medroster.EINVALID, medroster.ErrorCode(err))
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := clean.NewPipeline(nil).Run(ctx, []*medroster.Record{complete("a")})

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("handles empty input", func(t *testing.T) {
		t.Parallel()

		res, err := clean.NewPipeline(nil).Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, res.Records)
		assert.Len(t, res.Stages, 4)
	})
}

func TestClean(t *testing.T) {
	t.Parallel()

	t.Run("applies validation without normalizing", func(t *testing.T) {
		t.Parallel()

		r := complete("a")
		r.Specialty = "Senior Consultant Cardiologist"

		got, err := clean.Clean([]*medroster.Record{r, complete("a")})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Senior Consultant Cardiologist", got[0].Specialty)
	})

	t.Run("rejects nil records", func(t *testing.T) {
		t.Parallel()

		_, err := clean.Clean([]*medroster.Record{nil})

		assert.Equal(t, medroster.EINVALID, medroster.ErrorCode(err))
	})
}
