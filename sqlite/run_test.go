package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and creation time", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		run := &medroster.Run{Source: "raw.csv", Input: 10, Output: 7}

		require.NoError(t, svc.CreateRun(context.Background(), run))

		assert.NotEmpty(t, run.ID)
		assert.False(t, run.CreatedAt.IsZero())
	})

	t.Run("rejects negative counts", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		err := svc.CreateRun(context.Background(), &medroster.Run{Input: -1})

		assert.Equal(t, medroster.EINVALID, medroster.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("round-trips stage counts and duration", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		stages := []medroster.StageCount{
			{Stage: "invalid-credential", Before: 10, After: 9},
			{Stage: "dedup", Before: 9, After: 7},
		}
		require.NoError(t, svc.CreateRun(ctx, &medroster.Run{
			Source:   "raw.csv",
			Input:    10,
			Output:   7,
			Stages:   stages,
			Duration: 1500 * time.Millisecond,
		}))

		runs, err := svc.FindRuns(ctx, 0)

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "raw.csv", runs[0].Source)
		assert.Equal(t, stages, runs[0].Stages)
		assert.Equal(t, 1500*time.Millisecond, runs[0].Duration)
	})

	t.Run("returns newest first and honours limit", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		for _, src := range []string{"first.csv", "second.csv", "third.csv"} {
			require.NoError(t, svc.CreateRun(ctx, &medroster.Run{Source: src}))
		}

		runs, err := svc.FindRuns(ctx, 2)

		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "third.csv", runs[0].Source)
		assert.Equal(t, "second.csv", runs[1].Source)
	})

	t.Run("stores nil stages as empty list", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.CreateRun(ctx, &medroster.Run{Source: "raw.csv"}))

		runs, err := svc.FindRuns(ctx, 0)

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Empty(t, runs[0].Stages)
	})
}
