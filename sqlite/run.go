package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/medroster"
	"github.com/google/uuid"
)

var _ medroster.RunService = (*RunService)(nil)

// RunService implements medroster.RunService using SQLite. Stage counts are
// stored as a JSON array.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a run with a generated ID and creation time.
func (s *RunService) CreateRun(ctx context.Context, run *medroster.Run) error {
	if run.Input < 0 || run.Output < 0 {
		return medroster.Errorf(medroster.EINVALID, "run counts must not be negative")
	}

	stages := run.Stages
	if stages == nil {
		stages = []medroster.StageCount{}
	}
	encoded, err := json.Marshal(stages)
	if err != nil {
		return fmt.Errorf("encode stages: %w", err)
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, input, output, stages, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.Input, run.Output, string(encoded),
		run.Duration.Milliseconds(), run.CreatedAt.Format(timeLayout))

	return err
}

// FindRuns returns runs newest first. A limit of 0 returns all.
func (s *RunService) FindRuns(ctx context.Context, limit int) ([]*medroster.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, input, output, stages, duration_ms, created_at FROM runs ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*medroster.Run{}
	for rows.Next() {
		var run medroster.Run
		var stages, createdAt string
		var durationMS int64
		if err := rows.Scan(&run.ID, &run.Source, &run.Input, &run.Output, &stages, &durationMS, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(stages), &run.Stages); err != nil {
			return nil, fmt.Errorf("failed to parse stages: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
