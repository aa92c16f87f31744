package mock

import (
	"context"

	"github.com/fwojciec/medroster"
)

var (
	_ medroster.RecordStore   = (*RecordStore)(nil)
	_ medroster.RecordService = (*RecordService)(nil)
	_ medroster.RunService    = (*RunService)(nil)
)

// RecordStore is a mock implementation of medroster.RecordStore.
type RecordStore struct {
	LoadFn func(ctx context.Context) ([]*medroster.Record, error)
	SaveFn func(ctx context.Context, records []*medroster.Record) error
}

func (s *RecordStore) Load(ctx context.Context) ([]*medroster.Record, error) {
	return s.LoadFn(ctx)
}

func (s *RecordStore) Save(ctx context.Context, records []*medroster.Record) error {
	return s.SaveFn(ctx, records)
}

// RecordService is a mock implementation of medroster.RecordService.
type RecordService struct {
	UpsertRecordsFn   func(ctx context.Context, records []*medroster.Record) (int, error)
	FindRecordByURLFn func(ctx context.Context, url string) (*medroster.Record, error)
	FindRecordsFn     func(ctx context.Context, filter medroster.RecordFilter) ([]*medroster.Record, error)
	DeleteRecordFn    func(ctx context.Context, url string) error
}

func (s *RecordService) UpsertRecords(ctx context.Context, records []*medroster.Record) (int, error) {
	return s.UpsertRecordsFn(ctx, records)
}

func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*medroster.Record, error) {
	return s.FindRecordByURLFn(ctx, url)
}

func (s *RecordService) FindRecords(ctx context.Context, filter medroster.RecordFilter) ([]*medroster.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteRecord(ctx context.Context, url string) error {
	return s.DeleteRecordFn(ctx, url)
}

// RunService is a mock implementation of medroster.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *medroster.Run) error
	FindRunsFn  func(ctx context.Context, limit int) ([]*medroster.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *medroster.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRuns(ctx context.Context, limit int) ([]*medroster.Run, error) {
	return s.FindRunsFn(ctx, limit)
}
