package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/medroster"
)

var _ medroster.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService, logging writes.
type LoggingRecordService struct {
	next   medroster.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next medroster.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// UpsertRecords delegates and logs how many rows changed.
func (s *LoggingRecordService) UpsertRecords(ctx context.Context, records []*medroster.Record) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("upsert records",
			"records", len(records),
			"written", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertRecords(ctx, records)
}

// FindRecordByURL delegates to the wrapped service.
func (s *LoggingRecordService) FindRecordByURL(ctx context.Context, url string) (*medroster.Record, error) {
	return s.next.FindRecordByURL(ctx, url)
}

// FindRecords delegates to the wrapped service.
func (s *LoggingRecordService) FindRecords(ctx context.Context, filter medroster.RecordFilter) ([]*medroster.Record, error) {
	return s.next.FindRecords(ctx, filter)
}

// DeleteRecord delegates and logs the removal.
func (s *LoggingRecordService) DeleteRecord(ctx context.Context, url string) (err error) {
	defer func() {
		s.logger.Info("delete record", "url", url, "err", err)
	}()
	return s.next.DeleteRecord(ctx, url)
}
