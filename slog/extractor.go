package slog

import (
	"log/slog"
	"strings"

	"github.com/fwojciec/medroster"
)

var _ medroster.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs which critical fields could
// not be found, the usual sign of a changed page layout.
type LoggingExtractor struct {
	next   medroster.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next medroster.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(page *medroster.Page) medroster.RawRecord {
	raw := e.next.Extract(page)

	rec := medroster.Record{RawRecord: raw}
	missing := rec.MissingCritical()
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}

	lines := 0
	if page != nil {
		lines = len(page.Lines)
	}
	e.logger.Debug("extract",
		"url", raw.ProfileURL,
		"lines", lines,
		"name", raw.Name,
		"missing", strings.Join(names, ","),
	)
	return raw
}
