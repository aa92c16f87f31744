package sqlite

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/medroster"
)

// timeLayout is RFC 3339 with fixed-width nanoseconds so stored timestamps
// sort as strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// parseRFC3339 parses a stored timestamp, naming the column on failure.
func parseRFC3339(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses when values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// fingerprint hashes every stored column of a record so unchanged rows can
// be skipped on upsert.
func fingerprint(r *medroster.Record) string {
	d := xxhash.New()
	for _, f := range medroster.TextFields {
		_, _ = d.WriteString(r.Value(f))
		_, _ = d.WriteString("\x1f")
	}
	_, _ = d.WriteString(r.Country)
	_, _ = d.WriteString("\x1f")
	if r.ExperienceYears != nil {
		_, _ = d.WriteString(strconv.Itoa(*r.ExperienceYears))
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
