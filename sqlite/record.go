package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/medroster"
)

// Compile-time interface verification.
var _ medroster.RecordService = (*RecordService)(nil)

// RecordService implements medroster.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

const recordColumns = `profile_url, name, qualifications, specialty, experience,
	experience_years, hospital, location, country, designation`

// upsertRecord rewrites a row only when its fingerprint changed, so
// RowsAffected counts real changes.
const upsertRecord = `
	INSERT INTO records (` + recordColumns + `, fingerprint, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(profile_url) DO UPDATE SET
		name = excluded.name,
		qualifications = excluded.qualifications,
		specialty = excluded.specialty,
		experience = excluded.experience,
		experience_years = excluded.experience_years,
		hospital = excluded.hospital,
		location = excluded.location,
		country = excluded.country,
		designation = excluded.designation,
		fingerprint = excluded.fingerprint,
		updated_at = excluded.updated_at
	WHERE records.fingerprint <> excluded.fingerprint`

// UpsertRecords writes records in one transaction, keyed by profile URL.
// Rows whose fingerprint is unchanged are left alone and not counted.
func (s *RecordService) UpsertRecords(ctx context.Context, records []*medroster.Record) (int, error) {
	for i, r := range records {
		if r == nil {
			return 0, medroster.Errorf(medroster.EINVALID, "record %d is nil", i)
		}
		if err := r.Validate(); err != nil {
			return 0, err
		}
	}

	written := 0
	err := s.db.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertRecord)
		if err != nil {
			return err
		}
		defer stmt.Close()

		now := time.Now().UTC().Format(timeLayout)
		for _, r := range records {
			var years sql.NullInt64
			if r.ExperienceYears != nil {
				years = sql.NullInt64{Int64: int64(*r.ExperienceYears), Valid: true}
			}
			result, err := stmt.ExecContext(ctx,
				r.ProfileURL, r.Name, r.Qualifications, r.Specialty, r.Experience,
				years, r.Hospital, r.Location, r.Country, r.Designation,
				fingerprint(r), now)
			if err != nil {
				return err
			}
			n, err := result.RowsAffected()
			if err != nil {
				return err
			}
			written += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// FindRecordByURL retrieves a record by profile URL.
func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*medroster.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE profile_url = ?`, url)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, medroster.Errorf(medroster.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindRecords retrieves records matching the filter, ordered by profile URL.
func (s *RecordService) FindRecords(ctx context.Context, filter medroster.RecordFilter) ([]*medroster.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + recordColumns + ` FROM records WHERE 1=1`)

	if filter.Country != nil {
		query.WriteString(" AND country = ?")
		args = append(args, *filter.Country)
	}
	if filter.Specialty != nil {
		query.WriteString(" AND specialty = ?")
		args = append(args, *filter.Specialty)
	}
	if filter.MissingCritical {
		query.WriteString(" AND (hospital = '' OR location = '' OR specialty = '')")
	}

	query.WriteString(" ORDER BY profile_url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*medroster.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteRecord permanently removes a record.
func (s *RecordService) DeleteRecord(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE profile_url = ?", url)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return medroster.Errorf(medroster.ENOTFOUND, "record not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*medroster.Record, error) {
	var r medroster.Record
	var years sql.NullInt64
	if err := row.Scan(&r.ProfileURL, &r.Name, &r.Qualifications, &r.Specialty, &r.Experience,
		&years, &r.Hospital, &r.Location, &r.Country, &r.Designation); err != nil {
		return nil, err
	}
	if years.Valid {
		n := int(years.Int64)
		r.ExperienceYears = &n
	}
	return &r, nil
}
