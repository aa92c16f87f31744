// Package sqlite stores cleaned doctor records and pipeline run history in
// SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// migrations are applied in order. PRAGMA user_version records how many
// have run, so a database opened by an older build picks up the rest.
// Append only.
var migrations = []string{
	`CREATE TABLE records (
		profile_url TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		qualifications TEXT NOT NULL DEFAULT '',
		specialty TEXT NOT NULL DEFAULT '',
		experience TEXT NOT NULL DEFAULT '',
		experience_years INTEGER,
		hospital TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		designation TEXT NOT NULL DEFAULT '',
		fingerprint TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX idx_records_country ON records(country);
	CREATE INDEX idx_records_specialty ON records(specialty);`,

	`CREATE TABLE runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL DEFAULT '',
		input INTEGER NOT NULL DEFAULT 0,
		output INTEGER NOT NULL DEFAULT 0,
		stages TEXT NOT NULL DEFAULT '[]',
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE INDEX idx_runs_created ON runs(created_at);`,
}

// DB is a single-writer SQLite handle.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path, or MemoryPath.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects and brings the schema up to date.
func (db *DB) Open(ctx context.Context) error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: SQLite has a single writer, and an in-memory database
	// exists only on the connection that created it.
	conn.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON"}
	if db.path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			conn.Close()
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	if err := migrate(ctx, conn); err != nil {
		conn.Close()
		return err
	}
	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// SchemaVersion reports how many migrations the database has applied.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
	return v, err
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// withTx runs fn in a transaction, committing only if fn succeeds.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func migrate(ctx context.Context, conn *sql.DB) error {
	var version int
	if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d: %w", i+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
