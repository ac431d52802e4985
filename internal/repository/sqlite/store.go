// Package sqlite is the single-user storage backend: the same repositories as the
// postgres ones, over a local database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Times are stored as fixed-width UTC text so that text order equals time order
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL CHECK (name <> ''),
	frequency_type TEXT NOT NULL CHECK (frequency_type IN ('daily', 'times_per_week', 'hours_per_week')),
	target_value REAL NOT NULL CHECK (target_value > 0),
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS habit_logs (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL REFERENCES habits (id),
	log_date TEXT NOT NULL,
	value REAL NOT NULL CHECK (value >= 0),
	completed INTEGER NOT NULL DEFAULT 0,
	note TEXT,
	photo_data BLOB,
	UNIQUE (habit_id, log_date)
);

CREATE INDEX IF NOT EXISTS habit_logs_log_date_idx ON habit_logs (log_date DESC);
`

// Open creates the database file if needed and applies the schema
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.New("creating database directory error: " + err.Error())
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.New("opening sqlite database error: " + err.Error())
	}
	// single writer
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.New("pinging sqlite database error: " + err.Error())
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.New("applying sqlite schema error: " + err.Error())
	}
	return db, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
