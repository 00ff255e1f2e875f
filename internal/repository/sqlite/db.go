// Package sqlite stores templates, overrides and categories in a single SQLite file
// through the pure Go modernc driver.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dafibh/fortuna/ledger-backend/internal/util"

	_ "modernc.org/sqlite"
)

const timestampLayout = time.RFC3339Nano

// Open creates the database directory if needed, applies migrations when migrate is set,
// and returns a handle with foreign keys enforced
func Open(dbPath string, migrate bool) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if migrate {
		if err := RunMigrations(dbPath); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// a single writer keeps check-then-write sequences atomic
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func formatDate(t time.Time) string {
	return t.Format(util.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(util.DateLayout, s)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		// rows written by CURRENT_TIMESTAMP defaults
		t, _ = time.Parse(time.DateTime, s)
	}
	return t
}
