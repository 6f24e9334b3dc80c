package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps an in-memory SQLite database that lives as long as the process.
type DB struct {
	db *sql.DB
}

// Open creates the session database and its schema.
func Open(ctx context.Context) (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	// Every connection to :memory: is its own database; keep exactly one open
	// and never let it idle out.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS activity (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id   TEXT NOT NULL UNIQUE,
		kind       TEXT NOT NULL,
		program_id INTEGER,
		summary    TEXT NOT NULL,
		at         TIMESTAMP NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating activity table: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database, discarding its contents.
func (d *DB) Close() error {
	return d.db.Close()
}
