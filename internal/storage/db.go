// Package storage provides the SQL store for recorded chat events.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Common errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns int
}

// Open connects to an sqlite or postgres database and verifies the connection.
func Open(ctx context.Context, driver, dsn string, opts Options) (*sql.DB, error) {
	var sqlDriver string
	switch driver {
	case "sqlite", "sqlite3":
		sqlDriver = "sqlite3"
	case "postgres":
		sqlDriver = "postgres"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

const chatEventsSchema = `
	CREATE TABLE IF NOT EXISTS chat_events (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		session_id TEXT NOT NULL DEFAULT '',
		rule TEXT NOT NULL DEFAULT '',
		topic TEXT NOT NULL DEFAULT '',
		utterance TEXT NOT NULL DEFAULT '',
		occurred_at TIMESTAMP NOT NULL
	)
`

const chatEventsIndex = `
	CREATE INDEX IF NOT EXISTS idx_chat_events_occurred_at ON chat_events (occurred_at)
`

// Migrate creates the tables the event store needs.
func Migrate(ctx context.Context, db DB) error {
	for _, stmt := range []string{chatEventsSchema, chatEventsIndex} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
