package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite3 "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite via modernc.org/sqlite
// (pure Go, no cgo). Suitable for single-node deployments that want durable
// submissions without running a database server.
type SQLiteStore struct {
	db *sql.DB
}

// SQLite extended result codes for unique-constraint violations.
const (
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS contact_submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		post_id TEXT NOT NULL,
		content TEXT NOT NULL,
		author_name TEXT NOT NULL,
		author_email TEXT NOT NULL,
		approved BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS page_views (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		page_path TEXT NOT NULL,
		post_id TEXT,
		user_id TEXT,
		session_id TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// NewSQLiteStore creates a new SQLite store instance and ensures the
// submission tables exist.
func NewSQLiteStore(config Config) (Store, error) {
	dsn := config.ConnectionString
	if dsn == "" {
		dsn = config.Path
	}
	if dsn == "" {
		return nil, fmt.Errorf("connection string or path is required for SQLite store")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	ss := &SQLiteStore{db: db}
	if err := ss.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return ss, nil
}

func (ss *SQLiteStore) initSchema(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := ss.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Insert appends one record to a known table.
func (ss *SQLiteStore) Insert(ctx context.Context, table string, record map[string]any) error {
	cols, err := validateRecord(table, record)
	if err != nil {
		return err
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = "?"
		args[i] = record[col]
	}

	// Table and column names come from the whitelist, never from the caller.
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := ss.db.ExecContext(ctx, query, args...); err != nil {
		var sqliteErr *sqlite3.Error
		if errors.As(err, &sqliteErr) {
			switch sqliteErr.Code() {
			case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
				return fmt.Errorf("insert into %s: %w", table, ErrDuplicate)
			}
		}
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	return nil
}

// Ping verifies the database is reachable.
func (ss *SQLiteStore) Ping(ctx context.Context) error {
	return ss.db.PingContext(ctx)
}

// Close closes the database connection.
func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}
