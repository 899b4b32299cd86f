// Package store provides persistence for admitted gateway submissions.
// It exposes a narrow table-insert capability that can be implemented by
// different backends such as in-memory maps, PostgreSQL, or SQLite. The
// gateway only ever appends records; reads and moderation happen in other
// parts of the platform.
package store

import (
	"context"
	"fmt"
	"sort"
)

// Known submission tables.
const (
	TableContacts    = "contact_submissions"
	TableSubscribers = "newsletter_subscribers"
	TableComments    = "comments"
	TablePageViews   = "page_views"
)

// Store defines the submission persistence contract.
type Store interface {
	// Insert appends one record to a known table. Returns ErrDuplicate when
	// the record violates the table's unique constraint (subscriber email),
	// ErrUnknownTable for tables outside the whitelist.
	Insert(ctx context.Context, table string, record map[string]any) error

	// Ping verifies the backend is reachable and operational.
	Ping(ctx context.Context) error

	// Close closes the storage connection and cleans up resources.
	Close() error
}

// Config holds configuration for store backends.
type Config struct {
	// Type specifies the storage backend type (memory, postgres, sqlite)
	Type string `json:"type" yaml:"type"`

	// Path is used for file-based backends
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// ConnectionString is used for database backends
	ConnectionString string `json:"connection_string,omitempty" yaml:"connection_string,omitempty"`
}

// tableColumns whitelists the insertable columns per table. Inserts carrying
// unknown tables or columns are programming errors and fail before reaching
// the backend.
var tableColumns = map[string]map[string]bool{
	TableContacts: {
		"name": true, "email": true, "subject": true, "message": true,
	},
	TableSubscribers: {
		"email": true,
	},
	TableComments: {
		"post_id": true, "content": true, "author_name": true,
		"author_email": true, "approved": true,
	},
	TablePageViews: {
		"page_path": true, "post_id": true, "user_id": true, "session_id": true,
	},
}

// uniqueColumn maps tables to their unique column, for backends that have to
// enforce the constraint themselves.
var uniqueColumn = map[string]string{
	TableSubscribers: "email",
}

// validateRecord checks the table and column whitelist and returns the
// record's columns in deterministic order.
func validateRecord(table string, record map[string]any) ([]string, error) {
	allowed, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	cols := make([]string, 0, len(record))
	for col := range record {
		if !allowed[col] {
			return nil, fmt.Errorf("unknown column %s for table %s", col, table)
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("empty record for table %s", table)
	}
	sort.Strings(cols)
	return cols, nil
}
