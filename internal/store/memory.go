package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore implements the Store interface using in-memory data structures.
// This backend is ideal for development and testing; data is lost on restart.
// It enforces the same unique constraints the database backends do, so
// duplicate-subscribe behavior is testable without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string][]map[string]any // key: table name
}

// NewMemoryStore creates a new memory-based store instance.
func NewMemoryStore(_ Config) (*MemoryStore, error) {
	return &MemoryStore{
		rows: make(map[string][]map[string]any),
	}, nil
}

// Insert appends a record, enforcing the table's unique column if it has one.
func (m *MemoryStore) Insert(_ context.Context, table string, record map[string]any) error {
	if _, err := validateRecord(table, record); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if col, ok := uniqueColumn[table]; ok {
		val := record[col]
		for _, existing := range m.rows[table] {
			if existing[col] == val {
				return fmt.Errorf("insert into %s: %w", table, ErrDuplicate)
			}
		}
	}

	// Store a copy to prevent external modification
	recordCopy := make(map[string]any, len(record))
	for k, v := range record {
		recordCopy[k] = v
	}
	m.rows[table] = append(m.rows[table], recordCopy)

	return nil
}

// Count returns the number of records stored for a table.
func (m *MemoryStore) Count(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows[table])
}

// Rows returns copies of all records stored for a table.
func (m *MemoryStore) Rows(table string) []map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]map[string]any, 0, len(m.rows[table]))
	for _, record := range m.rows[table] {
		recordCopy := make(map[string]any, len(record))
		for k, v := range record {
			recordCopy[k] = v
		}
		out = append(out, recordCopy)
	}
	return out
}

// Ping verifies the store is operational.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Close clears all data.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = make(map[string][]map[string]any)
	return nil
}
