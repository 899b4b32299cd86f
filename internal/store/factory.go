package store

import (
	"fmt"

	"pressroom/internal/models"
)

// Factory provides a centralized way to create store instances based on configuration.
// This allows for easy extensibility and provider swapping without code changes.
type Factory struct{}

// NewFactory creates a new store factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create instantiates a store provider based on the provided configuration.
// Supported providers:
//   - memory: In-memory store (for testing/development)
//   - postgres: PostgreSQL database store (production-ready)
//   - sqlite: SQLite database store (lightweight database)
func (f *Factory) Create(config models.StoreConfig) (Store, error) {
	storeConfig := Config{
		Type:             config.Type,
		Path:             config.Path,
		ConnectionString: config.Database.DSN,
	}

	switch config.Type {
	case models.StoreTypeMemory:
		return NewMemoryStore(storeConfig)
	case models.StoreTypePostgres:
		return NewPostgresStore(storeConfig)
	case models.StoreTypeSQLite:
		return NewSQLiteStore(storeConfig)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// GetSupportedProviders returns a list of all supported store provider types
func (f *Factory) GetSupportedProviders() []string {
	return []string{models.StoreTypeMemory, models.StoreTypePostgres, models.StoreTypeSQLite}
}
