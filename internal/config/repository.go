package config

import (
	"fmt"

	"locked-todo/internal/repository/sqlite"
)

// OpenStore opens the session task store named by cfg.Store.DSN. Only
// in-memory databases are accepted; the store is gone once it is closed.
func OpenStore(cfg *Config) (sqlite.Repository, error) {
	if !IsInMemoryDSN(cfg.Store.DSN) {
		return nil, &ConfigError{Field: "store.dsn", Message: fmt.Sprintf("%q is not an in-memory database", cfg.Store.DSN)}
	}

	repo, err := sqlite.New(cfg.Store.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}
	return repo, nil
}
