package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"scorekeeper/pkg/config"
	"scorekeeper/pkg/store"
)

// initStore connects to Postgres, optionally migrates, seeds the course catalog
// and makes sure the upload directory exists. Migration problems are logged and
// ignored so a read-only role can still serve requests.
func initStore(cfg *config.Config, logger *slog.Logger, migrate bool) (*store.Store, error) {
	st, err := store.Open(cfg.DatabaseDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres database: %w", err)
	}
	if migrate {
		if err := st.Migrate(); err != nil {
			logger.Warn("migration incomplete", "error", err)
		}
	}
	if err := st.SeedCourses(context.Background(), store.DefaultCourses); err != nil {
		logger.Warn("seeding courses failed", "error", err)
	}
	ensureUploadBase(cfg.UploadBase, logger)
	return st, nil
}

// ensureUploadBase creates the base uploads directory.
func ensureUploadBase(base string, logger *slog.Logger) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		logger.Warn("failed to create upload base dir", "dir", base, "error", err)
	}
}
