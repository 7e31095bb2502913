package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/facegate/internal/config"
	"github.com/kozaktomas/facegate/internal/registry"
	"github.com/kozaktomas/facegate/internal/store/mariadb"
	"github.com/kozaktomas/facegate/internal/store/postgres"
	"github.com/kozaktomas/facegate/internal/store/sheet"
)

// openStore creates the record store for the configured backend. The returned
// close func is a no-op for backends without a connection to release.
func openStore(ctx context.Context, cfg *config.Config) (registry.Store, func(), error) {
	switch cfg.Store.Backend {
	case "sheet":
		if cfg.Store.SheetURL == "" {
			return nil, nil, errors.New("SHEET_URL environment variable is required for the sheet backend")
		}
		var s *sheet.Store
		if captureDir != "" {
			s = sheet.NewWithCapture(cfg.Store.SheetURL, captureDir)
		} else {
			s = sheet.New(cfg.Store.SheetURL)
		}
		return s, func() {}, nil

	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL environment variable is required for the postgres backend")
		}
		pool, err := postgres.NewPool(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := pool.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return postgres.NewStore(pool, cfg.EmbeddingDim()), func() { _ = pool.Close() }, nil

	case "mariadb":
		if cfg.Store.MariaDBDSN == "" {
			return nil, nil, errors.New("MARIADB_DSN environment variable is required for the mariadb backend")
		}
		s, err := mariadb.NewStore(cfg.Store.MariaDBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to MariaDB: %w", err)
		}
		return s, func() { _ = s.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q (expected sheet, postgres or mariadb)", cfg.Store.Backend)
	}
}
