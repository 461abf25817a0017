package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/bank_api/internal/core/ports/repositories"
	"github.com/SscSPs/bank_api/internal/platform/config"
	"github.com/SscSPs/bank_api/internal/repositories/database/migrations"
	"github.com/SscSPs/bank_api/internal/repositories/database/pgsql"
	"github.com/SscSPs/bank_api/internal/repositories/database/sqlite"
	"github.com/SscSPs/bank_api/internal/repositories/memory"
	"github.com/SscSPs/bank_api/pkg/database"
)

// openStore migrates and opens the configured account store. The returned
// func releases its connections.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		logger.Info("Running database migrations...")
		applied, err := migrations.ApplyPostgres(cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		logMigrations(logger, applied)

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.StoreDriverSQLite:
		dsn := database.SQLiteDSN(cfg.SQLitePath)
		db, err := database.NewSQLiteDB(dsn)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}

		logger.Info("Running database migrations...", slog.String("path", cfg.SQLitePath))
		applied, err := migrations.ApplySQLite(dsn)
		if err != nil {
			_ = db.Close()
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("sqlite migrations: %w", err)
		}
		logMigrations(logger, applied)

		return sqlite.NewRepositoryProvider(db), func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing sqlite database", slog.String("error", err.Error()))
			}
		}, nil

	case config.StoreDriverMemory:
		return portsrepo.RepositoryProvider{AccountRepo: memory.NewAccountRepository()}, func() {}, nil
	}
	return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

func logMigrations(logger *slog.Logger, applied bool) {
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
}
