// Package migrations applies the embedded schema migrations with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// ApplyPostgres runs all pending "up" migrations against a Postgres database.
// It opens and closes its own connection. The returned bool is false when
// the schema was already current.
func ApplyPostgres(databaseURL string) (bool, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return false, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return false, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}
	return apply(postgresFS, "postgres", "postgres", driver)
}

// ApplySQLite runs all pending "up" migrations against a SQLite database.
// For shared in-memory databases the caller must keep another connection
// open, since this one is closed when migrations finish.
func ApplySQLite(dsn string) (bool, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return false, fmt.Errorf("failed to open sqlite database for migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		_ = db.Close()
		return false, fmt.Errorf("could not create sqlite driver instance for migrations: %w", err)
	}
	return apply(sqliteFS, "sqlite", "sqlite3", driver)
}

func apply(fsys embed.FS, dir, databaseName string, driver database.Driver) (bool, error) {
	source, err := iofs.New(fsys, dir)
	if err != nil {
		_ = driver.Close()
		return false, fmt.Errorf("could not open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return false, fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()

	// Closing the migrate instance also closes the database connection.
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("failed to apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return false, fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return false, fmt.Errorf("migration database error: %w", dbErr)
	}

	return !errors.Is(upErr, migrate.ErrNoChange), nil
}
