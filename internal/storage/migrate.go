package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations brings the ledger schema at dbPath to the latest version on
// its own connection. Failures report the version the schema was left at.
func RunMigrations(dbPath string) error {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return fmt.Errorf("open %s for migration: %w", dbPath, err)
	}
	defer db.Close()

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	target, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("prepare %s for migration: %w", dbPath, err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", target)
	if err != nil {
		return fmt.Errorf("prepare %s for migration: %w", dbPath, err)
	}
	defer m.Close()

	upErr := m.Up()
	version, dirty, verErr := m.Version()
	switch {
	case upErr == nil || errors.Is(upErr, migrate.ErrNoChange):
	case verErr != nil:
		return fmt.Errorf("migrate %s: %w", dbPath, upErr)
	case dirty:
		return fmt.Errorf("migrate %s: stuck at dirty version %d: %w", dbPath, version, upErr)
	default:
		return fmt.Errorf("migrate %s: stopped at version %d: %w", dbPath, version, upErr)
	}

	if upErr == nil {
		slog.Info("Ledger schema migrated", "db_path", dbPath, "version", version)
	}
	return nil
}
