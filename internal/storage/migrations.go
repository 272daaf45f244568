package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Separate connection; closing the migrator closes its database handle.
	migrateDB, err := sql.Open("sqlite3", s.dbPath+"?_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("%w: open migration database: %v", common.ErrStorageUnavailable, err)
	}

	driver, err := sqlite3.WithInstance(migrateDB, &sqlite3.Config{})
	if err != nil {
		_ = migrateDB.Close()
		return fmt.Errorf("%w: create sqlite driver: %v", common.ErrStorageUnavailable, err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = migrateDB.Close()
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		_ = migrateDB.Close()
		return fmt.Errorf("%w: create migrate instance: %v", common.ErrStorageUnavailable, err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: run migrations: %v", common.ErrStorageUnavailable, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("%w: read schema version: %v", common.ErrStorageUnavailable, err)
	}
	if dirty {
		return fmt.Errorf("%w: schema version %d is dirty", common.ErrStorageUnavailable, version)
	}
	if version != ExpectedSchemaVersion {
		return fmt.Errorf("%w: database schema version mismatch: expected %d, got %d",
			common.ErrStorageUnavailable, ExpectedSchemaVersion, version)
	}

	slog.Debug("database schema up to date", "version", version, "path", s.dbPath)
	return nil
}

// SchemaVersion reports the applied schema version, or 0 for a fresh database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (uint, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'`,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}

	var version uint
	if err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_migrations LIMIT 1`).Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
