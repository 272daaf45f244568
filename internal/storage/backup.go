package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// ErrBackupExists is returned when the backup destination is already present.
var ErrBackupExists = errors.New("backup destination already exists")

// Backup writes a consistent copy of the database to destPath and verifies it.
func (s *SQLiteStorage) Backup(ctx context.Context, destPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBackupPath(destPath); err != nil {
		return err
	}
	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("%w: %s", ErrBackupExists, destPath)
	}

	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	// #nosec G201 - destPath is validated above to prevent SQL injection
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", destPath)); err != nil {
		return fmt.Errorf("%w: backup to %s: %v", common.ErrStorageUnavailable, destPath, err)
	}

	if err := verifyIntegrity(ctx, destPath); err != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("backup verification failed: %w", err)
	}

	slog.Info("Database backed up", "path", destPath)
	return nil
}

func validateBackupPath(destPath string) error {
	if err := validateString(destPath, "backup path"); err != nil {
		return err
	}
	if strings.ContainsAny(destPath, "'\";") {
		return fmt.Errorf("%w: backup path contains forbidden characters", common.ErrInvalidInput)
	}
	if !filepath.IsAbs(destPath) || filepath.Clean(destPath) != destPath {
		return fmt.Errorf("%w: backup path must be absolute and clean", common.ErrInvalidInput)
	}
	return nil
}

func verifyIntegrity(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}
