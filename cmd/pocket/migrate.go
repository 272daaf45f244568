package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/config"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates automatically; this one is useful to check the
schema version or to prepare a database ahead of time.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "show the current schema version without applying changes")
	cmd.Flags().Bool("backup", true, "back up an existing database before applying pending migrations")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	backup, _ := cmd.Flags().GetBool("backup")
	dbPath := config.ExpandPath(appConfig.DatabasePath)
	ctx := cmd.Context()

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if !status {
		before, err := store.SchemaVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		if backup && before > 0 && before < storage.ExpectedSchemaVersion {
			abs, err := filepath.Abs(dbPath)
			if err != nil {
				return err
			}
			dest := fmt.Sprintf("%s.v%d-%s.bak", abs, before, time.Now().Format("20060102-150405"))
			if err := store.Backup(ctx, dest); err != nil {
				return fmt.Errorf("failed to back up database before migrating: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backup: %s\n", dest)
		}

		slog.Info("Running database migrations", "database", dbPath)
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "database: %s\nschema version: %d (latest %d)\n",
		dbPath, current, storage.ExpectedSchemaVersion)
	if current == 0 {
		return nil
	}

	categories, err := store.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	transactions, err := store.CountTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "categories: %d\ntransactions: %d\n", categories, transactions)
	return nil
}
