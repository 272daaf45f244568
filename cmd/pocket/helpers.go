package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/analytics"
	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/config"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/repository"
	"github.com/Veraticus/pocket-ledger/internal/seed"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// initStorage opens the database and applies pending migrations.
func initStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.ExpandPath(dbPath))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// app holds everything a command needs once the ledger is open.
type app struct {
	store    *storage.SQLiteStorage
	repos    *repository.Set
	engine   *analytics.Engine
	settings *model.Settings
	out      *cli.Renderer
	cmd      *cobra.Command
}

// openApp opens storage, seeds an empty ledger when enabled, and loads settings.
func openApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()
	cfg := appConfig
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg.DatabasePath)
	if err != nil {
		common.LogError(ctx, err, "Failed to open ledger", common.Fields{"path": cfg.DatabasePath})
		return nil, common.NewUserError("could not open the ledger database", err)
	}

	a := &app{store: store, repos: repository.New(store), cmd: cmd}

	if cfg.SeedEnabled {
		seeder, err := seed.NewSeeder(a.repos.Categories, a.repos.Transactions, nil)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		if _, err := seeder.Run(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to seed ledger: %w", err)
		}
	}

	a.settings, err = a.repos.Settings.Get(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a.engine, err = analytics.NewEngine(analytics.Deps{
		Transactions: a.repos.Transactions,
		Categories:   a.repos.Categories,
		Settings:     a.repos.Settings,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a.out = cli.NewRenderer(cmd.OutOrStdout(), format, a.settings.CurrencySymbol)
	slog.Debug("Opened ledger", "path", store.Path(), "format", format)
	return a, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

func (a *app) jsonOutput() bool {
	format, _ := outputFormat(a.cmd)
	return format == cli.FormatJSON
}

// success prints a confirmation line in table mode.
func (a *app) success(format string, args ...any) {
	if a.jsonOutput() {
		return
	}
	fmt.Fprintln(a.cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(format, args...)))
}

func (a *app) warn(format string, args ...any) {
	fmt.Fprintln(a.cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf(format, args...)))
}

func (a *app) lookup(ctx context.Context) (analytics.CategoryLookup, error) {
	categories, err := a.repos.Categories.List(ctx)
	if err != nil {
		return analytics.CategoryLookup{}, err
	}
	return analytics.NewCategoryLookup(categories), nil
}

// resolveCategory accepts a category ID or a case-insensitive name.
func (a *app) resolveCategory(ctx context.Context, ref string) (*model.Category, error) {
	category, err := a.repos.Categories.Get(ctx, ref)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	category, err = a.repos.Categories.FindByName(ctx, ref)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("no category with ID or name %q", ref), err)
	}
	return category, err
}

func outputFormat(cmd *cobra.Command) (cli.Format, error) {
	raw, err := cmd.Flags().GetString("format")
	if err != nil {
		return cli.FormatTable, nil
	}
	return cli.ParseFormat(raw)
}
