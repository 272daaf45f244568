package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/config"
)

var (
	cfgFile   string
	version   = "dev"
	appConfig *config.Config
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pocket",
		Short: "👛 Personal ledger for income, expenses, and balance",
		Long: `pocket: a small ledger that tracks where your money goes.

Log income and expenses against categories, correct the running balance
with adjustments, and see monthly totals and per-category spending.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/pocket/config.yaml)")
	cmd.PersistentFlags().String("db", "", "database path (default: "+config.DefaultDatabasePath+")")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	cmd.PersistentFlags().String("format", string(cli.FormatTable), "output format (table, json)")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyDatabasePath, cmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag(config.KeyLogLevel, cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, cmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	cmd.AddCommand(balanceCmd())
	cmd.AddCommand(spendingCmd())
	cmd.AddCommand(compareCmd())
	cmd.AddCommand(categoriesCmd())
	cmd.AddCommand(transactionsCmd())
	cmd.AddCommand(settingsCmd())
	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(errorMessage(err)))
		os.Exit(1)
	}
}

// errorMessage prefers the message of a UserError anywhere in the chain.
func errorMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

func initConfig(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	v := viper.GetViper()
	config.SetDefaults(v)
	config.BindEnv(v)
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	appConfig = cfg

	if err := setupLogging(cfg); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging(cfg *config.Config) error {
	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	return common.SetupLogger(level, cfg.LogFormat)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pocket %s\n", version)
		},
	}
}
