package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/analytics"
)

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the running balance and this month's totals",
		Long: `Show the balance across every transaction, and the income, expense, and
net of the current month. Months start on the configured month start day.
Balance adjustments count toward the balance but not the monthly totals.`,
		Args: cobra.NoArgs,
		RunE: runBalance,
	}
}

func runBalance(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	info, err := a.engine.Balance(cmd.Context())
	if err != nil {
		return err
	}

	window := analytics.MonthWindow(a.engine.Now(), a.settings.EffectiveMonthStartDay())
	return a.out.Balance(info, window)
}
