package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/analytics"
	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
)

func spendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spending",
		Short: "Break down a month's expenses by category",
		Args:  cobra.NoArgs,
		RunE:  runSpending,
	}

	cmd.Flags().String("month", "", "month to report as YYYY-MM (default: current month)")

	return cmd
}

func runSpending(cmd *cobra.Command, _ []string) error {
	monthFlag, _ := cmd.Flags().GetString("month")

	var month *time.Time
	if monthFlag != "" {
		m, err := cli.ParseMonth(monthFlag, time.Local)
		if err != nil {
			return common.NewUserError(err.Error(), common.ErrInvalidInput)
		}
		month = &m
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	spend, err := a.engine.Spending(cmd.Context(), month)
	if err != nil {
		return err
	}

	anchor := a.engine.Now()
	if month != nil {
		anchor = *month
	}
	return a.out.Spending(spend, analytics.MonthWindow(anchor, a.settings.EffectiveMonthStartDay()))
}
