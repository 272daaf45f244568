package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/analytics"
	"github.com/Veraticus/pocket-ledger/internal/common"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare income and expenses over recent months",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}

	cmd.Flags().Int("months", 6, "number of months to compare, ending with the current month")

	return cmd
}

func runCompare(cmd *cobra.Command, _ []string) error {
	n, _ := cmd.Flags().GetInt("months")
	if n < 1 {
		return common.NewUserError(fmt.Sprintf("--months must be at least 1, got %d", n), common.ErrInvalidInput)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	stats, err := a.engine.Comparison(ctx, analytics.RecentMonths(a.engine.Now(), n))
	if err != nil {
		return err
	}

	lookup, err := a.lookup(ctx)
	if err != nil {
		return err
	}
	return a.out.Comparison(stats, lookup)
}
