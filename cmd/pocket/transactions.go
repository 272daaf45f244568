package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions", "transaction"},
		Short:   "Manage transactions",
		Long:    `List, add, update, and delete transactions, and adjust the running balance.`,
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(updateTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())
	cmd.AddCommand(adjustBalanceCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		from     string
		to       string
		category string
		flow     string
		method   string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := service.TransactionFilter{
				Flow:          model.Flow(flow),
				PaymentMethod: model.PaymentMethod(method),
			}
			if flow != "" && !filter.Flow.Valid() {
				return common.NewUserError(fmt.Sprintf("unknown flow %q", flow), common.ErrInvalidInput)
			}
			if method != "" && !filter.PaymentMethod.Valid() {
				return common.NewUserError(fmt.Sprintf("unknown payment method %q", method), common.ErrInvalidInput)
			}
			if from != "" {
				start, err := cli.ParseDate(from, time.Local)
				if err != nil {
					return common.NewUserError(err.Error(), common.ErrInvalidInput)
				}
				filter.StartDate = &start
			}
			if to != "" {
				end, err := cli.ParseDate(to, time.Local)
				if err != nil {
					return common.NewUserError(err.Error(), common.ErrInvalidInput)
				}
				// Include the whole final day.
				end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
				filter.EndDate = &end
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if category != "" {
				c, err := a.resolveCategory(ctx, category)
				if err != nil {
					return err
				}
				filter.CategoryID = c.ID
			}

			txns, err := a.repos.Transactions.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}
			if limit > 0 && len(txns) > limit {
				txns = txns[:limit]
			}

			lookup, err := a.lookup(ctx)
			if err != nil {
				return err
			}
			return a.out.Transactions(txns, lookup)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "earliest date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "latest date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&category, "category", "", "category ID or name")
	cmd.Flags().StringVar(&flow, "flow", "", "expense, income, or adjustment")
	cmd.Flags().StringVar(&method, "method", "", "cash, upi, card, or other")
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many transactions")

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var (
		flow     string
		category string
		method   string
		reason   string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record an expense or income",
		Long: `Record a transaction. The amount is in currency units, e.g. 250 or 99.50.
The payment method defaults to the one in settings and the date to now.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := model.ParseMajor(args[0])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("invalid amount %q", args[0]), err)
			}

			input := model.TransactionInput{
				Flow:   model.Flow(flow),
				Amount: int64(amount),
				Reason: reason,
			}
			if input.Flow == model.FlowAdjustment {
				return common.NewUserError("use 'pocket tx adjust' to record balance adjustments", common.ErrInvalidInput)
			}
			if date != "" {
				if input.HappenedAt, err = parseWhen(date); err != nil {
					return err
				}
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			input.PaymentMethod = a.settings.DefaultPaymentMethod
			if method != "" {
				input.PaymentMethod = model.PaymentMethod(method)
			}
			if category != "" {
				c, err := a.resolveCategory(ctx, category)
				if err != nil {
					return err
				}
				if !c.Kind.Accepts(input.Flow) {
					a.warn("category %q is for %s transactions", c.Name, c.Kind)
				}
				input.CategoryID = c.ID
			}

			txn, err := a.repos.Transactions.Add(ctx, input)
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			lookup, err := a.lookup(ctx)
			if err != nil {
				return err
			}
			a.success("Recorded %s", txn.Flow)
			return a.out.Transaction(txn, lookup)
		},
	}

	cmd.Flags().StringVar(&flow, "flow", string(model.FlowExpense), "expense or income")
	cmd.Flags().StringVar(&category, "category", "", "category ID or name")
	cmd.Flags().StringVar(&method, "method", "", "cash, upi, card, or other (default: from settings)")
	cmd.Flags().StringVar(&reason, "reason", "", "what the money was for")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: now)")

	return cmd
}

func updateTransactionCmd() *cobra.Command {
	var clearCategory bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Long:  `Change fields of a transaction. Only the given flags are changed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := model.TransactionPatch{
				Reason:        changedString(cmd, "reason"),
				ClearCategory: clearCategory,
			}
			if v := changedString(cmd, "amount"); v != nil {
				amount, err := model.ParseMajor(*v)
				if err != nil {
					return common.NewUserError(fmt.Sprintf("invalid amount %q", *v), err)
				}
				minor := int64(amount)
				patch.Amount = &minor
			}
			if v := changedString(cmd, "flow"); v != nil {
				f := model.Flow(*v)
				patch.Flow = &f
			}
			if v := changedString(cmd, "method"); v != nil {
				m := model.PaymentMethod(*v)
				patch.PaymentMethod = &m
			}
			if v := changedString(cmd, "date"); v != nil {
				when, err := parseWhen(*v)
				if err != nil {
					return err
				}
				patch.HappenedAt = &when
			}

			categoryRef := changedString(cmd, "category")
			if patch.IsEmpty() && categoryRef == nil {
				return common.NewUserError("nothing to update", common.ErrInvalidInput)
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if categoryRef != nil {
				c, err := a.resolveCategory(ctx, *categoryRef)
				if err != nil {
					return err
				}
				patch.CategoryID = &c.ID
			}

			txn, err := a.repos.Transactions.Update(ctx, args[0], patch)
			if err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}
			if categoryRef != nil && txn.Flow == model.FlowAdjustment {
				a.warn("adjustments do not keep a category; %q was not applied", *categoryRef)
			}

			lookup, err := a.lookup(ctx)
			if err != nil {
				return err
			}
			a.success("Updated transaction %s", txn.ID)
			return a.out.Transaction(txn, lookup)
		},
	}

	cmd.Flags().String("amount", "", "new amount in currency units")
	cmd.Flags().String("flow", "", "new flow (expense, income, adjustment)")
	cmd.Flags().String("category", "", "new category ID or name")
	cmd.Flags().BoolVar(&clearCategory, "clear-category", false, "remove the category")
	cmd.Flags().String("method", "", "new payment method")
	cmd.Flags().String("reason", "", "new reason")
	cmd.Flags().String("date", "", "new date as YYYY-MM-DD")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.repos.Transactions.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			a.success("Deleted transaction %s", args[0])
			if a.jsonOutput() {
				return cli.RenderJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
			}
			return nil
		},
	}
}

func adjustBalanceCmd() *cobra.Command {
	var (
		reason string
		date   string
	)

	cmd := &cobra.Command{
		Use:   "adjust <amount>",
		Short: "Add a correction to the running balance",
		Long: `Record a balance adjustment, for example cash found or an opening balance.
Adjustments add to the balance and are left out of monthly totals.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := model.ParseMajor(args[0])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("invalid amount %q", args[0]), err)
			}
			when := time.Now()
			if date != "" {
				if when, err = parseWhen(date); err != nil {
					return err
				}
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			txn, err := a.repos.Transactions.AdjustBalance(ctx, amount, reason, when)
			if err != nil {
				return fmt.Errorf("failed to adjust balance: %w", err)
			}

			lookup, err := a.lookup(ctx)
			if err != nil {
				return err
			}
			a.success("Adjusted balance by %s", a.out.Money().FormatMinor(txn.Amount))
			return a.out.Transaction(txn, lookup)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "why the balance is being adjusted (required)")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: now)")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

// parseWhen parses a YYYY-MM-DD date as noon local time, so the day does not
// shift when viewed from nearby time zones.
func parseWhen(s string) (time.Time, error) {
	d, err := cli.ParseDate(s, time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError(err.Error(), common.ErrInvalidInput)
	}
	return d.Add(12 * time.Hour), nil
}
