package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change ledger settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.out.Settings(a.settings)
		},
	})
	cmd.AddCommand(setSettingsCmd())

	return cmd
}

func setSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long: `Change one or more settings. Only the given flags are changed.

The month start day (1-28) sets the day every monthly report begins on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			patch := model.SettingsPatch{
				CurrencySymbol: changedString(cmd, "currency"),
				AccentColor:    changedString(cmd, "accent-color"),
			}
			if v := changedString(cmd, "default-payment"); v != nil {
				m := model.PaymentMethod(*v)
				patch.DefaultPaymentMethod = &m
			}
			if v := changedString(cmd, "theme"); v != nil {
				t := model.Theme(*v)
				patch.Theme = &t
			}
			if cmd.Flags().Changed("month-start-day") {
				d, _ := cmd.Flags().GetInt("month-start-day")
				patch.MonthStartDay = &d
			}
			if cmd.Flags().Changed("require-passcode") {
				b, _ := cmd.Flags().GetBool("require-passcode")
				patch.RequirePasscode = &b
			}
			if patch == (model.SettingsPatch{}) {
				return common.NewUserError("nothing to change", common.ErrInvalidInput)
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			settings, err := a.repos.Settings.Update(cmd.Context(), patch)
			if err != nil {
				return fmt.Errorf("failed to update settings: %w", err)
			}

			a.success("Settings updated")
			return a.out.Settings(settings)
		},
	}

	cmd.Flags().String("currency", "", "currency symbol")
	cmd.Flags().String("default-payment", "", "default payment method (cash, upi, card, other)")
	cmd.Flags().Int("month-start-day", 1, "day of month reports start on (1-28)")
	cmd.Flags().String("accent-color", "", "accent color as a hex string")
	cmd.Flags().String("theme", "", "light, dark, or system")
	cmd.Flags().Bool("require-passcode", false, "require a passcode")

	return cmd
}
