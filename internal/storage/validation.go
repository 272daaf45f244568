// Package storage provides the data persistence layer for the ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Validation errors. All of them wrap common.ErrInvalidInput.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = fmt.Errorf("%w: string parameter cannot be empty", common.ErrInvalidInput)
	ErrNilParameter       = fmt.Errorf("%w: parameter cannot be nil", common.ErrInvalidInput)
	ErrInvalidDateRange   = fmt.Errorf("%w: start date must be before end date", common.ErrInvalidInput)
	ErrInvalidCategory    = fmt.Errorf("%w: invalid category", common.ErrInvalidInput)
	ErrInvalidTransaction = fmt.Errorf("%w: invalid transaction", common.ErrInvalidInput)
	ErrInvalidSettings    = fmt.Errorf("%w: invalid settings", common.ErrInvalidInput)
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateCategory(cat *model.Category) error {
	if cat == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if strings.TrimSpace(cat.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCategory)
	}
	if strings.TrimSpace(cat.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if strings.TrimSpace(cat.Color) == "" {
		return fmt.Errorf("%w: missing color", ErrInvalidCategory)
	}
	if !cat.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidCategory, cat.Kind)
	}
	return nil
}

func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if strings.TrimSpace(txn.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if !txn.Flow.Valid() {
		return fmt.Errorf("%w: unknown flow %q", ErrInvalidTransaction, txn.Flow)
	}
	if txn.Amount < 0 {
		return fmt.Errorf("%w: %d", common.ErrInvalidAmount, txn.Amount)
	}
	if !txn.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidTransaction, txn.PaymentMethod)
	}
	if txn.HappenedAt.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if !storableTime(txn.HappenedAt) {
		return fmt.Errorf("%w: date %s outside %s to %s", ErrInvalidTransaction,
			txn.HappenedAt.Format(time.DateOnly), MinTimestamp.Format(time.DateOnly), MaxTimestamp.Format(time.DateOnly))
	}
	return nil
}

func validateSettings(settings *model.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings", ErrNilParameter)
	}
	if settings.ID != model.SettingsID {
		return fmt.Errorf("%w: settings ID must be %q", ErrInvalidSettings, model.SettingsID)
	}
	if settings.MonthStartDay < model.MinMonthStartDay || settings.MonthStartDay > model.MaxMonthStartDay {
		return fmt.Errorf("%w: month start day %d outside %d-%d",
			ErrInvalidSettings, settings.MonthStartDay, model.MinMonthStartDay, model.MaxMonthStartDay)
	}
	if !settings.DefaultPaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidSettings, settings.DefaultPaymentMethod)
	}
	if !settings.Theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidSettings, settings.Theme)
	}
	return nil
}
