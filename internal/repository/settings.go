package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
)

// Settings is the repository for the settings singleton.
type Settings struct {
	store service.SettingsStore
}

// NewSettings creates a settings repository.
func NewSettings(store service.SettingsStore) *Settings {
	return &Settings{store: store}
}

// Get returns the settings, creating and persisting the defaults on first access.
func (r *Settings) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := r.store.GetSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	defaults := model.DefaultSettings()
	if err := r.store.InsertSettingsIfAbsent(ctx, &defaults); err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}

	// Re-read so a row created by someone else wins over our defaults.
	settings, err = r.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// Update merges patch over the current settings and saves the result.
// The read and the write are separate store calls and are not atomic.
func (r *Settings) Update(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error) {
	if err := validateSettingsPatch(patch); err != nil {
		return nil, err
	}

	settings, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	patch.Apply(settings)
	if err := r.store.PutSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return settings, nil
}

func validateSettingsPatch(patch model.SettingsPatch) error {
	if d := patch.MonthStartDay; d != nil && (*d < model.MinMonthStartDay || *d > model.MaxMonthStartDay) {
		return fmt.Errorf("%w: month start day must be between %d and %d, got %d",
			common.ErrInvalidInput, model.MinMonthStartDay, model.MaxMonthStartDay, *d)
	}
	if m := patch.DefaultPaymentMethod; m != nil && !m.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", common.ErrInvalidInput, *m)
	}
	if t := patch.Theme; t != nil && !t.Valid() {
		return fmt.Errorf("%w: unknown theme %q", common.ErrInvalidInput, *t)
	}
	if s := patch.CurrencySymbol; s != nil && *s == "" {
		return fmt.Errorf("%w: currency symbol cannot be empty", common.ErrInvalidInput)
	}
	return nil
}
