package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// GetSettings returns the settings singleton, or common.ErrNotFound when none is stored.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (*model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, currency_symbol, default_payment_method, month_start_day,
		       accent_color, theme, require_passcode, passcode_hash
		FROM settings
		WHERE id = ?`

	var (
		settings      model.Settings
		paymentMethod string
		theme         string
	)
	err := s.db.QueryRowContext(ctx, query, model.SettingsID).Scan(
		&settings.ID,
		&settings.CurrencySymbol,
		&paymentMethod,
		&settings.MonthStartDay,
		&settings.AccentColor,
		&theme,
		&settings.RequirePasscode,
		&settings.PasscodeHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settings: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	settings.DefaultPaymentMethod = model.PaymentMethod(paymentMethod)
	settings.Theme = model.Theme(theme)
	return &settings, nil
}

// InsertSettingsIfAbsent stores settings only when no singleton row exists yet.
// A concurrent creator therefore can never produce a second row.
func (s *SQLiteStorage) InsertSettingsIfAbsent(ctx context.Context, settings *model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (
			id, currency_symbol, default_payment_method, month_start_day,
			accent_color, theme, require_passcode, passcode_hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		settingsArgs(settings)...,
	)
	if err != nil {
		return translateError(err, "failed to create settings")
	}

	if rows, _ := result.RowsAffected(); rows > 0 {
		slog.Info("created default settings")
	}
	return nil
}

// PutSettings replaces the settings singleton.
func (s *SQLiteStorage) PutSettings(ctx context.Context, settings *model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (
			id, currency_symbol, default_payment_method, month_start_day,
			accent_color, theme, require_passcode, passcode_hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			currency_symbol = excluded.currency_symbol,
			default_payment_method = excluded.default_payment_method,
			month_start_day = excluded.month_start_day,
			accent_color = excluded.accent_color,
			theme = excluded.theme,
			require_passcode = excluded.require_passcode,
			passcode_hash = excluded.passcode_hash`,
		settingsArgs(settings)...,
	)
	if err != nil {
		return translateError(err, "failed to save settings")
	}
	return nil
}

func settingsArgs(settings *model.Settings) []any {
	return []any{
		settings.ID,
		settings.CurrencySymbol,
		string(settings.DefaultPaymentMethod),
		settings.MonthStartDay,
		settings.AccentColor,
		string(settings.Theme),
		settings.RequirePasscode,
		settings.PasscodeHash,
	}
}
