package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func TestSettingsStorage(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetSettings(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)

	defaults := model.DefaultSettings()
	require.NoError(t, store.InsertSettingsIfAbsent(ctx, &defaults))

	got, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaults, *got)

	// A second create does not overwrite
	other := model.DefaultSettings()
	other.MonthStartDay = 20
	require.NoError(t, store.InsertSettingsIfAbsent(ctx, &other))

	got, err = store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MonthStartDay)

	// Put replaces
	got.MonthStartDay = 15
	got.RequirePasscode = true
	got.PasscodeHash = "opaque"
	require.NoError(t, store.PutSettings(ctx, got))

	reloaded, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, reloaded.MonthStartDay)
	assert.True(t, reloaded.RequirePasscode)
	assert.Equal(t, "opaque", reloaded.PasscodeHash)

	var rows int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSettingsValidation(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	tests := []struct {
		mutate func(*model.Settings)
		name   string
	}{
		{name: "month start day too high", mutate: func(s *model.Settings) { s.MonthStartDay = 29 }},
		{name: "month start day zero", mutate: func(s *model.Settings) { s.MonthStartDay = 0 }},
		{name: "wrong id", mutate: func(s *model.Settings) { s.ID = "other" }},
		{name: "unknown theme", mutate: func(s *model.Settings) { s.Theme = "neon" }},
		{name: "unknown payment method", mutate: func(s *model.Settings) { s.DefaultPaymentMethod = "barter" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := model.DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, store.PutSettings(ctx, &s), ErrInvalidSettings)
		})
	}
}
