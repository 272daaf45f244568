package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func TestSettingsGetCreatesDefaults(t *testing.T) {
	repos, _ := createTestSet(t)
	ctx := context.Background()

	first, err := repos.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), *first)

	second, err := repos.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, *first, *second)
}

func TestSettingsUpdate(t *testing.T) {
	repos, _ := createTestSet(t)
	ctx := context.Background()

	day := 15
	theme := model.ThemeLight
	updated, err := repos.Settings.Update(ctx, model.SettingsPatch{MonthStartDay: &day, Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.MonthStartDay)
	assert.Equal(t, model.ThemeLight, updated.Theme)
	assert.Equal(t, "₹", updated.CurrencySymbol)

	stored, err := repos.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, *updated, *stored)

	tests := []struct {
		name  string
		patch model.SettingsPatch
	}{
		{"day too small", model.SettingsPatch{MonthStartDay: ptr(0)}},
		{"day too large", model.SettingsPatch{MonthStartDay: ptr(29)}},
		{"bad theme", model.SettingsPatch{Theme: ptr(model.Theme("neon"))}},
		{"bad payment", model.SettingsPatch{DefaultPaymentMethod: ptr(model.PaymentMethod("iou"))}},
		{"empty currency", model.SettingsPatch{CurrencySymbol: ptr("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repos.Settings.Update(ctx, tt.patch)
			assert.ErrorIs(t, err, common.ErrInvalidInput)

			unchanged, err := repos.Settings.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, 15, unchanged.MonthStartDay)
		})
	}
}

func ptr[T any](v T) *T { return &v }
