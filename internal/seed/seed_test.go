package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/repository"
	"github.com/Veraticus/pocket-ledger/internal/testutil"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func createTestRepos(t *testing.T) *repository.Set {
	t.Helper()
	return testutil.SetupTestDB(t, repository.WithClock(func() time.Time { return testNow })).Repos
}

func TestLoadDefaults(t *testing.T) {
	d, err := LoadDefaults()
	require.NoError(t, err)
	require.Len(t, d.Categories, 12)
	require.Len(t, d.Samples, 3)

	var expense, income int
	for _, c := range d.Categories {
		switch c.Kind {
		case model.CategoryKindExpense:
			expense++
		case model.CategoryKindIncome:
			income++
		}
	}
	assert.Equal(t, 9, expense)
	assert.Equal(t, 3, income)
	assert.Equal(t, model.CategoryInput{Name: "Food", Color: "#FB923C", Emoji: "🍔", Kind: model.CategoryKindExpense}, d.Categories[0])
	assert.Equal(t, Sample{
		Flow:          model.FlowIncome,
		Category:      "Salary",
		PaymentMethod: model.PaymentUPI,
		Reason:        "Monthly salary",
		Amount:        4500000,
		DaysAgo:       5,
	}, d.Samples[0])
}

func TestParseDefaultsRejectsBadKind(t *testing.T) {
	_, err := ParseDefaults([]byte("categories:\n  - {name: X, color: '#000', kind: sideways}\n"))
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = ParseDefaults([]byte("categories: [unterminated"))
	assert.Error(t, err)
}

func TestSeederRun(t *testing.T) {
	repos := createTestRepos(t)
	ctx := context.Background()

	seeder, err := NewSeeder(repos.Categories, repos.Transactions, nil)
	require.NoError(t, err)
	seeder.WithClock(func() time.Time { return testNow })

	result, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Categories: 12, Transactions: 3}, result)

	txns, err := repos.Transactions.All(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 3)

	// Newest first: Transport (1 day ago), Food (2), Salary (5).
	assert.Equal(t, "Auto to market", txns[0].Reason)
	assert.True(t, txns[0].HappenedAt.Equal(testNow.AddDate(0, 0, -1)))
	assert.Equal(t, model.PaymentCash, txns[0].PaymentMethod)
	assert.Equal(t, "Monthly salary", txns[2].Reason)
	assert.True(t, txns[2].HappenedAt.Equal(testNow.AddDate(0, 0, -5)))

	food, err := repos.Categories.FindByName(ctx, "Food")
	require.NoError(t, err)
	assert.Equal(t, food.ID, txns[1].CategoryID)

	t.Run("second run is a no-op", func(t *testing.T) {
		again, err := seeder.Run(ctx)
		require.NoError(t, err)
		assert.True(t, again.Skipped)

		categories, err := repos.Categories.List(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 12)

		txns, err := repos.Transactions.All(ctx)
		require.NoError(t, err)
		assert.Len(t, txns, 3)
	})
}

func TestSeederSkipsNonEmptyLedger(t *testing.T) {
	repos := createTestRepos(t)
	ctx := context.Background()

	_, err := repos.Categories.Add(ctx, model.CategoryInput{Name: "Rent", Color: "#000000", Kind: model.CategoryKindExpense})
	require.NoError(t, err)

	seeder, err := NewSeeder(repos.Categories, repos.Transactions, nil)
	require.NoError(t, err)

	result, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.True(t, result.Skipped)

	categories, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestSeederSkipsSamplesWithMissingCategory(t *testing.T) {
	repos := createTestRepos(t)
	ctx := context.Background()

	defaults := &Defaults{
		Categories: []model.CategoryInput{{Name: "Food", Color: "#FB923C", Kind: model.CategoryKindExpense}},
		Samples: []Sample{
			{Flow: model.FlowExpense, Category: "Food", PaymentMethod: model.PaymentUPI, Amount: 100},
			{Flow: model.FlowIncome, Category: "Salary", PaymentMethod: model.PaymentUPI, Amount: 100},
		},
	}
	seeder, err := NewSeeder(repos.Categories, repos.Transactions, defaults)
	require.NoError(t, err)

	result, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Categories: 1}, result)

	txns, err := repos.Transactions.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestNewSeederRequiresRepositories(t *testing.T) {
	_, err := NewSeeder(nil, nil, nil)
	assert.Error(t, err)
}
