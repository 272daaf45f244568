package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func TestCategoriesAdd(t *testing.T) {
	repos, _ := createTestSet(t)
	ctx := context.Background()

	cat, err := repos.Categories.Add(ctx, model.CategoryInput{
		Name:  "  Food ",
		Color: "#FB923C",
		Emoji: "🍔",
		Kind:  model.CategoryKindExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, "id-001", cat.ID)
	assert.Equal(t, "Food", cat.Name)
	assert.True(t, cat.CreatedAt.Equal(testNow))
	assert.True(t, cat.UpdatedAt.Equal(testNow))

	stored, err := repos.Categories.Get(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", stored.Name)
	assert.Equal(t, "🍔", stored.Emoji)

	tests := []struct {
		name  string
		input model.CategoryInput
	}{
		{"empty name", model.CategoryInput{Name: " ", Color: "#000", Kind: model.CategoryKindExpense}},
		{"empty color", model.CategoryInput{Name: "X", Kind: model.CategoryKindExpense}},
		{"bad kind", model.CategoryInput{Name: "X", Color: "#000", Kind: "sideways"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repos.Categories.Add(ctx, tt.input)
			assert.ErrorIs(t, err, common.ErrInvalidInput)
		})
	}
}

func TestCategoriesUpdate(t *testing.T) {
	repos, clock := createTestSet(t)
	ctx := context.Background()

	cat, err := repos.Categories.Add(ctx, model.CategoryInput{Name: "Food", Color: "#FB923C", Kind: model.CategoryKindExpense})
	require.NoError(t, err)

	clock.Advance(time.Hour)
	name := "Groceries"
	updated, err := repos.Categories.Update(ctx, cat.ID, model.CategoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Name)
	assert.Equal(t, "#FB923C", updated.Color)
	assert.True(t, updated.CreatedAt.Equal(testNow))
	assert.True(t, updated.UpdatedAt.Equal(testNow.Add(time.Hour)))

	t.Run("missing id", func(t *testing.T) {
		_, err := repos.Categories.Update(ctx, "nope", model.CategoryPatch{Name: &name})
		assert.ErrorIs(t, err, common.ErrNotFound)

		all, err := repos.Categories.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Groceries", all[0].Name)
	})

	t.Run("blank name", func(t *testing.T) {
		blank := "  "
		_, err := repos.Categories.Update(ctx, cat.ID, model.CategoryPatch{Name: &blank})
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	t.Run("bad kind", func(t *testing.T) {
		kind := model.CategoryKind("nope")
		_, err := repos.Categories.Update(ctx, cat.ID, model.CategoryPatch{Kind: &kind})
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})
}

func TestCategoriesDeleteLeavesTransactions(t *testing.T) {
	repos, _ := createTestSet(t)
	ctx := context.Background()

	cat, err := repos.Categories.Add(ctx, model.CategoryInput{Name: "Food", Color: "#FB923C", Kind: model.CategoryKindExpense})
	require.NoError(t, err)
	txn, err := repos.Transactions.Add(ctx, model.TransactionInput{
		Flow:          model.FlowExpense,
		CategoryID:    cat.ID,
		Amount:        2000,
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)

	require.NoError(t, repos.Categories.Delete(ctx, cat.ID))
	assert.ErrorIs(t, repos.Categories.Delete(ctx, cat.ID), common.ErrNotFound)

	kept, err := repos.Transactions.Get(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, kept.CategoryID)
}

func TestCategoriesFindByName(t *testing.T) {
	repos, _ := createTestSet(t)
	ctx := context.Background()

	_, err := repos.Categories.Add(ctx, model.CategoryInput{Name: "Salary", Color: "#16A34A", Kind: model.CategoryKindIncome})
	require.NoError(t, err)

	found, err := repos.Categories.FindByName(ctx, "salary")
	require.NoError(t, err)
	assert.Equal(t, "Salary", found.Name)

	_, err = repos.Categories.FindByName(ctx, "Bonus")
	assert.ErrorIs(t, err, common.ErrNotFound)

	income, err := repos.Categories.ListByKind(ctx, model.CategoryKindIncome)
	require.NoError(t, err)
	assert.Len(t, income, 1)

	t.Run("names differing only in case collide", func(t *testing.T) {
		_, err := repos.Categories.Add(ctx, model.CategoryInput{Name: "SALARY", Color: "#16A34A", Kind: model.CategoryKindIncome})
		assert.ErrorIs(t, err, common.ErrDuplicateKey)

		count, err := repos.Categories.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("exact match wins", func(t *testing.T) {
		// Non-ASCII case folding is outside SQLite's NOCASE collation.
		lower, err := repos.Categories.Add(ctx, model.CategoryInput{Name: "école", Color: "#2563EB", Kind: model.CategoryKindExpense})
		require.NoError(t, err)
		upper, err := repos.Categories.Add(ctx, model.CategoryInput{Name: "École", Color: "#2563EB", Kind: model.CategoryKindExpense})
		require.NoError(t, err)

		found, err := repos.Categories.FindByName(ctx, "École")
		require.NoError(t, err)
		assert.Equal(t, upper.ID, found.ID)

		found, err = repos.Categories.FindByName(ctx, "école")
		require.NoError(t, err)
		assert.Equal(t, lower.ID, found.ID)
	})
}
