package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
)

func seedTestTransactions(t *testing.T, store *SQLiteStorage) []*model.Transaction {
	t.Helper()
	ctx := context.Background()

	txns := []*model.Transaction{
		makeTestTransaction(1, model.FlowIncome, "cat-Salary", 4500000, testBaseTime.AddDate(0, 0, -5)),
		makeTestTransaction(2, model.FlowExpense, "cat-Food", 25000, testBaseTime.AddDate(0, 0, -2)),
		makeTestTransaction(3, model.FlowExpense, "cat-Transport", 6000, testBaseTime.AddDate(0, 0, -1)),
		makeTestTransaction(4, model.FlowAdjustment, "", 100000, testBaseTime.AddDate(0, -1, 0)),
	}
	txns[2].PaymentMethod = model.PaymentCash
	txns[3].PaymentMethod = model.PaymentOther

	for _, txn := range txns {
		require.NoError(t, store.InsertTransaction(ctx, txn))
	}
	return txns
}

func TestInsertTransaction(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	txn := makeTestTransaction(1, model.FlowExpense, "cat-Food", 25000, testBaseTime)
	txn.Reason = "Lunch with friends"
	require.NoError(t, store.InsertTransaction(ctx, txn))

	got, err := store.GetTransactionByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FlowExpense, got.Flow)
	assert.Equal(t, "cat-Food", got.CategoryID)
	assert.Equal(t, int64(25000), got.Amount)
	assert.Equal(t, "Lunch with friends", got.Reason)
	assert.True(t, got.HappenedAt.Equal(testBaseTime))

	t.Run("adjustment without category", func(t *testing.T) {
		adj := makeTestTransaction(2, model.FlowAdjustment, "", 100, testBaseTime)
		require.NoError(t, store.InsertTransaction(ctx, adj))

		got, err := store.GetTransactionByID(ctx, adj.ID)
		require.NoError(t, err)
		assert.False(t, got.HasCategory())
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := store.InsertTransaction(ctx, makeTestTransaction(1, model.FlowIncome, "", 1, testBaseTime))
		assert.ErrorIs(t, err, common.ErrDuplicateKey)
	})

	t.Run("negative amount", func(t *testing.T) {
		err := store.InsertTransaction(ctx, makeTestTransaction(9, model.FlowExpense, "", -1, testBaseTime))
		assert.ErrorIs(t, err, common.ErrInvalidAmount)
	})

	t.Run("invalid fields", func(t *testing.T) {
		bad := makeTestTransaction(10, "transfer", "", 1, testBaseTime)
		assert.ErrorIs(t, store.InsertTransaction(ctx, bad), ErrInvalidTransaction)

		bad = makeTestTransaction(11, model.FlowExpense, "", 1, time.Time{})
		assert.ErrorIs(t, store.InsertTransaction(ctx, bad), ErrInvalidTransaction)

		bad = makeTestTransaction(12, model.FlowExpense, "", 1, testBaseTime)
		bad.PaymentMethod = "cheque"
		assert.ErrorIs(t, store.InsertTransaction(ctx, bad), ErrInvalidTransaction)
	})

	t.Run("date outside encodable range", func(t *testing.T) {
		old := makeTestTransaction(13, model.FlowExpense, "", 1, time.Date(1500, 1, 1, 12, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, store.InsertTransaction(ctx, old), ErrInvalidTransaction)

		_, err := store.GetTransactionByID(ctx, old.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("boundary dates round-trip", func(t *testing.T) {
		for i, at := range []time.Time{MinTimestamp, MaxTimestamp} {
			txn := makeTestTransaction(14+i, model.FlowExpense, "", 1, at)
			require.NoError(t, store.InsertTransaction(ctx, txn))

			got, err := store.GetTransactionByID(ctx, txn.ID)
			require.NoError(t, err)
			assert.True(t, got.HappenedAt.Equal(at), "got %v want %v", got.HappenedAt, at)
		}
	})
}

func TestGetTransactions(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	seedTestTransactions(t, store)

	ids := func(txns []model.Transaction) []string {
		out := make([]string, len(txns))
		for i, txn := range txns {
			out[i] = txn.ID
		}
		return out
	}

	start := testBaseTime.AddDate(0, 0, -5)
	end := testBaseTime.AddDate(0, 0, -2)
	ancient := time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter service.TransactionFilter
		want   []string
	}{
		{name: "all newest first", want: []string{"txn-003", "txn-002", "txn-001", "txn-004"}},
		{name: "by flow", filter: service.TransactionFilter{Flow: model.FlowExpense}, want: []string{"txn-003", "txn-002"}},
		{name: "by category", filter: service.TransactionFilter{CategoryID: "cat-Food"}, want: []string{"txn-002"}},
		{name: "by payment method", filter: service.TransactionFilter{PaymentMethod: model.PaymentCash}, want: []string{"txn-003"}},
		{name: "inclusive date range", filter: service.TransactionFilter{StartDate: &start, EndDate: &end}, want: []string{"txn-002", "txn-001"}},
		{name: "start only", filter: service.TransactionFilter{StartDate: &end}, want: []string{"txn-003", "txn-002"}},
		{name: "start before encodable range", filter: service.TransactionFilter{StartDate: &ancient}, want: []string{"txn-003", "txn-002", "txn-001", "txn-004"}},
		{name: "no match", filter: service.TransactionFilter{CategoryID: "cat-Gift"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetTransactions(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	t.Run("inverted range", func(t *testing.T) {
		_, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &end, EndDate: &start})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	count, err := store.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	txns := seedTestTransactions(t, store)
	later := testBaseTime.Add(time.Hour)

	amount := int64(30000)
	reason := "Dinner"
	updated, err := store.UpdateTransaction(ctx, txns[1].ID, model.TransactionPatch{Amount: &amount, Reason: &reason}, later)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), updated.Amount)
	assert.Equal(t, "Dinner", updated.Reason)
	assert.Equal(t, "cat-Food", updated.CategoryID)
	assert.True(t, updated.CreatedAt.Equal(testBaseTime))
	assert.True(t, updated.UpdatedAt.Equal(later))

	t.Run("clear category", func(t *testing.T) {
		updated, err := store.UpdateTransaction(ctx, txns[1].ID, model.TransactionPatch{ClearCategory: true}, later)
		require.NoError(t, err)
		assert.False(t, updated.HasCategory())

		stored, err := store.GetTransactionByID(ctx, txns[1].ID)
		require.NoError(t, err)
		assert.Empty(t, stored.CategoryID)
	})

	t.Run("category patch on adjustment is dropped", func(t *testing.T) {
		food := "cat-Food"
		updated, err := store.UpdateTransaction(ctx, txns[3].ID, model.TransactionPatch{CategoryID: &food}, later)
		require.NoError(t, err)
		assert.Equal(t, model.FlowAdjustment, updated.Flow)
		assert.False(t, updated.HasCategory())
	})

	t.Run("date outside encodable range rolls back", func(t *testing.T) {
		old := time.Date(1500, 1, 1, 12, 0, 0, 0, time.UTC)
		_, err := store.UpdateTransaction(ctx, txns[0].ID, model.TransactionPatch{HappenedAt: &old}, later)
		assert.ErrorIs(t, err, ErrInvalidTransaction)

		stored, err := store.GetTransactionByID(ctx, txns[0].ID)
		require.NoError(t, err)
		assert.True(t, stored.HappenedAt.Equal(txns[0].HappenedAt))
	})

	t.Run("missing id leaves collection unchanged", func(t *testing.T) {
		before, err := store.GetTransactions(ctx, service.TransactionFilter{})
		require.NoError(t, err)

		_, err = store.UpdateTransaction(ctx, "missing", model.TransactionPatch{Amount: &amount}, later)
		assert.ErrorIs(t, err, common.ErrNotFound)

		after, err := store.GetTransactions(ctx, service.TransactionFilter{})
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("negative amount rolls back", func(t *testing.T) {
		negative := int64(-5)
		_, err := store.UpdateTransaction(ctx, txns[0].ID, model.TransactionPatch{Amount: &negative}, later)
		assert.ErrorIs(t, err, common.ErrInvalidAmount)

		stored, err := store.GetTransactionByID(ctx, txns[0].ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4500000), stored.Amount)
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	txns := seedTestTransactions(t, store)

	require.NoError(t, store.DeleteTransaction(ctx, txns[0].ID))

	_, err := store.GetTransactionByID(ctx, txns[0].ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = store.DeleteTransaction(ctx, txns[0].ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	count, err := store.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
