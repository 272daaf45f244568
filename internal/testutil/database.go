// Package testutil provides test helpers backed by a real, migrated SQLite ledger.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/repository"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// TestDB is a migrated ledger in a temporary directory.
type TestDB struct {
	Storage *storage.SQLiteStorage
	Repos   *repository.Set
	t       *testing.T
}

// SetupTestDB creates a migrated ledger that is closed when the test ends.
// opts are passed to the repositories.
//
// Example:
//
//	db := testutil.SetupTestDB(t, repository.WithClock(clock))
//	food := db.MustAddCategory("Food", model.CategoryKindExpense)
func SetupTestDB(t *testing.T, opts ...repository.Option) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{
		Storage: store,
		Repos:   repository.New(store, opts...),
		t:       t,
	}
}

// MustAddCategory adds a category or fails the test.
func (db *TestDB) MustAddCategory(name string, kind model.CategoryKind) *model.Category {
	db.t.Helper()
	c, err := db.Repos.Categories.Add(context.Background(), model.CategoryInput{
		Name:  name,
		Color: "#FB923C",
		Kind:  kind,
	})
	if err != nil {
		db.t.Fatalf("failed to add category %q: %v", name, err)
	}
	return c
}

// MustAddTransaction adds a transaction or fails the test.
// An empty payment method defaults to upi.
func (db *TestDB) MustAddTransaction(input model.TransactionInput) *model.Transaction {
	db.t.Helper()
	if input.PaymentMethod == "" {
		input.PaymentMethod = model.PaymentUPI
	}
	txn, err := db.Repos.Transactions.Add(context.Background(), input)
	if err != nil {
		db.t.Fatalf("failed to add transaction: %v", err)
	}
	return txn
}
