// Package service defines the interfaces shared between the persistence layer
// and the components built on top of it.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// Zero values match everything. Date bounds are inclusive.
type TransactionFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	CategoryID    string
	Flow          model.Flow
	PaymentMethod model.PaymentMethod
}

// CategoryStore persists categories.
type CategoryStore interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoriesByKind(ctx context.Context, kind model.CategoryKind) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	InsertCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch, updatedAt time.Time) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CountCategories(ctx context.Context) (int, error)
}

// TransactionStore persists transactions.
type TransactionStore interface {
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	InsertTransaction(ctx context.Context, txn *model.Transaction) error
	UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch, updatedAt time.Time) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	CountTransactions(ctx context.Context) (int, error)
}

// SettingsStore persists the settings singleton.
type SettingsStore interface {
	GetSettings(ctx context.Context) (*model.Settings, error)
	InsertSettingsIfAbsent(ctx context.Context, settings *model.Settings) error
	PutSettings(ctx context.Context, settings *model.Settings) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	CategoryStore
	TransactionStore
	SettingsStore

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
