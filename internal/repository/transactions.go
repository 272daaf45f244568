package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
)

// AdjustmentReasonPrefix prefixes the reason of every balance adjustment.
const AdjustmentReasonPrefix = "Balance adjustment: "

// Transactions is the transaction repository.
type Transactions struct {
	store service.TransactionStore
	opts  options
}

// NewTransactions creates a transaction repository.
func NewTransactions(store service.TransactionStore, opts ...Option) *Transactions {
	return &Transactions{store: store, opts: buildOptions(opts)}
}

// Add creates a transaction with a fresh ID and timestamps.
// A zero HappenedAt defaults to now. Adjustments never carry a category.
func (r *Transactions) Add(ctx context.Context, input model.TransactionInput) (*model.Transaction, error) {
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}

	now := r.opts.now()
	txn := &model.Transaction{
		ID:            r.opts.newID(),
		Flow:          input.Flow,
		CategoryID:    strings.TrimSpace(input.CategoryID),
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Reason:        input.Reason,
		HappenedAt:    input.HappenedAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if txn.HappenedAt.IsZero() {
		txn.HappenedAt = now
	}
	if txn.Flow == model.FlowAdjustment {
		txn.CategoryID = ""
	}

	if err := r.store.InsertTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("add transaction: %w", err)
	}
	return txn, nil
}

// AdjustBalance records a manual correction that adds amount to the running balance.
func (r *Transactions) AdjustBalance(ctx context.Context, amount model.Money, reason string, at time.Time) (*model.Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: adjustment reason is required", common.ErrInvalidInput)
	}

	return r.Add(ctx, model.TransactionInput{
		Flow:          model.FlowAdjustment,
		Amount:        int64(amount),
		PaymentMethod: model.PaymentOther,
		Reason:        AdjustmentReasonPrefix + reason,
		HappenedAt:    at,
	})
}

// Get returns one transaction.
func (r *Transactions) Get(ctx context.Context, id string) (*model.Transaction, error) {
	return r.store.GetTransactionByID(ctx, id)
}

// List returns transactions matching filter, newest first.
func (r *Transactions) List(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	return r.store.GetTransactions(ctx, filter)
}

// All returns every transaction.
func (r *Transactions) All(ctx context.Context) ([]model.Transaction, error) {
	return r.store.GetTransactions(ctx, service.TransactionFilter{})
}

// Update applies a partial edit and refreshes UpdatedAt.
func (r *Transactions) Update(ctx context.Context, id string, patch model.TransactionPatch) (*model.Transaction, error) {
	if patch.Amount != nil && *patch.Amount < 0 {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidAmount, *patch.Amount)
	}
	if patch.Flow != nil && !patch.Flow.Valid() {
		return nil, fmt.Errorf("%w: unknown flow %q", common.ErrInvalidInput, *patch.Flow)
	}
	if patch.PaymentMethod != nil && !patch.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", common.ErrInvalidInput, *patch.PaymentMethod)
	}
	if patch.HappenedAt != nil && patch.HappenedAt.IsZero() {
		return nil, fmt.Errorf("%w: transaction date cannot be empty", common.ErrInvalidInput)
	}

	updated, err := r.store.UpdateTransaction(ctx, id, patch, r.opts.now())
	if err != nil {
		return nil, fmt.Errorf("update transaction %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes a transaction.
func (r *Transactions) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}

func validateTransactionInput(input model.TransactionInput) error {
	if !input.Flow.Valid() {
		return fmt.Errorf("%w: unknown flow %q", common.ErrInvalidInput, input.Flow)
	}
	if input.Amount < 0 {
		return fmt.Errorf("%w: %d", common.ErrInvalidAmount, input.Amount)
	}
	if !input.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", common.ErrInvalidInput, input.PaymentMethod)
	}
	return nil
}
