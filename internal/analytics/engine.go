package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// TransactionSource lists every stored transaction.
type TransactionSource interface {
	All(ctx context.Context) ([]model.Transaction, error)
}

// CategorySource lists every stored category.
type CategorySource interface {
	List(ctx context.Context) ([]model.Category, error)
}

// SettingsSource returns the settings singleton.
type SettingsSource interface {
	Get(ctx context.Context) (*model.Settings, error)
}

// Deps contains the dependencies of the analytics engine.
type Deps struct {
	Transactions TransactionSource
	Categories   CategorySource
	Settings     SettingsSource
	// Now defaults to time.Now.
	Now func() time.Time
}

// Validate ensures all required dependencies are provided.
func (d *Deps) Validate() error {
	if d.Transactions == nil {
		return fmt.Errorf("transaction source is required")
	}
	if d.Categories == nil {
		return fmt.Errorf("category source is required")
	}
	if d.Settings == nil {
		return fmt.Errorf("settings source is required")
	}
	return nil
}

// Engine runs the analytics over freshly loaded data.
type Engine struct {
	deps Deps
}

// NewEngine creates an analytics engine.
func NewEngine(deps Deps) (*Engine, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Engine{deps: deps}, nil
}

// Snapshot loads transactions, categories, and settings concurrently.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txns, err := e.deps.Transactions.All(gctx)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		snap.Transactions = txns
		return nil
	})
	g.Go(func() error {
		categories, err := e.deps.Categories.List(gctx)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		snap.Categories = categories
		return nil
	})
	g.Go(func() error {
		settings, err := e.deps.Settings.Get(gctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		snap.Settings = settings
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	slog.Debug("Loaded analytics snapshot",
		"transactions", len(snap.Transactions),
		"categories", len(snap.Categories),
		"month_start_day", snap.MonthStartDay())
	return snap, nil
}

// Balance returns the running balance and the current month's summary.
func (e *Engine) Balance(ctx context.Context) (BalanceInfo, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return BalanceInfo{}, err
	}
	return CalculateBalance(snap, e.deps.Now()), nil
}

// Spending returns the category breakdown for month, or the current month when nil.
func (e *Engine) Spending(ctx context.Context, month *time.Time) ([]CategorySpend, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	anchor := e.deps.Now()
	if month != nil {
		anchor = *month
	}
	return CategorySpending(snap, anchor), nil
}

// Comparison returns one summary per month anchor.
func (e *Engine) Comparison(ctx context.Context, months []time.Time) ([]MonthlyStats, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlyComparison(snap, months), nil
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.deps.Now()
}
