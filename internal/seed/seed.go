// Package seed populates an empty ledger with default categories and a few
// sample transactions.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Sample is a transaction template whose date is relative to the seeding time.
type Sample struct {
	Flow          model.Flow          `yaml:"flow"`
	Category      string              `yaml:"category"`
	PaymentMethod model.PaymentMethod `yaml:"payment_method"`
	Reason        string              `yaml:"reason"`
	Amount        int64               `yaml:"amount"`
	DaysAgo       int                 `yaml:"days_ago"`
}

// Defaults is the seed document.
type Defaults struct {
	Categories []model.CategoryInput `yaml:"categories"`
	Samples    []Sample              `yaml:"samples"`
}

// LoadDefaults parses the embedded seed document.
func LoadDefaults() (*Defaults, error) {
	return ParseDefaults(defaultsYAML)
}

// ParseDefaults parses a seed document.
func ParseDefaults(data []byte) (*Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse seed defaults: %w", err)
	}
	for i, c := range d.Categories {
		if c.Name == "" || !c.Kind.Valid() {
			return nil, fmt.Errorf("%w: seed category %d", common.ErrInvalidInput, i)
		}
	}
	return &d, nil
}

// CategoryRepository is the part of the category repository the seeder uses.
type CategoryRepository interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]model.Category, error)
	Add(ctx context.Context, input model.CategoryInput) (*model.Category, error)
}

// TransactionRepository is the part of the transaction repository the seeder uses.
type TransactionRepository interface {
	Add(ctx context.Context, input model.TransactionInput) (*model.Transaction, error)
}

// Result reports what a seeding run wrote.
type Result struct {
	Categories   int
	Transactions int
	Skipped      bool
}

// Seeder writes the defaults into an empty ledger.
type Seeder struct {
	categories   CategoryRepository
	transactions TransactionRepository
	defaults     *Defaults
	now          func() time.Time
}

// NewSeeder creates a seeder. A nil defaults uses the embedded document.
func NewSeeder(categories CategoryRepository, transactions TransactionRepository, defaults *Defaults) (*Seeder, error) {
	if categories == nil || transactions == nil {
		return nil, errors.New("seeder requires category and transaction repositories")
	}
	if defaults == nil {
		d, err := LoadDefaults()
		if err != nil {
			return nil, err
		}
		defaults = d
	}
	return &Seeder{
		categories:   categories,
		transactions: transactions,
		defaults:     defaults,
		now:          time.Now,
	}, nil
}

// WithClock overrides the time samples are dated against.
func (s *Seeder) WithClock(now func() time.Time) *Seeder {
	s.now = now
	return s
}

// Run seeds the ledger if it has no categories. It is a no-op otherwise.
//
// All categories are written before any sample. Samples are only written when
// every category they reference was found by name after the category pass.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	existing, err := s.categories.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("check existing categories: %w", err)
	}
	if existing > 0 {
		slog.Debug("Ledger already has categories, skipping seed", "count", existing)
		return Result{Skipped: true}, nil
	}

	var result Result
	for _, input := range s.defaults.Categories {
		if _, err := s.categories.Add(ctx, input); err != nil {
			return result, fmt.Errorf("seed category %q: %w", input.Name, err)
		}
		result.Categories++
	}

	seeded, err := s.categories.List(ctx)
	if err != nil {
		return result, fmt.Errorf("reload categories: %w", err)
	}
	byName := make(map[string]string, len(seeded))
	for _, c := range seeded {
		byName[c.Name] = c.ID
	}

	for _, sample := range s.defaults.Samples {
		if _, ok := byName[sample.Category]; !ok {
			slog.Warn("Seed category missing, skipping sample transactions", "category", sample.Category)
			return result, nil
		}
	}

	now := s.now()
	for _, sample := range s.defaults.Samples {
		_, err := s.transactions.Add(ctx, model.TransactionInput{
			Flow:          sample.Flow,
			CategoryID:    byName[sample.Category],
			Amount:        sample.Amount,
			PaymentMethod: sample.PaymentMethod,
			Reason:        sample.Reason,
			HappenedAt:    now.AddDate(0, 0, -sample.DaysAgo),
		})
		if err != nil {
			return result, fmt.Errorf("seed sample %q: %w", sample.Reason, err)
		}
		result.Transactions++
	}

	slog.Info("Seeded ledger", "categories", result.Categories, "transactions", result.Transactions)
	return result, nil
}
