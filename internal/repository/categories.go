package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
)

// Categories is the category repository.
type Categories struct {
	store service.CategoryStore
	opts  options
}

// NewCategories creates a category repository.
func NewCategories(store service.CategoryStore, opts ...Option) *Categories {
	return &Categories{store: store, opts: buildOptions(opts)}
}

// Add creates a category with a fresh ID and timestamps.
func (r *Categories) Add(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Color = strings.TrimSpace(input.Color)
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	now := r.opts.now()
	category := &model.Category{
		ID:        r.opts.newID(),
		Name:      input.Name,
		Color:     input.Color,
		Emoji:     input.Emoji,
		Kind:      input.Kind,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.store.InsertCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("add category %q: %w", input.Name, err)
	}
	return category, nil
}

// Get returns one category.
func (r *Categories) Get(ctx context.Context, id string) (*model.Category, error) {
	return r.store.GetCategoryByID(ctx, id)
}

// List returns every category.
func (r *Categories) List(ctx context.Context) ([]model.Category, error) {
	return r.store.GetCategories(ctx)
}

// ListByKind returns the categories of one kind.
func (r *Categories) ListByKind(ctx context.Context, kind model.CategoryKind) ([]model.Category, error) {
	return r.store.GetCategoriesByKind(ctx, kind)
}

// Count returns the number of stored categories.
func (r *Categories) Count(ctx context.Context) (int, error) {
	return r.store.CountCategories(ctx)
}

// FindByName returns the category with the given name, or common.ErrNotFound.
// An exact match wins over a case-insensitive one.
func (r *Categories) FindByName(ctx context.Context, name string) (*model.Category, error) {
	categories, err := r.store.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	var folded *model.Category
	for i := range categories {
		switch {
		case categories[i].Name == name:
			return &categories[i], nil
		case folded == nil && strings.EqualFold(categories[i].Name, name):
			folded = &categories[i]
		}
	}
	if folded != nil {
		return folded, nil
	}
	return nil, fmt.Errorf("category %q: %w", name, common.ErrNotFound)
}

// Update applies a partial edit and refreshes UpdatedAt.
func (r *Categories) Update(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: category name cannot be empty", common.ErrInvalidInput)
		}
		patch.Name = &trimmed
	}
	if patch.Color != nil && strings.TrimSpace(*patch.Color) == "" {
		return nil, fmt.Errorf("%w: category color cannot be empty", common.ErrInvalidInput)
	}
	if patch.Kind != nil && !patch.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown category kind %q", common.ErrInvalidInput, *patch.Kind)
	}

	updated, err := r.store.UpdateCategory(ctx, id, patch, r.opts.now())
	if err != nil {
		return nil, fmt.Errorf("update category %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes a category. Transactions referencing it keep the dangling ID.
func (r *Categories) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

func validateCategoryInput(input model.CategoryInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: category name cannot be empty", common.ErrInvalidInput)
	}
	if input.Color == "" {
		return fmt.Errorf("%w: category color cannot be empty", common.ErrInvalidInput)
	}
	if !input.Kind.Valid() {
		return fmt.Errorf("%w: unknown category kind %q", common.ErrInvalidInput, input.Kind)
	}
	return nil
}
