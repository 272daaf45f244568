package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

const categoryColumns = `id, name, color, emoji, kind, created_at, updated_at`

// GetCategories returns every category ordered by creation.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY created_at, rowid`

	categories, err := s.queryCategories(ctx, s.db, query)
	if err != nil {
		return nil, err
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoriesByKind returns the categories of one kind.
func (s *SQLiteStorage) GetCategoriesByKind(ctx context.Context, kind model.CategoryKind) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown category kind %q", ErrInvalidCategory, kind)
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE kind = ?
		ORDER BY created_at, rowid`

	return s.queryCategories(ctx, s.db, query, string(kind))
}

// GetCategoryByID returns a category by its ID, or common.ErrNotFound.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getCategoryByIDTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getCategoryByIDTx(ctx context.Context, q queryable, id string) (*model.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = ?`

	cat, err := scanCategory(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return cat, nil
}

// InsertCategory stores a new category. A duplicate ID or name yields common.ErrDuplicateKey.
func (s *SQLiteStorage) InsertCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Color,
		category.Emoji,
		string(category.Kind),
		toUnix(category.CreatedAt),
		toUnix(category.UpdatedAt),
	)
	if err != nil {
		return translateError(err, "failed to insert category "+category.Name)
	}

	slog.Info("created category", "name", category.Name, "id", category.ID)
	return nil
}

// UpdateCategory merges patch over the stored category and stamps updatedAt.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch, updatedAt time.Time) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var updated *model.Category
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := s.getCategoryByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		patch.Apply(existing)
		existing.UpdatedAt = updatedAt
		if err := validateCategory(existing); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE categories
			SET name = ?, color = ?, emoji = ?, kind = ?, updated_at = ?
			WHERE id = ?`,
			existing.Name,
			existing.Color,
			existing.Emoji,
			string(existing.Kind),
			toUnix(existing.UpdatedAt),
			id,
		)
		if err != nil {
			return translateError(err, "failed to update category "+id)
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("updated category", "id", id, "name", updated.Name)
	return updated, nil
}

// DeleteCategory removes a category. Referencing transactions are left untouched.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return translateError(err, "failed to delete category "+id)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}

	slog.Info("deleted category", "id", id)
	return nil
}

// CountCategories returns the number of stored categories.
func (s *SQLiteStorage) CountCategories(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) queryCategories(ctx context.Context, q queryable, query string, args ...any) ([]model.Category, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var (
		cat       model.Category
		kind      string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Color, &cat.Emoji, &kind, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	cat.Kind = model.CategoryKind(kind)
	cat.CreatedAt = fromUnix(createdAt)
	cat.UpdatedAt = fromUnix(updatedAt)
	return &cat, nil
}
