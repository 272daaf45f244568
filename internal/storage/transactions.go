package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
)

const transactionColumns = `id, flow, category_id, amount, payment_method, reason, happened_at, created_at, updated_at`

// GetTransactions returns the transactions matching filter, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, *filter.EndDate, *filter.StartDate)
	}

	var (
		conditions []string
		args       []any
	)
	if filter.StartDate != nil {
		conditions = append(conditions, "happened_at >= ?")
		args = append(args, toUnix(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "happened_at <= ?")
		args = append(args, toUnix(*filter.EndDate))
	}
	if filter.CategoryID != "" {
		conditions = append(conditions, "category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.Flow != "" {
		conditions = append(conditions, "flow = ?")
		args = append(args, string(filter.Flow))
	}
	if filter.PaymentMethod != "" {
		conditions = append(conditions, "payment_method = ?")
		args = append(args, string(filter.PaymentMethod))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY happened_at DESC, created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(transactions))
	return transactions, nil
}

// GetTransactionByID returns a transaction by its ID, or common.ErrNotFound.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getTransactionByIDTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getTransactionByIDTx(ctx context.Context, q queryable, id string) (*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`

	txn, err := scanTransaction(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return txn, nil
}

// InsertTransaction stores a new transaction. A duplicate ID yields common.ErrDuplicateKey.
func (s *SQLiteStorage) InsertTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		txn.ID,
		string(txn.Flow),
		nullString(txn.CategoryID),
		txn.Amount,
		string(txn.PaymentMethod),
		txn.Reason,
		toUnix(txn.HappenedAt),
		toUnix(txn.CreatedAt),
		toUnix(txn.UpdatedAt),
	)
	if err != nil {
		return translateError(err, "failed to insert transaction "+txn.ID)
	}

	slog.Debug("created transaction", "id", txn.ID, "flow", txn.Flow, "amount", txn.Amount)
	return nil
}

// UpdateTransaction merges patch over the stored transaction and stamps updatedAt.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch, updatedAt time.Time) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var updated *model.Transaction
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := s.getTransactionByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		patch.Apply(existing)
		existing.UpdatedAt = updatedAt
		if err := validateTransaction(existing); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE transactions
			SET flow = ?, category_id = ?, amount = ?, payment_method = ?,
			    reason = ?, happened_at = ?, updated_at = ?
			WHERE id = ?`,
			string(existing.Flow),
			nullString(existing.CategoryID),
			existing.Amount,
			string(existing.PaymentMethod),
			existing.Reason,
			toUnix(existing.HappenedAt),
			toUnix(existing.UpdatedAt),
			id,
		)
		if err != nil {
			return translateError(err, "failed to update transaction "+id)
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteTransaction removes a transaction.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return translateError(err, "failed to delete transaction "+id)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}

	slog.Debug("deleted transaction", "id", id)
	return nil
}

// CountTransactions returns the number of stored transactions.
func (s *SQLiteStorage) CountTransactions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		txn           model.Transaction
		flow          string
		categoryID    sql.NullString
		paymentMethod string
		happenedAt    int64
		createdAt     int64
		updatedAt     int64
	)
	err := row.Scan(
		&txn.ID,
		&flow,
		&categoryID,
		&txn.Amount,
		&paymentMethod,
		&txn.Reason,
		&happenedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.Flow = model.Flow(flow)
	txn.CategoryID = categoryID.String
	txn.PaymentMethod = model.PaymentMethod(paymentMethod)
	txn.HappenedAt = fromUnix(happenedAt)
	txn.CreatedAt = fromUnix(createdAt)
	txn.UpdatedAt = fromUnix(updatedAt)
	return &txn, nil
}
