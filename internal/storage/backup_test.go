package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func TestBackup(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.InsertCategory(ctx, makeTestCategory("Food", model.CategoryKindExpense)))

	dest := filepath.Join(t.TempDir(), "backup.db")
	require.NoError(t, store.Backup(ctx, dest))

	copied, err := NewSQLiteStorage(dest)
	require.NoError(t, err)
	defer func() { _ = copied.Close() }()

	categories, err := copied.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Food", categories[0].Name)

	version, err := copied.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(ExpectedSchemaVersion), version)

	t.Run("refuses to overwrite", func(t *testing.T) {
		assert.ErrorIs(t, store.Backup(ctx, dest), ErrBackupExists)
	})
}

func TestBackupRejectsBadPaths(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for _, path := range []string{
		"",
		"relative.db",
		"/tmp/it's.db",
		"/tmp/a;b.db",
		"/tmp/../etc/x.db",
	} {
		t.Run(path, func(t *testing.T) {
			assert.ErrorIs(t, store.Backup(ctx, path), common.ErrInvalidInput)
		})
	}
}
