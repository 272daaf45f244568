package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want ErrorKind
	}{
		{name: "nil", err: nil, want: KindNone},
		{name: "wrapped not found", err: fmt.Errorf("update transaction abc: %w", ErrNotFound), want: KindNotFound},
		{name: "duplicate", err: fmt.Errorf("insert category: %w", ErrDuplicateKey), want: KindDuplicateKey},
		{name: "storage", err: fmt.Errorf("open: %w", ErrStorageUnavailable), want: KindStorageUnavailable},
		{name: "invalid amount is invalid input", err: ErrInvalidAmount, want: KindInvalidInput},
		{name: "other", err: errors.New("boom"), want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestUserError(t *testing.T) {
	err := NewUserError("Transaction not found", ErrNotFound)
	assert.Equal(t, "Transaction not found: not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)

	bare := &UserError{UserMessage: "nothing to do"}
	assert.Equal(t, "nothing to do", bare.Error())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible", "count", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"count":3`)

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
