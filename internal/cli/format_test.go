package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestMoneyFormatter(t *testing.T) {
	f := NewMoneyFormatter("₹", language.English)

	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "₹0.00"},
		{"small", 58, "₹58.00"},
		{"grouped", 1234.5, "₹1,234.50"},
		{"negative", -50.25, "-₹50.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.amount))
		})
	}

	assert.Equal(t, "₹45,000.00", f.FormatMinor(4500000))
}

func TestParseDateAndMonth(t *testing.T) {
	d, err := ParseDate("2024-03-15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	m, err := ParseMonth(" 2024-02 ", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), m)

	_, err = ParseDate("15/03/2024", time.UTC)
	assert.Error(t, err)
	_, err = ParseMonth("March", time.UTC)
	assert.Error(t, err)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "75.0%", FormatPercent(75))
	assert.Equal(t, "33.3%", FormatPercent(100.0/3))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out strings.Builder
			got, err := Confirm(context.Background(), strings.NewReader(tt.input), &out, "Delete?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete? [y/N]")
		})
	}

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var out strings.Builder
		_, err := Confirm(ctx, blockingReader{}, &out, "Delete?")
		assert.ErrorIs(t, err, ErrInputCancelled)
	})
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
