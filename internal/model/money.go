// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// MinorUnitsPerMajor is the number of minor units (paise) in one display unit.
const MinorUnitsPerMajor = 100

// Money is an amount in minor currency units.
type Money int64

// Major returns the amount in display units.
func (m Money) Major() float64 {
	return float64(m) / MinorUnitsPerMajor
}

// MinorToMajor converts minor units to display units.
func MinorToMajor(minor int64) float64 {
	return Money(minor).Major()
}

// ParseMajor converts a decimal display amount such as "12.34" or "12,34" into
// minor units, rounding half-up on the third fractional digit. Negative values
// are rejected; direction belongs to the transaction flow.
func ParseMajor(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || whole > math.MaxInt64/MinorUnitsPerMajor-1 {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}

	var frac int64
	for i := 0; i < len(fracPart) && i < 2; i++ {
		frac = frac*10 + int64(fracPart[i]-'0')
	}
	if len(fracPart) == 1 {
		frac *= 10
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		frac++
	}

	return Money(whole*MinorUnitsPerMajor + frac), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
