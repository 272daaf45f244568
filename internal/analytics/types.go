// Package analytics turns stored transactions into balances, monthly
// summaries, and per-category spending breakdowns.
//
// The computations are pure functions over a Snapshot. They never mutate
// their inputs, perform no I/O, and are safe for concurrent use. Engine loads
// a fresh Snapshot from the repositories for every call; nothing is cached.
package analytics

import (
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Snapshot is the data a computation runs over.
type Snapshot struct {
	Settings     *model.Settings
	Transactions []model.Transaction
	Categories   []model.Category
}

// MonthStartDay returns the effective month start day for the snapshot.
func (s Snapshot) MonthStartDay() int {
	return s.Settings.EffectiveMonthStartDay()
}

// MonthSummary holds the income and expense of one window. Adjustments are never included.
type MonthSummary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// BalanceInfo is the running balance plus the current window's activity.
type BalanceInfo struct {
	ThisMonth      MonthSummary `json:"thisMonth"`
	CurrentBalance float64      `json:"currentBalance"`
}

// CategorySpend is one category's share of the expenses in a window.
type CategorySpend struct {
	CategoryID       string  `json:"categoryId"`
	CategoryName     string  `json:"categoryName"`
	CategoryColor    string  `json:"categoryColor"`
	CategoryEmoji    string  `json:"categoryEmoji,omitempty"`
	Amount           float64 `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transactionCount"`
}

// MonthlyStats summarizes one window for month-over-month comparison.
// CategoryTotals is keyed by category ID and holds expense totals.
type MonthlyStats struct {
	CategoryTotals map[string]float64 `json:"categoryTotals"`
	Month          string             `json:"month"`
	TotalIncome    float64            `json:"totalIncome"`
	TotalExpense   float64            `json:"totalExpense"`
	NetAmount      float64            `json:"netAmount"`
}
