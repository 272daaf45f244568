package analytics

import (
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// MonthlyComparison summarizes the window of each anchor in months, in order.
func MonthlyComparison(snap Snapshot, months []time.Time) []MonthlyStats {
	day := snap.MonthStartDay()
	stats := make([]MonthlyStats, 0, len(months))

	for _, anchor := range months {
		window := MonthWindow(anchor, day)
		var income, expense int64
		byCategory := make(map[string]int64)

		for i := range snap.Transactions {
			txn := &snap.Transactions[i]
			if !window.Contains(txn.HappenedAt) {
				continue
			}
			switch txn.Flow {
			case model.FlowIncome:
				income += txn.Amount
			case model.FlowExpense:
				expense += txn.Amount
				if txn.HasCategory() {
					byCategory[txn.CategoryID] += txn.Amount
				}
			}
		}

		totals := make(map[string]float64, len(byCategory))
		for id, amount := range byCategory {
			totals[id] = model.MinorToMajor(amount)
		}
		stats = append(stats, MonthlyStats{
			Month:          window.Label(),
			TotalIncome:    model.MinorToMajor(income),
			TotalExpense:   model.MinorToMajor(expense),
			NetAmount:      model.MinorToMajor(income - expense),
			CategoryTotals: totals,
		})
	}
	return stats
}
