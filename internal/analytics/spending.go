package analytics

import (
	"sort"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

type categoryTotal struct {
	id     string
	amount int64
	count  int
}

// CategorySpending breaks down the expenses of month's window by category.
//
// Only expense transactions with a category count. Results are sorted by
// amount, largest first; equal amounts keep the order in which their category
// was first seen in snap.Transactions. Percentages are shares of the window's
// categorized expense total, or 0 when that total is 0.
func CategorySpending(snap Snapshot, month time.Time) []CategorySpend {
	window := MonthWindow(month, snap.MonthStartDay())

	var totals []*categoryTotal
	index := make(map[string]*categoryTotal)
	var total int64

	for i := range snap.Transactions {
		txn := &snap.Transactions[i]
		if txn.Flow != model.FlowExpense || !txn.HasCategory() || !window.Contains(txn.HappenedAt) {
			continue
		}
		entry, ok := index[txn.CategoryID]
		if !ok {
			entry = &categoryTotal{id: txn.CategoryID}
			index[txn.CategoryID] = entry
			totals = append(totals, entry)
		}
		entry.amount += txn.Amount
		entry.count++
		total += txn.Amount
	}

	lookup := NewCategoryLookup(snap.Categories)
	result := make([]CategorySpend, 0, len(totals))
	for _, entry := range totals {
		name, color, emoji := lookup.Resolve(entry.id)
		var pct float64
		if total > 0 {
			pct = float64(entry.amount) / float64(total) * 100
		}
		result = append(result, CategorySpend{
			CategoryID:       entry.id,
			CategoryName:     name,
			CategoryColor:    color,
			CategoryEmoji:    emoji,
			Amount:           model.MinorToMajor(entry.amount),
			Percentage:       pct,
			TransactionCount: entry.count,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})
	return result
}
