package analytics

import (
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// CalculateBalance returns the running balance over all transactions and the
// income, expense, and net of the window containing now.
//
// Income and adjustments add to the balance and expenses subtract. Adjustments
// are left out of the monthly figures. Sums are taken in minor units and
// converted once, so the result carries no accumulated rounding error.
func CalculateBalance(snap Snapshot, now time.Time) BalanceInfo {
	window := MonthWindow(now, snap.MonthStartDay())

	var balance, income, expense int64
	for i := range snap.Transactions {
		txn := &snap.Transactions[i]
		switch txn.Flow {
		case model.FlowIncome, model.FlowAdjustment:
			balance += txn.Amount
		case model.FlowExpense:
			balance -= txn.Amount
		}

		if !window.Contains(txn.HappenedAt) {
			continue
		}
		switch txn.Flow {
		case model.FlowIncome:
			income += txn.Amount
		case model.FlowExpense:
			expense += txn.Amount
		}
	}

	return BalanceInfo{
		CurrentBalance: model.MinorToMajor(balance),
		ThisMonth: MonthSummary{
			Income:  model.MinorToMajor(income),
			Expense: model.MinorToMajor(expense),
			Net:     model.MinorToMajor(income - expense),
		},
	}
}
