package analytics

import (
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow returns the window that starts on monthStartDay of the anchor's
// calendar month and ends on the same day one month later, in the anchor's
// location. Only the anchor's year and month are used. A monthStartDay outside
// 1-28 falls back to 1.
func MonthWindow(anchor time.Time, monthStartDay int) Window {
	if monthStartDay < model.MinMonthStartDay || monthStartDay > model.MaxMonthStartDay {
		monthStartDay = model.MinMonthStartDay
	}
	loc := anchor.Location()
	y, m, _ := anchor.Date()
	return Window{
		Start: time.Date(y, m, monthStartDay, 0, 0, 0, 0, loc),
		End:   time.Date(y, m+1, monthStartDay, 0, 0, 0, 0, loc),
	}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Label returns the window's month as YYYY-MM.
func (w Window) Label() string {
	return w.Start.Format("2006-01")
}

// RecentMonths returns n month anchors ending with now's month, oldest first.
func RecentMonths(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	y, m, _ := now.Date()
	months := make([]time.Time, n)
	for i := 0; i < n; i++ {
		months[i] = time.Date(y, m-time.Month(n-1-i), 1, 0, 0, 0, 0, now.Location())
	}
	return months
}
