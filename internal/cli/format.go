package cli

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// DateLayout is how dates are shown and parsed on the command line.
const DateLayout = "2006-01-02"

// MonthLayout is how months are shown and parsed on the command line.
const MonthLayout = "2006-01"

// MoneyFormatter renders display amounts with a currency symbol and digit grouping.
type MoneyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewMoneyFormatter returns a formatter grouping digits per tag.
func NewMoneyFormatter(symbol string, tag language.Tag) *MoneyFormatter {
	return &MoneyFormatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Format renders amount, for example "-₹1,234.50".
func (f *MoneyFormatter) Format(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + f.symbol + f.printer.Sprintf("%.2f", amount)
}

// FormatMinor renders an amount given in minor units.
func (f *MoneyFormatter) FormatMinor(minor int64) string {
	return f.Format(model.MinorToMajor(minor))
}

// FormatSigned renders a transaction amount with the sign of its flow.
func (f *MoneyFormatter) FormatSigned(txn *model.Transaction) string {
	switch txn.Flow {
	case model.FlowExpense:
		return ExpenseStyle.Render("-" + f.FormatMinor(txn.Amount))
	case model.FlowIncome:
		return IncomeStyle.Render("+" + f.FormatMinor(txn.Amount))
	default:
		return "+" + f.FormatMinor(txn.Amount)
	}
}

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM month in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return t, nil
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
