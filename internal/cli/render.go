package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"

	"github.com/Veraticus/pocket-ledger/internal/analytics"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Format selects the output representation.
type Format string

// Output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table or json)", s)
}

// RenderJSON writes v as indented JSON followed by a newline.
func RenderJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Renderer writes ledger data in one format.
type Renderer struct {
	w      io.Writer
	money  *MoneyFormatter
	format Format
}

// NewRenderer creates a renderer. currency is the symbol prefixed to amounts.
func NewRenderer(w io.Writer, format Format, currency string) *Renderer {
	return &Renderer{
		w:      w,
		money:  NewMoneyFormatter(currency, language.English),
		format: format,
	}
}

// Money returns the renderer's amount formatter.
func (r *Renderer) Money() *MoneyFormatter {
	return r.money
}

func (r *Renderer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
}

// Balance renders the running balance and the month summary for window.
func (r *Renderer) Balance(info analytics.BalanceInfo, window analytics.Window) error {
	if r.format == FormatJSON {
		return RenderJSON(r.w, info)
	}

	tw := r.table()
	fmt.Fprintf(tw, "%s\t%s\n", HeaderStyle.Render("Balance"), r.money.Format(info.CurrentBalance))
	fmt.Fprintf(tw, "%s\t%s\n", HeaderStyle.Render("Period"), windowLabel(window))
	fmt.Fprintf(tw, "  Income\t%s\n", IncomeStyle.Render(r.money.Format(info.ThisMonth.Income)))
	fmt.Fprintf(tw, "  Expense\t%s\n", ExpenseStyle.Render(r.money.Format(info.ThisMonth.Expense)))
	fmt.Fprintf(tw, "  Net\t%s\n", r.money.Format(info.ThisMonth.Net))
	return tw.Flush()
}

// Spending renders a category breakdown.
func (r *Renderer) Spending(spend []analytics.CategorySpend, window analytics.Window) error {
	if spend == nil {
		spend = []analytics.CategorySpend{}
	}
	if r.format == FormatJSON {
		return RenderJSON(r.w, spend)
	}

	fmt.Fprintln(r.w, SubtleStyle.Render(windowLabel(window)))
	if len(spend) == 0 {
		fmt.Fprintln(r.w, SubtleStyle.Render("No categorized expenses in this period."))
		return nil
	}

	tw := r.table()
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("CATEGORY"),
		HeaderStyle.Render("AMOUNT"),
		HeaderStyle.Render("SHARE"),
		HeaderStyle.Render("COUNT"))
	for _, s := range spend {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%d\n",
			Swatch(s.CategoryColor), categoryLabel(s.CategoryEmoji, s.CategoryName),
			r.money.Format(s.Amount), FormatPercent(s.Percentage), s.TransactionCount)
	}
	return tw.Flush()
}

// Comparison renders month-over-month totals.
func (r *Renderer) Comparison(stats []analytics.MonthlyStats, lookup analytics.CategoryLookup) error {
	if stats == nil {
		stats = []analytics.MonthlyStats{}
	}
	if r.format == FormatJSON {
		return RenderJSON(r.w, stats)
	}

	tw := r.table()
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("MONTH"),
		HeaderStyle.Render("INCOME"),
		HeaderStyle.Render("EXPENSE"),
		HeaderStyle.Render("NET"),
		HeaderStyle.Render("TOP CATEGORY"))
	for _, s := range stats {
		top := "-"
		if id, amount, ok := topCategory(s.CategoryTotals); ok {
			name, _, emoji := lookup.Resolve(id)
			top = fmt.Sprintf("%s (%s)", categoryLabel(emoji, name), r.money.Format(amount))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Month,
			r.money.Format(s.TotalIncome), r.money.Format(s.TotalExpense), r.money.Format(s.NetAmount), top)
	}
	return tw.Flush()
}

// Categories renders the category list.
func (r *Renderer) Categories(categories []model.Category) error {
	if categories == nil {
		categories = []model.Category{}
	}
	if r.format == FormatJSON {
		return RenderJSON(r.w, categories)
	}
	if len(categories) == 0 {
		fmt.Fprintln(r.w, SubtleStyle.Render("No categories found. Use 'pocket categories add' to create one."))
		return nil
	}

	tw := r.table()
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("ID"),
		HeaderStyle.Render("NAME"),
		HeaderStyle.Render("KIND"),
		HeaderStyle.Render("COLOR"))
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\n", c.ID, categoryLabel(c.Emoji, c.Name), c.Kind, Swatch(c.Color), c.Color)
	}
	return tw.Flush()
}

// Transactions renders transactions, resolving category names through lookup.
func (r *Renderer) Transactions(txns []model.Transaction, lookup analytics.CategoryLookup) error {
	if txns == nil {
		txns = []model.Transaction{}
	}
	if r.format == FormatJSON {
		return RenderJSON(r.w, txns)
	}
	if len(txns) == 0 {
		fmt.Fprintln(r.w, SubtleStyle.Render("No transactions found."))
		return nil
	}

	tw := r.table()
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("DATE"),
		HeaderStyle.Render("AMOUNT"),
		HeaderStyle.Render("CATEGORY"),
		HeaderStyle.Render("METHOD"),
		HeaderStyle.Render("REASON"),
		HeaderStyle.Render("ID"))
	for i := range txns {
		txn := &txns[i]
		category := string(txn.Flow)
		if txn.HasCategory() {
			name, _, emoji := lookup.Resolve(txn.CategoryID)
			category = categoryLabel(emoji, name)
			if !lookup.Known(txn.CategoryID) {
				category += " " + WarningStyle.Render("(deleted)")
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			txn.HappenedAt.Format(DateLayout), r.money.FormatSigned(txn), category,
			txn.PaymentMethod, txn.Reason, SubtleStyle.Render(txn.ID))
	}
	return tw.Flush()
}

// Transaction renders a single transaction.
func (r *Renderer) Transaction(txn *model.Transaction, lookup analytics.CategoryLookup) error {
	if r.format == FormatJSON {
		return RenderJSON(r.w, txn)
	}
	return r.Transactions([]model.Transaction{*txn}, lookup)
}

// Category renders a single category.
func (r *Renderer) Category(c *model.Category) error {
	if r.format == FormatJSON {
		return RenderJSON(r.w, c)
	}
	return r.Categories([]model.Category{*c})
}

// Settings renders the settings singleton. The passcode hash is never shown in tables.
func (r *Renderer) Settings(s *model.Settings) error {
	if r.format == FormatJSON {
		return RenderJSON(r.w, s)
	}

	tw := r.table()
	rows := [][2]string{
		{"currency", s.CurrencySymbol},
		{"default-payment", string(s.DefaultPaymentMethod)},
		{"month-start-day", fmt.Sprintf("%d", s.MonthStartDay)},
		{"accent-color", Swatch(s.AccentColor) + " " + s.AccentColor},
		{"theme", string(s.Theme)},
		{"require-passcode", fmt.Sprintf("%t", s.RequirePasscode)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", HeaderStyle.Render(row[0]), row[1])
	}
	return tw.Flush()
}

func windowLabel(w analytics.Window) string {
	return fmt.Sprintf("%s to %s", w.Start.Format(DateLayout), w.End.AddDate(0, 0, -1).Format(DateLayout))
}

func categoryLabel(emoji, name string) string {
	if emoji == "" {
		return name
	}
	return emoji + " " + name
}

// topCategory returns the largest entry, breaking ties by ID so output is deterministic.
func topCategory(totals map[string]float64) (string, float64, bool) {
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return "", 0, false
	}
	sort.Strings(ids)

	best := ids[0]
	for _, id := range ids[1:] {
		if totals[id] > totals[best] {
			best = id
		}
	}
	return best, totals[best], true
}
