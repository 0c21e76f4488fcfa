// Package report renders a group's ledger as styled text tables.
package report

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).MarginBottom(1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	creditStyle  = cellStyle.Foreground(lipgloss.Color("42"))
	debitStyle   = cellStyle.Foreground(lipgloss.Color("203"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Report is everything shown for one group.
type Report struct {
	Title       string
	Members     []models.Member
	Expenses    []models.Expense
	Balances    map[string]calculator.Balance
	Settlements []calculator.Settlement
	Summary     *calculator.Summary // optional
}

// Render writes the report to w.
func Render(w io.Writer, r Report) error {
	names := make(map[string]string, len(r.Members))
	for _, m := range r.Members {
		names[m.ID] = cmp.Or(m.Name, m.ID)
	}
	name := func(id string) string {
		return cmp.Or(names[id], id)
	}

	var b strings.Builder
	if r.Title != "" {
		b.WriteString(titleStyle.Render(r.Title))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Expenses"))
	b.WriteString("\n")
	if len(r.Expenses) == 0 {
		b.WriteString(mutedStyle.Render("No expenses yet."))
	} else {
		b.WriteString(expenseTable(r.Expenses, name))
	}
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Balances"))
	b.WriteString("\n")
	b.WriteString(balanceTable(r.Balances, name))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Settle up"))
	b.WriteString("\n")
	b.WriteString(settlementList(r.Settlements, name))
	b.WriteString("\n")

	if r.Summary != nil && r.Summary.ExpenseCount > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Spending"))
		b.WriteString("\n")
		b.WriteString(summaryTable(*r.Summary))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func expenseTable(expenses []models.Expense, name func(string) string) string {
	t := newTable("Description", "Category", "Paid by", "Amount", "Split")
	for _, e := range expenses {
		shares := make([]string, 0, len(e.Split))
		for _, id := range slices.Sorted(maps.Keys(e.Split)) {
			shares = append(shares, fmt.Sprintf("%s %s", name(id), e.Split[id]))
		}
		t.Row(e.Description, string(e.Category), name(e.PaidBy), e.Amount.String(), strings.Join(shares, ", "))
	}
	return t.String()
}

func balanceTable(balances map[string]calculator.Balance, name func(string) string) string {
	ids := slices.SortedFunc(maps.Keys(balances), func(a, b string) int {
		return cmp.Compare(name(a), name(b))
	})

	t := newTable("Member", "Paid", "Share", "Net")
	for _, id := range ids {
		bal := balances[id]
		t.Row(name(id), bal.TotalPaid.String(), bal.TotalOwes.String(), signed(bal.NetBalance))
	}

	// Net column is colored by sign
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 3 && row < len(ids):
			switch net := balances[ids[row]].NetBalance; {
			case net > 0:
				return creditStyle
			case net < 0:
				return debitStyle
			}
		}
		return cellStyle
	})
	return t.String()
}

func settlementList(settlements []calculator.Settlement, name func(string) string) string {
	if len(settlements) == 0 {
		return mutedStyle.Render("All settled up.")
	}
	lines := make([]string, len(settlements))
	for i, s := range settlements {
		lines[i] = fmt.Sprintf("  %s → %s  %s", cmp.Or(s.FromName, name(s.From)), cmp.Or(s.ToName, name(s.To)), s.Amount)
	}
	return strings.Join(lines, "\n")
}

func summaryTable(s calculator.Summary) string {
	t := newTable("Category", "Total")
	for _, c := range s.ByCategory {
		t.Row(string(c.Category), c.Total.String())
	}
	t.Row("total", s.Total.String())

	out := t.String()
	if len(s.TopSpenders) > 0 {
		top := make([]string, len(s.TopSpenders))
		for i, m := range s.TopSpenders {
			top[i] = fmt.Sprintf("%s %s", m.Name, m.Total)
		}
		out += "\n" + mutedStyle.Render("Top shares: "+strings.Join(top, ", "))
	}
	return out
}

// signed formats a net balance with an explicit plus sign for credits.
func signed(m money.Money) string {
	if m > 0 {
		return "+" + m.String()
	}
	return m.String()
}
