package calculator

import (
	"cmp"
	"slices"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// DefaultTopSpenders is how many members Summarize ranks when asked for zero.
const DefaultTopSpenders = 3

// CategoryTotal is the spend in one category.
type CategoryTotal struct {
	Category models.Category
	Total    money.Money
}

// MemberShare is the sum of one member's split shares.
type MemberShare struct {
	MemberID string
	Name     string
	Total    money.Money
}

// Summary is the dashboard view of a group's expenses.
type Summary struct {
	Total        money.Money
	ExpenseCount int
	ByCategory   []CategoryTotal // largest first
	TopSpenders  []MemberShare   // largest first, at most the requested count
}

// Summarize totals expenses per category and ranks members by the shares
// they consumed. Names come from members; an ID missing there is shown as is.
func Summarize(expenses []models.Expense, members map[string]models.Member, top int) Summary {
	if top <= 0 {
		top = DefaultTopSpenders
	}

	summary := Summary{ExpenseCount: len(expenses)}
	byCategory := make(map[models.Category]money.Money)
	byMember := make(map[string]money.Money)
	for _, e := range expenses {
		summary.Total += e.Amount
		byCategory[models.ParseCategory(string(e.Category))] += e.Amount
		for id, share := range e.Split {
			byMember[id] += share
		}
	}

	for c, total := range byCategory {
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{Category: c, Total: total})
	}
	slices.SortFunc(summary.ByCategory, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})

	spenders := make([]MemberShare, 0, len(byMember))
	for id, total := range byMember {
		name := id
		if m, ok := members[id]; ok && m.Name != "" {
			name = m.Name
		}
		spenders = append(spenders, MemberShare{MemberID: id, Name: name, Total: total})
	}
	slices.SortFunc(spenders, func(a, b MemberShare) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.MemberID, b.MemberID)
	})
	if len(spenders) > top {
		spenders = spenders[:top]
	}
	summary.TopSpenders = spenders

	return summary
}
