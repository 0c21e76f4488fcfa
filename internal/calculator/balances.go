package calculator

import (
	"maps"
	"slices"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// Balance is one member's aggregate position in a group.
type Balance struct {
	TotalPaid  money.Money // sum of expense amounts this member paid
	TotalOwes  money.Money // sum of this member's split shares
	NetBalance money.Money // Positive = owed money, Negative = owes money
}

// ComputeBalances folds a group's expenses into one Balance per member.
//
// members is the group's member set. Every payer and every split key must be
// in it, otherwise an *UnknownMemberError is returned and no balances are.
// The input must be a consistent snapshot; the result is recomputed from
// scratch on every call.
//
// For a closed group whose splits sum to their amounts, the net balances sum
// to exactly zero.
func ComputeBalances(members []string, expenses []models.Expense) (map[string]Balance, error) {
	return ComputeLedgerBalances(members, expenses, nil)
}

// ComputeLedgerBalances is ComputeBalances with recorded payments applied on
// top of the expenses.
//
// Algorithm:
//   - For each expense: payer contributed +amount, each participant owes their share
//   - For each payment: payer's balance improves, receiver's balance decreases
//   - Aggregate: net_balance = total_paid - total_owes
func ComputeLedgerBalances(members []string, expenses []models.Expense, payments []models.Payment) (map[string]Balance, error) {
	balances := make(map[string]*Balance, len(members))
	for _, id := range members {
		balances[id] = &Balance{}
	}

	for _, e := range expenses {
		payer, ok := balances[e.PaidBy]
		if !ok {
			return nil, &UnknownMemberError{MemberID: e.PaidBy, Role: RolePayer, ExpenseID: e.ID}
		}
		payer.TotalPaid += e.Amount

		// Sorted so the first offending ID is reported deterministically.
		for _, id := range slices.Sorted(maps.Keys(e.Split)) {
			b, ok := balances[id]
			if !ok {
				return nil, &UnknownMemberError{MemberID: id, Role: RoleParticipant, ExpenseID: e.ID}
			}
			b.TotalOwes += e.Split[id]
		}
	}

	for _, p := range payments {
		from, ok := balances[p.From]
		if !ok {
			return nil, &UnknownMemberError{MemberID: p.From, Role: RolePayment}
		}
		to, ok := balances[p.To]
		if !ok {
			return nil, &UnknownMemberError{MemberID: p.To, Role: RolePayment}
		}
		from.TotalPaid += p.Amount
		to.TotalOwes += p.Amount
	}

	result := make(map[string]Balance, len(balances))
	for id, b := range balances {
		b.NetBalance = b.TotalPaid - b.TotalOwes
		result[id] = *b
	}
	return result, nil
}

// NetTotal sums the net balances. Zero for a consistent ledger.
func NetTotal(balances map[string]Balance) money.Money {
	var total money.Money
	for _, b := range balances {
		total += b.NetBalance
	}
	return total
}

// ApplySettlements returns the balances as they would be after every
// settlement is paid. The input map is not modified.
func ApplySettlements(balances map[string]Balance, settlements []Settlement) map[string]Balance {
	adjusted := maps.Clone(balances)
	for _, s := range settlements {
		from := adjusted[s.From]
		from.TotalPaid += s.Amount
		from.NetBalance += s.Amount
		adjusted[s.From] = from

		to := adjusted[s.To]
		to.TotalOwes += s.Amount
		to.NetBalance -= s.Amount
		adjusted[s.To] = to
	}
	return adjusted
}
