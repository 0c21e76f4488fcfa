package calculator

import (
	"cmp"
	"maps"
	"slices"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// DefaultDust is the smallest transfer worth suggesting.
const DefaultDust = money.Cent

// Settlement is a suggested transfer from a debtor to a creditor.
type Settlement struct {
	From     string // member who owes
	To       string // member who is owed
	FromName string
	ToName   string
	Amount   money.Money
}

// Planner turns net balances into transfers.
type Planner struct {
	// Dust is the threshold below which balances are treated as settled and
	// transfers are not emitted. Zero means DefaultDust.
	Dust money.Money
}

// PlanSettlements runs a Planner with the default dust threshold.
func PlanSettlements(balances map[string]Balance, members map[string]models.Member) ([]Settlement, error) {
	return Planner{}.Plan(balances, members)
}

type position struct {
	id        string
	remaining money.Money
}

// Plan matches the largest remaining debtor with the largest remaining
// creditor until one side runs out.
//
// Every balance key must be in members. If total debts and credits differ
// by the dust threshold or more, Plan returns an *UnbalancedLedgerError
// instead of a skewed plan. Equal remaining amounts are ordered by member ID.
//
// Transfers below the dust threshold are left out, but only while the
// amount each member is left holding stays below the threshold. The result
// has at most len(debtors)+len(creditors)-1 transfers, and after applying
// them every balance is within the dust threshold of zero.
func (p Planner) Plan(balances map[string]Balance, members map[string]models.Member) ([]Settlement, error) {
	dust := p.Dust
	if dust <= 0 {
		dust = DefaultDust
	}

	var debtors, creditors []position
	var debts, credits money.Money
	for _, id := range slices.Sorted(maps.Keys(balances)) {
		if _, ok := members[id]; !ok {
			return nil, &UnknownMemberError{MemberID: id, Role: RoleBalance}
		}
		net := balances[id].NetBalance
		switch {
		case net < 0:
			debts += -net
			debtors = append(debtors, position{id: id, remaining: -net})
		case net > 0:
			credits += net
			creditors = append(creditors, position{id: id, remaining: net})
		}
	}

	// slack is what stays unmatched at the tail of the walk.
	slack := (credits - debts).Abs()
	if slack >= dust {
		return nil, &UnbalancedLedgerError{Debts: debts, Credits: credits}
	}

	sortPositions(debtors)
	sortPositions(creditors)

	// residue is what each member keeps from skipped transfers.
	residue := make(map[string]money.Money)

	var settlements []Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := min(debtor.remaining, creditor.remaining)
		if amount < dust &&
			residue[debtor.id]+amount+slack < dust &&
			residue[creditor.id]+amount+slack < dust {
			residue[debtor.id] += amount
			residue[creditor.id] += amount
		} else {
			settlements = append(settlements, Settlement{
				From:     debtor.id,
				To:       creditor.id,
				FromName: members[debtor.id].Name,
				ToName:   members[creditor.id].Name,
				Amount:   amount,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining == 0 {
			i++
		}
		if creditor.remaining == 0 {
			j++
		}
	}

	return settlements, nil
}

// sortPositions orders by remaining amount, largest first, then by ID.
func sortPositions(ps []position) {
	slices.SortFunc(ps, func(a, b position) int {
		if c := cmp.Compare(b.remaining, a.remaining); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
}

// RecordSettlements books realized transfers on the member records:
// the payer's Paid and the receiver's Owes grow by the amount.
// It returns updated copies; members is not modified.
func RecordSettlements(members map[string]models.Member, settlements []Settlement) (map[string]models.Member, error) {
	updated := maps.Clone(members)
	for _, s := range settlements {
		if _, ok := updated[s.To]; !ok {
			return nil, &UnknownMemberError{MemberID: s.To, Role: RolePayment}
		}
		from, ok := updated[s.From]
		if !ok {
			return nil, &UnknownMemberError{MemberID: s.From, Role: RolePayment}
		}
		from.Paid += s.Amount
		updated[s.From] = from

		to := updated[s.To]
		to.Owes += s.Amount
		updated[s.To] = to
	}
	return updated, nil
}
