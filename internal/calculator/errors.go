package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/money"
)

// Sentinels for errors.Is. The typed errors below carry the diagnostics.
var (
	ErrInvalidSplit     = errors.New("invalid split")
	ErrSplitMismatch    = errors.New("split does not add up")
	ErrUnknownMember    = errors.New("unknown member")
	ErrUnbalancedLedger = errors.New("unbalanced ledger")
)

// InvalidSplitError reports a split request that cannot be resolved at all:
// no participants, a non-positive amount, negative or sub-cent values.
type InvalidSplitError struct {
	Reason string
}

func (e *InvalidSplitError) Error() string {
	return "invalid split: " + e.Reason
}

func (e *InvalidSplitError) Is(target error) bool {
	return target == ErrInvalidSplit
}

// Units reported by SplitMismatchError.
const (
	UnitAmount  = "amount"
	UnitPercent = "percent"
)

// SplitMismatchError reports custom amounts or percentages that do not sum
// to the expected total.
type SplitMismatchError struct {
	Expected decimal.Decimal
	Actual   decimal.Decimal
	Unit     string
}

func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("split %s mismatch: expected %s, got %s",
		e.Unit, e.Expected.StringFixed(2), e.Actual.StringFixed(2))
}

func (e *SplitMismatchError) Is(target error) bool {
	return target == ErrSplitMismatch
}

// Roles reported by UnknownMemberError.
const (
	RolePayer       = "payer"
	RoleParticipant = "participant"
	RoleBalance     = "balance"
	RolePayment     = "payment"
)

// UnknownMemberError reports an ID that is not part of the group's member set.
type UnknownMemberError struct {
	MemberID  string
	Role      string
	ExpenseID string // empty when the ID did not come from an expense
}

func (e *UnknownMemberError) Error() string {
	if e.ExpenseID != "" {
		return fmt.Sprintf("unknown %s %q in expense %q", e.Role, e.MemberID, e.ExpenseID)
	}
	return fmt.Sprintf("unknown %s %q", e.Role, e.MemberID)
}

func (e *UnknownMemberError) Is(target error) bool {
	return target == ErrUnknownMember
}

// UnbalancedLedgerError reports balances whose total debts and credits differ
// by at least the dust threshold.
type UnbalancedLedgerError struct {
	Debts   money.Money
	Credits money.Money
}

func (e *UnbalancedLedgerError) Error() string {
	return fmt.Sprintf("unbalanced ledger: debts %s, credits %s (off by %s)",
		e.Debts, e.Credits, (e.Credits - e.Debts).Abs())
}

func (e *UnbalancedLedgerError) Is(target error) bool {
	return target == ErrUnbalancedLedger
}
