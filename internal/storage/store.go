// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

var (
	// ErrNotFound is returned when a group, member, expense or payment does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMemberInUse is returned when removing a member that still appears
	// in an expense or payment.
	ErrMemberInUse = errors.New("member is referenced by expenses or payments")
)

// Snapshot is a consistent view of one group, read in a single transaction.
// Balances are always computed from a snapshot, never from piecemeal reads.
type Snapshot struct {
	Group    models.Group
	Expenses []models.Expense
	Payments []models.Payment
}

// MemberIDs returns the group's member IDs in stored order.
func (s *Snapshot) MemberIDs() []string {
	return s.Group.MemberIDs()
}

// ExpensePatch is a partial update of an expense. Nil fields are left unchanged.
// Amount and Split must change together; the caller re-resolves the split
// whenever the amount, participants or split type change.
type ExpensePatch struct {
	Description *string
	Category    *models.Category
	PaidBy      *string
	Amount      *money.Money
	SplitType   *models.SplitType
	Split       map[string]money.Money
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatch) IsEmpty() bool {
	return p.Description == nil && p.Category == nil && p.PaidBy == nil &&
		p.Amount == nil && p.SplitType == nil && p.Split == nil
}

// Apply writes the patch onto e and checks the result.
func (p ExpensePatch) Apply(e *models.Expense) error {
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.PaidBy != nil {
		e.PaidBy = *p.PaidBy
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.SplitType != nil {
		e.SplitType = *p.SplitType
	}
	if p.Split != nil {
		e.Split = p.Split
		e.Participants = models.SplitParticipants(p.Split)
	}
	return e.Validate()
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group with its initial members.
	// Missing IDs and CreatedAt are filled in by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group and everything recorded in it.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMember adds a member to a group. A missing ID is generated.
	AddMember(ctx context.Context, groupID string, member *models.Member) error

	// RemoveMember removes a member. Returns ErrMemberInUse if the member
	// paid for, shares in, or took part in a payment of the group.
	RemoveMember(ctx context.Context, groupID, memberID string) error

	// CreateExpense persists an expense and adds its amount to the group total.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its split.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// UpdateExpense applies a patch in one transaction, replacing the whole
	// split if the patch carries one, and adjusts the group total by the delta.
	UpdateExpense(ctx context.Context, expenseID string, patch ExpensePatch) (*models.Expense, error)

	// DeleteExpense removes an expense and subtracts it from the group total.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpenses returns a group's expenses, newest first.
	ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)

	// RecordPayment persists a realized transfer and adds its amount to the
	// payer's Paid and the receiver's Owes in the same transaction.
	RecordPayment(ctx context.Context, payment *models.Payment) error

	// ListPayments returns a group's recorded payments, newest first.
	ListPayments(ctx context.Context, groupID string) ([]*models.Payment, error)

	// GetSnapshot reads a group, its expenses and payments in one transaction.
	GetSnapshot(ctx context.Context, groupID string) (*Snapshot, error)

	// Close releases any resources held by the store.
	Close() error
}
