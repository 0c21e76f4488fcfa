package models

import "github.com/mmynk/settleup/internal/money"

// Payment is a transfer between group members that actually happened,
// recorded to clear (part of) a debt.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// From is the member who paid (debtor settling up).
	From string

	// To is the member who received the payment (creditor being paid).
	To string

	// Amount is the payment amount.
	Amount money.Money

	// Note is an optional description.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
