package models

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mmynk/settleup/internal/money"
)

// Category classifies an expense. The set is fixed; CategoryOther is the catch-all.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryUtilities     Category = "utilities"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryUtilities,
	CategoryOther,
}

// ParseCategory maps a name to a Category, case-insensitively.
// Unknown or empty names map to CategoryOther.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// SplitType selects how an expense amount is divided among its participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly among the selected participants.
	SplitEqual SplitType = "EQUAL"
	// SplitCustom takes explicit per-participant amounts.
	SplitCustom SplitType = "CUSTOM"
	// SplitPercentage takes per-participant percentages summing to 100.
	SplitPercentage SplitType = "PERCENTAGE"
)

// ParseSplitType parses a split type name, case-insensitively.
// An empty string means SplitEqual.
func ParseSplitType(s string) (SplitType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(SplitEqual):
		return SplitEqual, nil
	case string(SplitCustom):
		return SplitCustom, nil
	case string(SplitPercentage):
		return SplitPercentage, nil
	default:
		return "", fmt.Errorf("unknown split type %q", s)
	}
}

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrMissingPayer     = errors.New("expense has no payer")
	ErrEmptySplit       = errors.New("expense has no split")
)

// Expense is an atomic shared cost.
//
// The Split mapping is produced by calculator.ResolveSplit from the
// participants and the split type. An edit re-resolves and replaces the
// whole mapping.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Amount is the total cost, always positive.
	Amount money.Money

	// Description is a short human-readable label (e.g., "Dinner at Luigi's").
	Description string

	// Category classifies the expense for summaries.
	Category Category

	// PaidBy is the ID of the member who paid.
	PaidBy string

	// Participants are the member IDs sharing this expense.
	Participants []string

	// SplitType records how Split was produced.
	SplitType SplitType

	// Split maps participant ID to that participant's share.
	// Invariant: the shares sum exactly to Amount.
	Split map[string]money.Money

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64
}

// SplitTotal sums all shares in the split.
func (e *Expense) SplitTotal() money.Money {
	var total money.Money
	for _, share := range e.Split {
		total += share
	}
	return total
}

// Validate checks the structural invariants of an expense.
// Member existence is checked by the calculator against the group.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: %s must be positive", money.ErrInvalidAmount, e.Amount)
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.PaidBy == "" {
		return ErrMissingPayer
	}
	if len(e.Split) == 0 {
		return ErrEmptySplit
	}
	if total := e.SplitTotal(); total != e.Amount {
		return fmt.Errorf("split sums to %s, expected %s", total, e.Amount)
	}
	return nil
}

// SplitParticipants returns the member IDs of a split in ascending order.
func SplitParticipants(split map[string]money.Money) []string {
	return slices.Sorted(maps.Keys(split))
}
