package models

import "github.com/mmynk/settleup/internal/money"

// Group owns a member set and an expense set.
// Group membership decides who takes part in balance and settlement
// computation for the group's expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// CreatedBy is the member or caller that created the group. Informational.
	CreatedBy string

	// Members is the group's member set, ordered by name.
	Members []Member

	// TotalAmount is the sum of all expense amounts.
	// Denormalized: maintained incrementally when expenses change.
	TotalAmount money.Money

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// MemberIDs returns the IDs of all members in group order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// MemberMap indexes the members by ID.
func (g *Group) MemberMap() map[string]Member {
	members := make(map[string]Member, len(g.Members))
	for _, m := range g.Members {
		members[m.ID] = m
	}
	return members
}

// Member is one participant in a group.
type Member struct {
	// ID is the member's identifier, unique within the group.
	ID string

	// Name is the display name.
	Name string

	// Paid is the cumulative amount this member has paid out in recorded settlements.
	Paid money.Money

	// Owes is the cumulative amount this member has received in recorded settlements.
	Owes money.Money
}
