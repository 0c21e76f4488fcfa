// Package events announces ledger changes. A Bus fans SnapshotChanged events
// out to in-process subscribers and to external sinks such as AMQP.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Kind names what changed.
type Kind string

const (
	GroupCreated    Kind = "group.created"
	GroupDeleted    Kind = "group.deleted"
	MemberAdded     Kind = "member.added"
	MemberRemoved   Kind = "member.removed"
	ExpenseAdded    Kind = "expense.added"
	ExpenseUpdated  Kind = "expense.updated"
	ExpenseDeleted  Kind = "expense.deleted"
	PaymentRecorded Kind = "payment.recorded"
)

// SnapshotChanged tells subscribers that a group's snapshot is stale and
// any derived balances must be recomputed.
type SnapshotChanged struct {
	GroupID  string    `json:"group_id"`
	Kind     Kind      `json:"kind"`
	EntityID string    `json:"entity_id,omitempty"`
	At       time.Time `json:"at"`
}

// RoutingKey is the AMQP topic the event is published under, e.g.
// "ledger.expense.added".
func (e SnapshotChanged) RoutingKey() string {
	return "ledger." + string(e.Kind)
}

// ToJSON encodes the event as a message body.
func (e SnapshotChanged) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, event SnapshotChanged) error
}
