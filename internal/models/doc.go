// Package models defines the core domain models for settleup.
//
// # Models
//
//   - Group: a container owning a member set and an expense set
//   - Member: one participant in a group
//   - Expense: an atomic shared cost with a payer and a per-participant split
//   - Payment: a realized transfer between two members, recorded after the fact
//
// Derived values (balances, planned settlements) live in the calculator
// package; nothing here is computed.
//
// # Design Principles
//
//  1. Money is always money.Money (integer minor units), never float64
//  2. Relationships are ID strings, not pointers
//  3. Models are plain values; snapshots are copied, never shared
package models
