package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

var errInvalidPayment = errors.New("invalid payment")

// ledgerFile is the on-disk format read by "settle plan".
//
//	{
//	  "name": "Ski Trip",
//	  "members": [{"id": "alice", "name": "Alice"}, {"id": "bob", "name": "Bob"}],
//	  "expenses": [{"description": "Cabin", "amount": "200.00", "paidBy": "alice",
//	                "participants": ["alice", "bob"], "splitType": "PERCENTAGE",
//	                "values": {"alice": "60", "bob": "40"}}],
//	  "payments": [{"from": "bob", "to": "alice", "amount": "20"}]
//	}
type ledgerFile struct {
	Name     string          `json:"name"`
	Members  []ledgerMember  `json:"members"`
	Expenses []ledgerExpense `json:"expenses"`
	Payments []ledgerPayment `json:"payments"`
}

type ledgerMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ledgerExpense struct {
	ID           string                     `json:"id"`
	Description  string                     `json:"description"`
	Category     string                     `json:"category"`
	Amount       money.Money                `json:"amount"`
	PaidBy       string                     `json:"paidBy"`
	Participants []string                   `json:"participants"`
	SplitType    string                     `json:"splitType"`
	Values       map[string]decimal.Decimal `json:"values"`
}

type ledgerPayment struct {
	From   string      `json:"from"`
	To     string      `json:"to"`
	Amount money.Money `json:"amount"`
	Note   string      `json:"note"`
}

// ledger is a ledger file with every split resolved.
type ledger struct {
	name     string
	members  []models.Member
	expenses []models.Expense
	payments []models.Payment
}

func loadLedger(path string) (*ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var file ledgerFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse ledger %s: %w", path, err)
	}
	return file.resolve()
}

func (f *ledgerFile) resolve() (*ledger, error) {
	l := &ledger{name: f.Name}
	for _, m := range f.Members {
		if m.ID == "" {
			return nil, fmt.Errorf("member %q has no id", m.Name)
		}
		l.members = append(l.members, models.Member{ID: m.ID, Name: m.Name})
	}

	for i, e := range f.Expenses {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
		}

		splitType, err := models.ParseSplitType(e.SplitType)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", id, err)
		}
		split, err := calculator.ResolveSplit(e.Amount, splitType, e.Participants, e.Values)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", id, err)
		}

		l.expenses = append(l.expenses, models.Expense{
			ID:           id,
			Amount:       e.Amount,
			Description:  e.Description,
			Category:     models.ParseCategory(e.Category),
			PaidBy:       e.PaidBy,
			Participants: models.SplitParticipants(split),
			SplitType:    splitType,
			Split:        split,
		})
	}

	for i, p := range f.Payments {
		if p.Amount <= 0 {
			return nil, fmt.Errorf("payment #%d: %w: amount must be positive", i+1, errInvalidPayment)
		}
		if p.From == p.To {
			return nil, fmt.Errorf("payment #%d: %w: payer and receiver must differ", i+1, errInvalidPayment)
		}
		l.payments = append(l.payments, models.Payment{From: p.From, To: p.To, Amount: p.Amount, Note: p.Note})
	}
	return l, nil
}

func (l *ledger) memberIDs() []string {
	ids := make([]string, len(l.members))
	for i, m := range l.members {
		ids[i] = m.ID
	}
	return ids
}

func (l *ledger) memberMap() map[string]models.Member {
	members := make(map[string]models.Member, len(l.members))
	for _, m := range l.members {
		members[m.ID] = m
	}
	return members
}
