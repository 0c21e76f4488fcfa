// Package receipt turns the text of a scanned receipt into a draft expense.
// Text recognition happens elsewhere; this package only reads the text.
package receipt

import (
	"errors"
	"regexp"
	"strings"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// UnknownStore is used when the receipt has no readable first line.
const UnknownStore = "Unknown Store"

// ErrEmptyText is returned for receipts with no text at all.
var ErrEmptyText = errors.New("receipt text is empty")

var (
	totalPattern  = regexp.MustCompile(`(?i)total[^\d]*(\d+[.,]\d{2})`)
	amountPattern = regexp.MustCompile(`(\d+[.,]\d{2})`)
	datePattern   = regexp.MustCompile(`(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`)
)

// Draft is what could be read off a receipt. Amount is zero when no
// amount was found; the caller fills it in before saving.
type Draft struct {
	Store       string
	Description string
	Amount      money.Money
	Date        string // as printed, e.g. "12/03/2024"
	Category    models.Category
}

// Parse reads a draft from receipt text.
//
// The store is the first non-empty line. The amount is the first value
// following the word "total"; failing that, the largest amount printed.
// The date is the first date-like token.
func Parse(text string) (Draft, error) {
	if strings.TrimSpace(text) == "" {
		return Draft{}, ErrEmptyText
	}

	store := UnknownStore
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			store = line
			break
		}
	}

	draft := Draft{
		Store:       store,
		Description: "Receipt from " + store,
		Category:    models.CategoryOther,
	}

	if m := totalPattern.FindStringSubmatch(text); m != nil {
		draft.Amount = parseAmount(m[1])
	} else {
		for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
			draft.Amount = max(draft.Amount, parseAmount(m[1]))
		}
	}

	if m := datePattern.FindStringSubmatch(text); m != nil {
		draft.Date = m[1]
	}

	return draft, nil
}

// parseAmount returns zero for anything money.Parse rejects.
func parseAmount(s string) money.Money {
	m, err := money.Parse(s)
	if err != nil {
		return 0
	}
	return m
}

// Expense builds an equally split expense from the draft.
func (d Draft) Expense(groupID, paidBy string, participants []string) (*models.Expense, error) {
	split, err := calculator.ResolveSplit(d.Amount, models.SplitEqual, participants, nil)
	if err != nil {
		return nil, err
	}
	return &models.Expense{
		GroupID:      groupID,
		Amount:       d.Amount,
		Description:  d.Description,
		Category:     d.Category,
		PaidBy:       paidBy,
		Participants: models.SplitParticipants(split),
		SplitType:    models.SplitEqual,
		Split:        split,
	}, nil
}
