package calculator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

var (
	hundred = decimal.NewFromInt(100)

	// PercentTolerance is how far percentages may drift from 100 in total.
	PercentTolerance = decimal.New(1, -2)
)

// ResolveSplit computes each participant's share of amount.
//
// For SplitEqual, values is ignored. For SplitCustom, values holds currency
// amounts; for SplitPercentage, percentages. In both cases values is
// restricted to the participants: other keys are ignored and a participant
// without a value gets a zero share.
//
// The returned shares always sum exactly to amount.
func ResolveSplit(amount money.Money, splitType models.SplitType, participants []string, values map[string]decimal.Decimal) (map[string]money.Money, error) {
	if amount <= 0 {
		return nil, &InvalidSplitError{Reason: fmt.Sprintf("amount %s must be positive", amount)}
	}

	ids := normalizeParticipants(participants)
	if len(ids) == 0 {
		return nil, &InvalidSplitError{Reason: "no participants selected"}
	}

	switch splitType {
	case models.SplitEqual:
		return equalSplit(amount, ids), nil
	case models.SplitCustom:
		return customSplit(amount, ids, values)
	case models.SplitPercentage:
		return percentageSplit(amount, ids, values)
	default:
		return nil, &InvalidSplitError{Reason: fmt.Sprintf("unknown split type %q", splitType)}
	}
}

// normalizeParticipants drops blanks and duplicates and sorts by ID.
func normalizeParticipants(participants []string) []string {
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		if p != "" {
			ids = append(ids, p)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// equalSplit gives everyone amount/n. The leftover cents go one each to
// the first participants in ID order.
func equalSplit(amount money.Money, ids []string) map[string]money.Money {
	n := money.Money(len(ids))
	base, rem := amount/n, amount%n

	shares := make(map[string]money.Money, len(ids))
	for i, id := range ids {
		share := base
		if money.Money(i) < rem {
			share += money.Cent
		}
		shares[id] = share
	}
	return shares
}

func customSplit(amount money.Money, ids []string, values map[string]decimal.Decimal) (map[string]money.Money, error) {
	shares := make(map[string]money.Money, len(ids))
	var total money.Money
	for _, id := range ids {
		v := values[id]
		if v.IsNegative() {
			return nil, &InvalidSplitError{Reason: fmt.Sprintf("negative amount %s for %q", v, id)}
		}
		share, err := money.FromDecimal(v)
		if err != nil {
			if errors.Is(err, money.ErrSubCent) {
				return nil, &InvalidSplitError{Reason: fmt.Sprintf("amount %s for %q has sub-cent precision", v, id)}
			}
			return nil, &InvalidSplitError{Reason: err.Error()}
		}
		shares[id] = share
		total += share
	}

	if total != amount {
		return nil, &SplitMismatchError{
			Expected: amount.Decimal(),
			Actual:   total.Decimal(),
			Unit:     UnitAmount,
		}
	}
	return shares, nil
}

func percentageSplit(amount money.Money, ids []string, values map[string]decimal.Decimal) (map[string]money.Money, error) {
	totalPct := decimal.Zero
	for _, id := range ids {
		pct := values[id]
		if pct.IsNegative() {
			return nil, &InvalidSplitError{Reason: fmt.Sprintf("negative percentage %s for %q", pct, id)}
		}
		totalPct = totalPct.Add(pct)
	}
	if totalPct.Sub(hundred).Abs().GreaterThan(PercentTolerance) {
		return nil, &SplitMismatchError{
			Expected: hundred,
			Actual:   totalPct,
			Unit:     UnitPercent,
		}
	}

	shares := make(map[string]money.Money, len(ids))
	var allocated money.Money
	largest := ids[0]
	for _, id := range ids {
		pct := values[id]
		share, err := money.FromDecimal(amount.Decimal().Mul(pct).Div(hundred).Round(2))
		if err != nil {
			return nil, &InvalidSplitError{Reason: err.Error()}
		}
		shares[id] = share
		allocated += share
		if pct.GreaterThan(values[largest]) {
			largest = id
		}
	}

	// Rounding residue goes to the largest share; ties go to the lowest ID.
	shares[largest] += amount - allocated
	return shares, nil
}
