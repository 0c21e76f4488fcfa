package service

import (
	"context"
	"log/slog"
	"maps"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

// AddExpense resolves the split and saves a new expense.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"group_id", req.Msg.GroupId,
		"amount", req.Msg.Amount,
		"split_type", req.Msg.SplitType,
		"participants_count", len(req.Msg.Participants),
	)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("AddExpense failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	amount, splitType, values, err := parseSplitInput(req.Msg.Amount, req.Msg.SplitType, req.Msg.Values)
	if err != nil {
		return nil, s.toConnectError(err)
	}

	split, err := calculator.ResolveSplit(amount, splitType, req.Msg.Participants, values)
	if err != nil {
		slog.Warn("AddExpense split rejected", "group_id", group.ID, "error", err)
		return nil, s.toConnectError(err)
	}

	expense := &models.Expense{
		GroupID:      group.ID,
		Amount:       amount,
		Description:  req.Msg.Description,
		Category:     models.ParseCategory(req.Msg.Category),
		PaidBy:       req.Msg.PaidBy,
		Participants: models.SplitParticipants(split),
		SplitType:    splitType,
		Split:        split,
	}
	if err := checkMembership(group, expense); err != nil {
		slog.Warn("AddExpense member rejected", "group_id", group.ID, "error", err)
		return nil, s.toConnectError(err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "group_id", group.ID, "error", err)
		return nil, s.toConnectError(err)
	}

	slog.Info("Expense added", "group_id", group.ID, "expense_id", expense.ID, "amount", expense.Amount)
	s.changed(ctx, events.ExpenseAdded, group.ID, expense.ID)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// UpdateExpense applies a partial edit. Changing the amount, participants,
// split type or values re-resolves and replaces the whole split.
func (s *LedgerService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	slog.Info("UpdateExpense request received", "expense_id", req.Msg.ExpenseId)

	existing, err := s.store.GetExpense(ctx, req.Msg.ExpenseId)
	if err != nil {
		slog.Error("UpdateExpense failed", "expense_id", req.Msg.ExpenseId, "error", err)
		return nil, s.toConnectError(err)
	}
	group, err := s.store.GetGroup(ctx, existing.GroupID)
	if err != nil {
		return nil, s.toConnectError(err)
	}

	patch, err := buildPatch(existing, req.Msg)
	if err != nil {
		slog.Warn("UpdateExpense rejected", "expense_id", existing.ID, "error", err)
		return nil, s.toConnectError(err)
	}
	if patch.IsEmpty() {
		return connect.NewResponse(&api.UpdateExpenseResponse{Expense: expenseToAPI(existing)}), nil
	}

	// Check the edited expense against the group before writing.
	preview := *existing
	preview.Split = maps.Clone(existing.Split)
	if err := patch.Apply(&preview); err != nil {
		return nil, s.toConnectError(err)
	}
	if err := checkMembership(group, &preview); err != nil {
		slog.Warn("UpdateExpense member rejected", "expense_id", existing.ID, "error", err)
		return nil, s.toConnectError(err)
	}

	updated, err := s.store.UpdateExpense(ctx, existing.ID, patch)
	if err != nil {
		slog.Error("UpdateExpense failed", "expense_id", existing.ID, "error", err)
		return nil, s.toConnectError(err)
	}

	slog.Info("Expense updated", "group_id", updated.GroupID, "expense_id", updated.ID)
	s.changed(ctx, events.ExpenseUpdated, updated.GroupID, updated.ID)

	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: expenseToAPI(updated)}), nil
}

// DeleteExpense removes an expense.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseId)

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseId)
	if err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseId, "error", err)
		return nil, s.toConnectError(err)
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, s.toConnectError(err)
	}

	slog.Info("Expense deleted", "group_id", expense.GroupID, "expense_id", expense.ID)
	s.changed(ctx, events.ExpenseDeleted, expense.GroupID, expense.ID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpenses returns a group's expenses, newest first.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupId)

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	expenses, err := s.store.ListExpenses(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	resp := &api.ListExpensesResponse{Expenses: make([]*api.Expense, len(expenses))}
	for i, e := range expenses {
		resp.Expenses[i] = expenseToAPI(e)
	}

	slog.Info("ListExpenses successful", "group_id", req.Msg.GroupId, "count", len(expenses))

	return connect.NewResponse(resp), nil
}

// ResolveSplit previews a split without saving anything.
func (s *LedgerService) ResolveSplit(ctx context.Context, req *connect.Request[api.ResolveSplitRequest]) (*connect.Response[api.ResolveSplitResponse], error) {
	slog.Info("ResolveSplit request received",
		"amount", req.Msg.Amount,
		"split_type", req.Msg.SplitType,
		"participants_count", len(req.Msg.Participants),
	)

	amount, splitType, values, err := parseSplitInput(req.Msg.Amount, req.Msg.SplitType, req.Msg.Values)
	if err != nil {
		return nil, s.toConnectError(err)
	}

	split, err := calculator.ResolveSplit(amount, splitType, req.Msg.Participants, values)
	if err != nil {
		return nil, s.toConnectError(err)
	}

	return connect.NewResponse(&api.ResolveSplitResponse{Split: splitToAPI(split)}), nil
}

// parseSplitInput converts the wire form of an amount, split type and
// per-member values.
func parseSplitInput(rawAmount, rawType string, rawValues map[string]string) (money.Money, models.SplitType, map[string]decimal.Decimal, error) {
	amount, err := money.Parse(rawAmount)
	if err != nil {
		return 0, "", nil, err
	}

	splitType, err := models.ParseSplitType(rawType)
	if err != nil {
		return 0, "", nil, &calculator.InvalidSplitError{Reason: err.Error()}
	}

	values, err := parseValues(rawValues)
	if err != nil {
		return 0, "", nil, err
	}
	return amount, splitType, values, nil
}

func parseValues(raw map[string]string) (map[string]decimal.Decimal, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	values := make(map[string]decimal.Decimal, len(raw))
	for id, s := range raw {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, &calculator.InvalidSplitError{Reason: "value for " + id + " is not a number: " + s}
		}
		values[id] = d
	}
	return values, nil
}

// buildPatch turns an update request into a storage patch, re-resolving the
// split when any of its inputs change. Values default to the current custom
// amounts; percentages are not stored, so a PERCENTAGE re-split needs values.
func buildPatch(existing *models.Expense, req *api.UpdateExpenseRequest) (storage.ExpensePatch, error) {
	var patch storage.ExpensePatch
	if req.Description != nil {
		patch.Description = req.Description
	}
	if req.Category != nil {
		category := models.ParseCategory(*req.Category)
		patch.Category = &category
	}
	if req.PaidBy != nil {
		patch.PaidBy = req.PaidBy
	}

	if req.Amount == nil && req.Participants == nil && req.SplitType == nil && req.Values == nil {
		return patch, nil
	}

	amount := existing.Amount
	if req.Amount != nil {
		parsed, err := money.Parse(*req.Amount)
		if err != nil {
			return patch, err
		}
		amount = parsed
	}

	splitType := existing.SplitType
	if req.SplitType != nil {
		parsed, err := models.ParseSplitType(*req.SplitType)
		if err != nil {
			return patch, &calculator.InvalidSplitError{Reason: err.Error()}
		}
		splitType = parsed
	}

	participants := existing.Participants
	if req.Participants != nil {
		participants = req.Participants
	}

	values, err := parseValues(req.Values)
	if err != nil {
		return patch, err
	}
	if values == nil && splitType == models.SplitCustom && existing.SplitType == models.SplitCustom {
		values = make(map[string]decimal.Decimal, len(existing.Split))
		for id, share := range existing.Split {
			values[id] = share.Decimal()
		}
	}

	split, err := calculator.ResolveSplit(amount, splitType, participants, values)
	if err != nil {
		return patch, err
	}

	patch.Amount = &amount
	patch.SplitType = &splitType
	patch.Split = split
	return patch, nil
}

// checkMembership rejects payers and participants outside the group.
func checkMembership(group *models.Group, expense *models.Expense) error {
	_, err := calculator.ComputeBalances(group.MemberIDs(), []models.Expense{*expense})
	return err
}
