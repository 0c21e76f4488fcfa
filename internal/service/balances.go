package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/pkg/api"
)

// GetBalances returns every member's balance and the transfers that would
// settle the group. Recorded payments are included.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	slog.Info("GetBalances request received", "group_id", req.Msg.GroupId)

	view, err := s.ledger(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("GetBalances failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	// Members are stored in name order, which is the display order.
	members := view.group.Members
	resp := &api.GetBalancesResponse{
		Balances:    make([]*api.Balance, 0, len(members)),
		Settlements: make([]*api.Settlement, len(view.settlements)),
	}
	for _, m := range members {
		b := view.balances[m.ID]
		resp.Balances = append(resp.Balances, &api.Balance{
			MemberId:   m.ID,
			MemberName: m.Name,
			TotalPaid:  b.TotalPaid.String(),
			TotalOwes:  b.TotalOwes.String(),
			NetBalance: b.NetBalance.String(),
		})
	}
	for i, st := range view.settlements {
		resp.Settlements[i] = settlementToAPI(st)
	}

	slog.Info("GetBalances successful",
		"group_id", req.Msg.GroupId,
		"members", len(resp.Balances),
		"settlements", len(resp.Settlements),
	)

	return connect.NewResponse(resp), nil
}

// RecordPayment records a transfer that actually happened between two members.
func (s *LedgerService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	slog.Info("RecordPayment request received",
		"group_id", req.Msg.GroupId,
		"from", req.Msg.FromMemberId,
		"to", req.Msg.ToMemberId,
		"amount", req.Msg.Amount,
	)

	amount, err := money.Parse(req.Msg.Amount)
	if err != nil {
		return nil, s.toConnectError(err)
	}
	if amount <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("payment amount must be positive"))
	}
	if req.Msg.FromMemberId == req.Msg.ToMemberId {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("payer and receiver must differ"))
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("RecordPayment failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	// Both ends must belong to the group. The store adds the amount to the
	// totals itself, inside its transaction.
	transfer := calculator.Settlement{From: req.Msg.FromMemberId, To: req.Msg.ToMemberId, Amount: amount}
	if _, err := calculator.RecordSettlements(group.MemberMap(), []calculator.Settlement{transfer}); err != nil {
		slog.Warn("RecordPayment member rejected", "group_id", group.ID, "error", err)
		return nil, s.toConnectError(err)
	}

	payment := &models.Payment{
		GroupID: group.ID,
		From:    transfer.From,
		To:      transfer.To,
		Amount:  amount,
		Note:    req.Msg.Note,
	}
	if err := s.store.RecordPayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "group_id", group.ID, "error", err)
		return nil, s.toConnectError(err)
	}

	slog.Info("Payment recorded", "group_id", group.ID, "payment_id", payment.ID, "amount", amount)
	s.changed(ctx, events.PaymentRecorded, group.ID, payment.ID)

	return connect.NewResponse(&api.RecordPaymentResponse{Payment: paymentToAPI(payment)}), nil
}

// ListPayments returns a group's recorded payments, newest first.
func (s *LedgerService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	slog.Info("ListPayments request received", "group_id", req.Msg.GroupId)

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("ListPayments failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	payments, err := s.store.ListPayments(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("ListPayments failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	resp := &api.ListPaymentsResponse{Payments: make([]*api.Payment, len(payments))}
	for i, p := range payments {
		resp.Payments[i] = paymentToAPI(p)
	}
	return connect.NewResponse(resp), nil
}

// GetSummary totals a group's spending by category and ranks members by share.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	slog.Info("GetSummary request received", "group_id", req.Msg.GroupId, "top", req.Msg.Top)

	snap, err := s.store.GetSnapshot(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("GetSummary failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	summary := calculator.Summarize(snap.Expenses, snap.Group.MemberMap(), int(req.Msg.Top))

	resp := &api.GetSummaryResponse{
		Total:        summary.Total.String(),
		ExpenseCount: int32(summary.ExpenseCount),
		ByCategory:   make([]*api.CategoryTotal, len(summary.ByCategory)),
		TopSpenders:  make([]*api.MemberShare, len(summary.TopSpenders)),
	}
	for i, c := range summary.ByCategory {
		resp.ByCategory[i] = &api.CategoryTotal{Category: string(c.Category), Total: c.Total.String()}
	}
	for i, m := range summary.TopSpenders {
		resp.TopSpenders[i] = &api.MemberShare{MemberId: m.MemberID, Name: m.Name, Total: m.Total.String()}
	}
	return connect.NewResponse(resp), nil
}
