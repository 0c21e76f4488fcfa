package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

type testEnv struct {
	client  apiconnect.LedgerServiceClient
	svc     *LedgerService
	bus     *events.Bus
	metrics *metrics.Metrics
}

// setupTestServer serves a LedgerService backed by a temp database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "settleup-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	bus := events.NewBus(64)
	t.Cleanup(bus.Close)
	m := metrics.New()

	svc := NewLedgerService(store, WithEventBus(bus), WithMetrics(m))
	path, handler := apiconnect.NewLedgerServiceHandler(svc, connect.WithInterceptors(m.Interceptor()))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		client:  apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		svc:     svc,
		bus:     bus,
		metrics: m,
	}
}

// createTrip creates a group of Alice, Bob and Carol and returns it with
// a name to ID lookup.
func createTrip(t *testing.T, client apiconnect.LedgerServiceClient) (*api.Group, map[string]string) {
	t.Helper()

	resp, err := client.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Ski Trip",
		Members: []string{"Carol", "Alice", "Bob"},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	ids := make(map[string]string)
	for _, m := range resp.Msg.Group.Members {
		ids[m.Name] = m.Id
	}
	return resp.Msg.Group, ids
}

func addEqualExpense(t *testing.T, client apiconnect.LedgerServiceClient, groupID, amount, payer string, participants ...string) *api.Expense {
	t.Helper()

	resp, err := client.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		GroupId:      groupID,
		Amount:       amount,
		Description:  "Expense of " + amount,
		PaidBy:       payer,
		Participants: participants,
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %v, got %v (%v)", want, got, err)
	}
}

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)

	group, ids := createTrip(t, env.client)

	if group.Id == "" {
		t.Error("expected group ID to be generated")
	}
	if group.Name != "Ski Trip" {
		t.Errorf("expected name 'Ski Trip', got %s", group.Name)
	}
	if len(group.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(group.Members))
	}
	if group.Members[0].Name != "Alice" || group.Members[2].Name != "Carol" {
		t.Errorf("expected members in name order, got %v", group.Members)
	}
	for name, id := range ids {
		if id == "" {
			t.Errorf("expected ID for member %s", name)
		}
	}
	if group.TotalAmount != "0.00" {
		t.Errorf("expected total 0.00, got %s", group.TotalAmount)
	}
}

func TestCreateGroup_EmptyName(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.client.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: "  "}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestGetGroup_NotFound(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.client.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupId: "missing"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.client.GetBalances(context.Background(), connect.NewRequest(&api.GetBalancesRequest{GroupId: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListAndDeleteGroups(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	group, ids := createTrip(t, env.client)
	addEqualExpense(t, env.client, group.Id, "30", ids["Alice"], ids["Alice"], ids["Bob"])

	list, err := env.client.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(list.Msg.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(list.Msg.Groups))
	}
	if list.Msg.Groups[0].TotalAmount != "30.00" {
		t.Errorf("expected total 30.00, got %s", list.Msg.Groups[0].TotalAmount)
	}

	if _, err := env.client.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupId: group.Id})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	_, err = env.client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: group.Id}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.client.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupId: group.Id}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetBalances_EqualSplit(t *testing.T) {
	env := setupTestServer(t)

	group, ids := createTrip(t, env.client)
	alice, bob, carol := ids["Alice"], ids["Bob"], ids["Carol"]
	addEqualExpense(t, env.client, group.Id, "90.00", alice, alice, bob, carol)

	resp, err := env.client.GetBalances(context.Background(), connect.NewRequest(&api.GetBalancesRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}

	want := map[string]string{"Alice": "60.00", "Bob": "-30.00", "Carol": "-30.00"}
	if len(resp.Msg.Balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(resp.Msg.Balances))
	}
	for _, b := range resp.Msg.Balances {
		if b.NetBalance != want[b.MemberName] {
			t.Errorf("%s: expected net %s, got %s", b.MemberName, want[b.MemberName], b.NetBalance)
		}
	}

	if len(resp.Msg.Settlements) != 2 {
		t.Fatalf("expected 2 settlements, got %d", len(resp.Msg.Settlements))
	}
	first, second := resp.Msg.Settlements[0], resp.Msg.Settlements[1]
	if first.ToMemberId != alice || second.ToMemberId != alice {
		t.Errorf("expected both transfers to Alice, got %v and %v", first, second)
	}
	if first.Amount != "30.00" || second.Amount != "30.00" {
		t.Errorf("expected 30.00 transfers, got %s and %s", first.Amount, second.Amount)
	}
	if first.ToName != "Alice" || first.FromName == "" {
		t.Errorf("expected member names on settlements, got %+v", first)
	}
}

func TestAddExpense_CustomMismatch(t *testing.T) {
	env := setupTestServer(t)

	group, ids := createTrip(t, env.client)
	_, err := env.client.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		GroupId:      group.Id,
		Amount:       "100",
		Description:  "Groceries",
		PaidBy:       ids["Alice"],
		Participants: []string{ids["Alice"], ids["Bob"]},
		SplitType:    "CUSTOM",
		Values:       map[string]string{ids["Alice"]: "50", ids["Bob"]: "40"},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	n, err := testutil.GatherAndCount(env.metrics.Registry(), "settleup_ledger_errors_total")
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected one ledger error series, got %d", n)
	}
}

func TestAddExpense_Percentage(t *testing.T) {
	env := setupTestServer(t)

	group, ids := createTrip(t, env.client)
	alice, bob, carol := ids["Alice"], ids["Bob"], ids["Carol"]
	resp, err := env.client.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		GroupId:      group.Id,
		Amount:       "200.00",
		Description:  "Cabin",
		Category:     "accommodation",
		PaidBy:       bob,
		Participants: []string{alice, bob, carol},
		SplitType:    "PERCENTAGE",
		Values:       map[string]string{alice: "50", bob: "30", carol: "20"},
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	want := map[string]string{alice: "100.00", bob: "60.00", carol: "40.00"}
	for id, share := range want {
		if got := resp.Msg.Expense.Split[id]; got != share {
			t.Errorf("share of %s: expected %s, got %s", id, share, got)
		}
	}
	if resp.Msg.Expense.SplitType != "PERCENTAGE" {
		t.Errorf("expected PERCENTAGE, got %s", resp.Msg.Expense.SplitType)
	}
}

func TestAddExpense_UnknownMember(t *testing.T) {
	env := setupTestServer(t)

	group, ids := createTrip(t, env.client)
	ctx := context.Background()

	_, err := env.client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
		GroupId:      group.Id,
		Amount:       "10",
		Description:  "Taxi",
		PaidBy:       "stranger",
		Participants: []string{ids["Alice"]},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
		GroupId:      group.Id,
		Amount:       "10",
		Description:  "Taxi",
		PaidBy:       ids["Alice"],
		Participants: []string{ids["Alice"], "stranger"},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
		GroupId:      "missing",
		Amount:       "10",
		Description:  "Taxi",
		PaidBy:       ids["Alice"],
		Participants: []string{ids["Alice"]},
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestAddExpense_InvalidInput(t *testing.T) {
	env := setupTestServer(t)

	group, ids := createTrip(t, env.client)
	tests := []struct {
		name string
		req  *api.AddExpenseRequest
	}{
		{"bad amount", &api.AddExpenseRequest{Amount: "ten", Description: "x", PaidBy: ids["Alice"], Participants: []string{ids["Alice"]}}},
		{"zero amount", &api.AddExpenseRequest{Amount: "0", Description: "x", PaidBy: ids["Alice"], Participants: []string{ids["Alice"]}}},
		{"no participants", &api.AddExpenseRequest{Amount: "10", Description: "x", PaidBy: ids["Alice"]}},
		{"bad split type", &api.AddExpenseRequest{Amount: "10", Description: "x", PaidBy: ids["Alice"], Participants: []string{ids["Alice"]}, SplitType: "SHARES"}},
		{"bad value", &api.AddExpenseRequest{Amount: "10", Description: "x", PaidBy: ids["Alice"], Participants: []string{ids["Alice"]}, SplitType: "CUSTOM", Values: map[string]string{ids["Alice"]: "lots"}}},
		{"no description", &api.AddExpenseRequest{Amount: "10", PaidBy: ids["Alice"], Participants: []string{ids["Alice"]}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.GroupId = group.Id
			_, err := env.client.AddExpense(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestUpdateExpense(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	group, ids := createTrip(t, env.client)
	alice, bob, carol := ids["Alice"], ids["Bob"], ids["Carol"]
	expense := addEqualExpense(t, env.client, group.Id, "60", alice, alice, bob)

	description := "Dinner"
	amount := "90"
	resp, err := env.client.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ExpenseId:    expense.Id,
		Description:  &description,
		Amount:       &amount,
		Participants: []string{alice, bob, carol},
	}))
	if err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	if resp.Msg.Expense.Description != "Dinner" {
		t.Errorf("expected description Dinner, got %s", resp.Msg.Expense.Description)
	}
	if len(resp.Msg.Expense.Split) != 3 || resp.Msg.Expense.Split[carol] != "30.00" {
		t.Errorf("expected 30.00 each for three members, got %v", resp.Msg.Expense.Split)
	}

	g, err := env.client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if g.Msg.Group.TotalAmount != "90.00" {
		t.Errorf("expected group total 90.00, got %s", g.Msg.Group.TotalAmount)
	}

	balances, err := env.client.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	for _, b := range balances.Msg.Balances {
		if b.MemberId == alice && b.NetBalance != "60.00" {
			t.Errorf("expected Alice net 60.00 after update, got %s", b.NetBalance)
		}
	}
}

func TestUpdateExpense_CustomKeepsShares(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	group, ids := createTrip(t, env.client)
	alice, bob := ids["Alice"], ids["Bob"]
	created, err := env.client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
		GroupId:      group.Id,
		Amount:       "50",
		Description:  "Fuel",
		PaidBy:       alice,
		Participants: []string{alice, bob},
		SplitType:    "CUSTOM",
		Values:       map[string]string{alice: "20", bob: "30"},
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	// Changing only the payer keeps the stored shares.
	payer := bob
	resp, err := env.client.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ExpenseId: created.Msg.Expense.Id,
		PaidBy:    &payer,
	}))
	if err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	if resp.Msg.Expense.PaidBy != bob || resp.Msg.Expense.Split[bob] != "30.00" {
		t.Errorf("unexpected expense after payer change: %+v", resp.Msg.Expense)
	}

	// Changing the amount alone no longer matches the custom shares.
	amount := "60"
	_, err = env.client.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ExpenseId: created.Msg.Expense.Id,
		Amount:    &amount,
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	stranger := "stranger"
	_, err = env.client.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ExpenseId: created.Msg.Expense.Id,
		PaidBy:    &stranger,
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.client.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{ExpenseId: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteAndListExpenses(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	group, ids := createTrip(t, env.client)
	first := addEqualExpense(t, env.client, group.Id, "10", ids["Alice"], ids["Alice"], ids["Bob"])
	addEqualExpense(t, env.client, group.Id, "20", ids["Bob"], ids["Alice"], ids["Bob"])

	list, err := env.client.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(list.Msg.Expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(list.Msg.Expenses))
	}

	if _, err := env.client.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseId: first.Id})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	_, err = env.client.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseId: first.Id}))
	assertCode(t, err, connect.CodeNotFound)

	list, err = env.client.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(list.Msg.Expenses) != 1 || list.Msg.Expenses[0].Amount != "20.00" {
		t.Errorf("expected only the 20.00 expense, got %v", list.Msg.Expenses)
	}

	_, err = env.client.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupId: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestResolveSplit(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.ResolveSplit(context.Background(), connect.NewRequest(&api.ResolveSplitRequest{
		Amount:       "100.00",
		Participants: []string{"c", "a", "b"},
	}))
	if err != nil {
		t.Fatalf("ResolveSplit failed: %v", err)
	}
	want := map[string]string{"a": "33.34", "b": "33.33", "c": "33.33"}
	for id, share := range want {
		if got := resp.Msg.Split[id]; got != share {
			t.Errorf("share of %s: expected %s, got %s", id, share, got)
		}
	}

	_, err = env.client.ResolveSplit(context.Background(), connect.NewRequest(&api.ResolveSplitRequest{
		Amount:       "100",
		SplitType:    "PERCENTAGE",
		Participants: []string{"a", "b"},
		Values:       map[string]string{"a": "60", "b": "30"},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestRecordPayment(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	group, ids := createTrip(t, env.client)
	alice, bob, carol := ids["Alice"], ids["Bob"], ids["Carol"]
	addEqualExpense(t, env.client, group.Id, "90", alice, alice, bob, carol)

	paid, err := env.client.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		GroupId:      group.Id,
		FromMemberId: bob,
		ToMemberId:   alice,
		Amount:       "30",
		Note:         "cash",
	}))
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if paid.Msg.Payment.Id == "" || paid.Msg.Payment.Amount != "30.00" {
		t.Errorf("unexpected payment: %+v", paid.Msg.Payment)
	}

	resp, err := env.client.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if len(resp.Msg.Settlements) != 1 {
		t.Fatalf("expected 1 settlement after payment, got %d", len(resp.Msg.Settlements))
	}
	if s := resp.Msg.Settlements[0]; s.FromMemberId != carol || s.ToMemberId != alice || s.Amount != "30.00" {
		t.Errorf("expected Carol to pay Alice 30.00, got %+v", s)
	}
	for _, b := range resp.Msg.Balances {
		if b.MemberId == bob && b.NetBalance != "0.00" {
			t.Errorf("expected Bob settled, got %s", b.NetBalance)
		}
	}

	g, err := env.client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	for _, m := range g.Msg.Group.Members {
		switch m.Id {
		case bob:
			if m.Paid != "30.00" {
				t.Errorf("expected Bob paid 30.00, got %s", m.Paid)
			}
		case alice:
			if m.Owes != "30.00" {
				t.Errorf("expected Alice received 30.00, got %s", m.Owes)
			}
		}
	}

	payments, err := env.client.ListPayments(ctx, connect.NewRequest(&api.ListPaymentsRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(payments.Msg.Payments) != 1 || payments.Msg.Payments[0].Note != "cash" {
		t.Errorf("expected the cash payment, got %v", payments.Msg.Payments)
	}
}

func TestRecordPayment_Concurrent(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	group, ids := createTrip(t, env.client)
	alice, bob := ids["Alice"], ids["Bob"]

	const payments = 20
	var wg sync.WaitGroup
	errs := make(chan error, payments)
	for range payments {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.client.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
				GroupId:      group.Id,
				FromMemberId: bob,
				ToMemberId:   alice,
				Amount:       "1",
			}))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
	}

	list, err := env.client.ListPayments(ctx, connect.NewRequest(&api.ListPaymentsRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(list.Msg.Payments) != payments {
		t.Fatalf("expected %d payments, got %d", payments, len(list.Msg.Payments))
	}

	g, err := env.client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	for _, m := range g.Msg.Group.Members {
		switch m.Id {
		case bob:
			if m.Paid != "20.00" {
				t.Errorf("expected Bob paid 20.00 after %d payments, got %s", payments, m.Paid)
			}
		case alice:
			if m.Owes != "20.00" {
				t.Errorf("expected Alice received 20.00 after %d payments, got %s", payments, m.Owes)
			}
		}
	}
}

func TestRecordPayment_Invalid(t *testing.T) {
	env := setupTestServer(t)

	group, ids := createTrip(t, env.client)
	alice, bob := ids["Alice"], ids["Bob"]
	tests := []struct {
		name     string
		req      *api.RecordPaymentRequest
		wantCode connect.Code
	}{
		{"zero amount", &api.RecordPaymentRequest{GroupId: group.Id, FromMemberId: bob, ToMemberId: alice, Amount: "0"}, connect.CodeInvalidArgument},
		{"same member", &api.RecordPaymentRequest{GroupId: group.Id, FromMemberId: bob, ToMemberId: bob, Amount: "5"}, connect.CodeInvalidArgument},
		{"unknown member", &api.RecordPaymentRequest{GroupId: group.Id, FromMemberId: "stranger", ToMemberId: alice, Amount: "5"}, connect.CodeInvalidArgument},
		{"unknown group", &api.RecordPaymentRequest{GroupId: "missing", FromMemberId: bob, ToMemberId: alice, Amount: "5"}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.RecordPayment(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, tt.wantCode)
		})
	}
}

func TestMembers(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	group, ids := createTrip(t, env.client)
	added, err := env.client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{
		GroupId:  group.Id,
		MemberId: "dave",
		Name:     "Dave",
	}))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if added.Msg.Member.Id != "dave" {
		t.Errorf("expected member ID dave, got %s", added.Msg.Member.Id)
	}

	_, err = env.client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{GroupId: group.Id, Name: ""}))
	assertCode(t, err, connect.CodeInvalidArgument)

	addEqualExpense(t, env.client, group.Id, "20", ids["Alice"], ids["Alice"], "dave")

	_, err = env.client.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupId: group.Id, MemberId: "dave"}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	if _, err := env.client.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupId: group.Id, MemberId: ids["Carol"]})); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	_, err = env.client.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupId: group.Id, MemberId: ids["Carol"]}))
	assertCode(t, err, connect.CodeNotFound)

	resp, err := env.client.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if len(resp.Msg.Balances) != 3 {
		t.Errorf("expected Alice, Bob and Dave, got %d balances", len(resp.Msg.Balances))
	}
}

func TestGetSummary(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	group, ids := createTrip(t, env.client)
	alice, bob, carol := ids["Alice"], ids["Bob"], ids["Carol"]
	for _, req := range []*api.AddExpenseRequest{
		{Amount: "60", Description: "Dinner", Category: "food", PaidBy: alice, Participants: []string{alice, bob, carol}},
		{Amount: "30", Description: "Taxi", Category: "transport", PaidBy: bob, Participants: []string{carol}},
	} {
		req.GroupId = group.Id
		if _, err := env.client.AddExpense(ctx, connect.NewRequest(req)); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
	}

	resp, err := env.client.GetSummary(ctx, connect.NewRequest(&api.GetSummaryRequest{GroupId: group.Id, Top: 1}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if resp.Msg.Total != "90.00" || resp.Msg.ExpenseCount != 2 {
		t.Errorf("expected total 90.00 over 2 expenses, got %s over %d", resp.Msg.Total, resp.Msg.ExpenseCount)
	}
	if len(resp.Msg.ByCategory) != 2 || resp.Msg.ByCategory[0].Category != "food" {
		t.Errorf("expected food first, got %v", resp.Msg.ByCategory)
	}
	if len(resp.Msg.TopSpenders) != 1 {
		t.Fatalf("expected 1 top spender, got %d", len(resp.Msg.TopSpenders))
	}
	if top := resp.Msg.TopSpenders[0]; top.MemberId != carol || top.Total != "50.00" {
		t.Errorf("expected Carol with 50.00, got %+v", top)
	}
}

func TestParseReceipt(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.ParseReceipt(context.Background(), connect.NewRequest(&api.ParseReceiptRequest{
		Text: "Corner Cafe\n02/05/2024\nLatte 4.50\nTOTAL 9.00\n",
	}))
	if err != nil {
		t.Fatalf("ParseReceipt failed: %v", err)
	}
	if resp.Msg.Draft.Store != "Corner Cafe" || resp.Msg.Draft.Amount != "9.00" {
		t.Errorf("unexpected draft: %+v", resp.Msg.Draft)
	}

	_, err = env.client.ParseReceipt(context.Background(), connect.NewRequest(&api.ParseReceiptRequest{Text: "  "}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestEvents(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	ch, unsubscribe := env.bus.Subscribe()
	defer unsubscribe()

	group, ids := createTrip(t, env.client)
	expense := addEqualExpense(t, env.client, group.Id, "10", ids["Alice"], ids["Alice"], ids["Bob"])
	if _, err := env.client.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseId: expense.Id})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	want := []events.Kind{events.GroupCreated, events.ExpenseAdded, events.ExpenseDeleted}
	for i, kind := range want {
		select {
		case ev := <-ch:
			if ev.Kind != kind || ev.GroupID != group.Id {
				t.Errorf("event %d: expected %s for %s, got %s for %s", i, kind, group.Id, ev.Kind, ev.GroupID)
			}
			if ev.At.IsZero() {
				t.Errorf("event %d: expected a timestamp", i)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", kind)
		}
	}
}

func TestGetBalances_CachedUntilWrite(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	group, ids := createTrip(t, env.client)
	addEqualExpense(t, env.client, group.Id, "30", ids["Alice"], ids["Alice"], ids["Bob"], ids["Carol"])

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.client.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupId: group.Id}))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("GetBalances failed: %v", err)
		}
	}

	env.svc.mu.Lock()
	_, cached := env.svc.views[group.Id]
	env.svc.mu.Unlock()
	if !cached {
		t.Fatal("expected a cached view after GetBalances")
	}

	addEqualExpense(t, env.client, group.Id, "30", ids["Bob"], ids["Alice"], ids["Bob"], ids["Carol"])

	env.svc.mu.Lock()
	_, cached = env.svc.views[group.Id]
	env.svc.mu.Unlock()
	if cached {
		t.Fatal("expected the write to drop the cached view")
	}

	resp, err := env.client.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	for _, b := range resp.Msg.Balances {
		if b.MemberId == ids["Carol"] && b.NetBalance != "-20.00" {
			t.Errorf("expected Carol -20.00 after second expense, got %s", b.NetBalance)
		}
	}

	n, err := testutil.GatherAndCount(env.metrics.Registry(), "settleup_rpc_requests_total")
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if n == 0 {
		t.Error("expected RPC request metrics")
	}
}
