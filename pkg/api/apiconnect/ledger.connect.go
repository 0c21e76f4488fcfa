// Package apiconnect wires the settleup.v1.LedgerService messages to Connect
// handlers and clients. Messages travel as JSON; see Codec.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "settleup.v1.LedgerService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	LedgerServiceCreateGroupProcedure   = "/settleup.v1.LedgerService/CreateGroup"
	LedgerServiceGetGroupProcedure      = "/settleup.v1.LedgerService/GetGroup"
	LedgerServiceListGroupsProcedure    = "/settleup.v1.LedgerService/ListGroups"
	LedgerServiceDeleteGroupProcedure   = "/settleup.v1.LedgerService/DeleteGroup"
	LedgerServiceAddMemberProcedure     = "/settleup.v1.LedgerService/AddMember"
	LedgerServiceRemoveMemberProcedure  = "/settleup.v1.LedgerService/RemoveMember"
	LedgerServiceAddExpenseProcedure    = "/settleup.v1.LedgerService/AddExpense"
	LedgerServiceUpdateExpenseProcedure = "/settleup.v1.LedgerService/UpdateExpense"
	LedgerServiceDeleteExpenseProcedure = "/settleup.v1.LedgerService/DeleteExpense"
	LedgerServiceListExpensesProcedure  = "/settleup.v1.LedgerService/ListExpenses"
	LedgerServiceResolveSplitProcedure  = "/settleup.v1.LedgerService/ResolveSplit"
	LedgerServiceGetBalancesProcedure   = "/settleup.v1.LedgerService/GetBalances"
	LedgerServiceRecordPaymentProcedure = "/settleup.v1.LedgerService/RecordPayment"
	LedgerServiceListPaymentsProcedure  = "/settleup.v1.LedgerService/ListPayments"
	LedgerServiceGetSummaryProcedure    = "/settleup.v1.LedgerService/GetSummary"
	LedgerServiceParseReceiptProcedure  = "/settleup.v1.LedgerService/ParseReceipt"
)

// LedgerServiceClient is a client for the settleup.v1.LedgerService service.
type LedgerServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	ResolveSplit(context.Context, *connect.Request[api.ResolveSplitRequest]) (*connect.Response[api.ResolveSplitResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	ParseReceipt(context.Context, *connect.Request[api.ParseReceiptRequest]) (*connect.Response[api.ParseReceiptResponse], error)
}

// NewLedgerServiceClient constructs a client for the settleup.v1.LedgerService service.
// Requests are sent as JSON with the Connect protocol by default.
//
// The URL supplied here should be the base URL for the Connect server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &ledgerServiceClient{
		createGroup: connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](
			httpClient,
			baseURL+LedgerServiceCreateGroupProcedure,
			opts...,
		),
		getGroup: connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](
			httpClient,
			baseURL+LedgerServiceGetGroupProcedure,
			opts...,
		),
		listGroups: connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](
			httpClient,
			baseURL+LedgerServiceListGroupsProcedure,
			opts...,
		),
		deleteGroup: connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](
			httpClient,
			baseURL+LedgerServiceDeleteGroupProcedure,
			opts...,
		),
		addMember: connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](
			httpClient,
			baseURL+LedgerServiceAddMemberProcedure,
			opts...,
		),
		removeMember: connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](
			httpClient,
			baseURL+LedgerServiceRemoveMemberProcedure,
			opts...,
		),
		addExpense: connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](
			httpClient,
			baseURL+LedgerServiceAddExpenseProcedure,
			opts...,
		),
		updateExpense: connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](
			httpClient,
			baseURL+LedgerServiceUpdateExpenseProcedure,
			opts...,
		),
		deleteExpense: connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](
			httpClient,
			baseURL+LedgerServiceDeleteExpenseProcedure,
			opts...,
		),
		listExpenses: connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](
			httpClient,
			baseURL+LedgerServiceListExpensesProcedure,
			opts...,
		),
		resolveSplit: connect.NewClient[api.ResolveSplitRequest, api.ResolveSplitResponse](
			httpClient,
			baseURL+LedgerServiceResolveSplitProcedure,
			opts...,
		),
		getBalances: connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](
			httpClient,
			baseURL+LedgerServiceGetBalancesProcedure,
			opts...,
		),
		recordPayment: connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](
			httpClient,
			baseURL+LedgerServiceRecordPaymentProcedure,
			opts...,
		),
		listPayments: connect.NewClient[api.ListPaymentsRequest, api.ListPaymentsResponse](
			httpClient,
			baseURL+LedgerServiceListPaymentsProcedure,
			opts...,
		),
		getSummary: connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](
			httpClient,
			baseURL+LedgerServiceGetSummaryProcedure,
			opts...,
		),
		parseReceipt: connect.NewClient[api.ParseReceiptRequest, api.ParseReceiptResponse](
			httpClient,
			baseURL+LedgerServiceParseReceiptProcedure,
			opts...,
		),
	}
}

// ledgerServiceClient implements LedgerServiceClient.
type ledgerServiceClient struct {
	createGroup   *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup      *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups    *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	deleteGroup   *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	addMember     *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	removeMember  *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	addExpense    *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	updateExpense *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	listExpenses  *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	resolveSplit  *connect.Client[api.ResolveSplitRequest, api.ResolveSplitResponse]
	getBalances   *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	recordPayment *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	listPayments  *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
	getSummary    *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
	parseReceipt  *connect.Client[api.ParseReceiptRequest, api.ParseReceiptResponse]
}

// CreateGroup calls settleup.v1.LedgerService.CreateGroup.
func (c *ledgerServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

// GetGroup calls settleup.v1.LedgerService.GetGroup.
func (c *ledgerServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

// ListGroups calls settleup.v1.LedgerService.ListGroups.
func (c *ledgerServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

// DeleteGroup calls settleup.v1.LedgerService.DeleteGroup.
func (c *ledgerServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

// AddMember calls settleup.v1.LedgerService.AddMember.
func (c *ledgerServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

// RemoveMember calls settleup.v1.LedgerService.RemoveMember.
func (c *ledgerServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

// AddExpense calls settleup.v1.LedgerService.AddExpense.
func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

// UpdateExpense calls settleup.v1.LedgerService.UpdateExpense.
func (c *ledgerServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

// DeleteExpense calls settleup.v1.LedgerService.DeleteExpense.
func (c *ledgerServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// ListExpenses calls settleup.v1.LedgerService.ListExpenses.
func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

// ResolveSplit calls settleup.v1.LedgerService.ResolveSplit.
func (c *ledgerServiceClient) ResolveSplit(ctx context.Context, req *connect.Request[api.ResolveSplitRequest]) (*connect.Response[api.ResolveSplitResponse], error) {
	return c.resolveSplit.CallUnary(ctx, req)
}

// GetBalances calls settleup.v1.LedgerService.GetBalances.
func (c *ledgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

// RecordPayment calls settleup.v1.LedgerService.RecordPayment.
func (c *ledgerServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

// ListPayments calls settleup.v1.LedgerService.ListPayments.
func (c *ledgerServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

// GetSummary calls settleup.v1.LedgerService.GetSummary.
func (c *ledgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

// ParseReceipt calls settleup.v1.LedgerService.ParseReceipt.
func (c *ledgerServiceClient) ParseReceipt(ctx context.Context, req *connect.Request[api.ParseReceiptRequest]) (*connect.Response[api.ParseReceiptResponse], error) {
	return c.parseReceipt.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the settleup.v1.LedgerService service.
type LedgerServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	ResolveSplit(context.Context, *connect.Request[api.ResolveSplitRequest]) (*connect.Response[api.ResolveSplitResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	ParseReceipt(context.Context, *connect.Request[api.ParseReceiptRequest]) (*connect.Response[api.ParseReceiptResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
//
// By default, handlers accept JSON over the Connect, gRPC and gRPC-Web protocols.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	ledgerServiceCreateGroupHandler := connect.NewUnaryHandler(
		LedgerServiceCreateGroupProcedure,
		svc.CreateGroup,
		opts...,
	)
	ledgerServiceGetGroupHandler := connect.NewUnaryHandler(
		LedgerServiceGetGroupProcedure,
		svc.GetGroup,
		opts...,
	)
	ledgerServiceListGroupsHandler := connect.NewUnaryHandler(
		LedgerServiceListGroupsProcedure,
		svc.ListGroups,
		opts...,
	)
	ledgerServiceDeleteGroupHandler := connect.NewUnaryHandler(
		LedgerServiceDeleteGroupProcedure,
		svc.DeleteGroup,
		opts...,
	)
	ledgerServiceAddMemberHandler := connect.NewUnaryHandler(
		LedgerServiceAddMemberProcedure,
		svc.AddMember,
		opts...,
	)
	ledgerServiceRemoveMemberHandler := connect.NewUnaryHandler(
		LedgerServiceRemoveMemberProcedure,
		svc.RemoveMember,
		opts...,
	)
	ledgerServiceAddExpenseHandler := connect.NewUnaryHandler(
		LedgerServiceAddExpenseProcedure,
		svc.AddExpense,
		opts...,
	)
	ledgerServiceUpdateExpenseHandler := connect.NewUnaryHandler(
		LedgerServiceUpdateExpenseProcedure,
		svc.UpdateExpense,
		opts...,
	)
	ledgerServiceDeleteExpenseHandler := connect.NewUnaryHandler(
		LedgerServiceDeleteExpenseProcedure,
		svc.DeleteExpense,
		opts...,
	)
	ledgerServiceListExpensesHandler := connect.NewUnaryHandler(
		LedgerServiceListExpensesProcedure,
		svc.ListExpenses,
		opts...,
	)
	ledgerServiceResolveSplitHandler := connect.NewUnaryHandler(
		LedgerServiceResolveSplitProcedure,
		svc.ResolveSplit,
		opts...,
	)
	ledgerServiceGetBalancesHandler := connect.NewUnaryHandler(
		LedgerServiceGetBalancesProcedure,
		svc.GetBalances,
		opts...,
	)
	ledgerServiceRecordPaymentHandler := connect.NewUnaryHandler(
		LedgerServiceRecordPaymentProcedure,
		svc.RecordPayment,
		opts...,
	)
	ledgerServiceListPaymentsHandler := connect.NewUnaryHandler(
		LedgerServiceListPaymentsProcedure,
		svc.ListPayments,
		opts...,
	)
	ledgerServiceGetSummaryHandler := connect.NewUnaryHandler(
		LedgerServiceGetSummaryProcedure,
		svc.GetSummary,
		opts...,
	)
	ledgerServiceParseReceiptHandler := connect.NewUnaryHandler(
		LedgerServiceParseReceiptProcedure,
		svc.ParseReceipt,
		opts...,
	)
	return "/settleup.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceCreateGroupProcedure:
			ledgerServiceCreateGroupHandler.ServeHTTP(w, r)
		case LedgerServiceGetGroupProcedure:
			ledgerServiceGetGroupHandler.ServeHTTP(w, r)
		case LedgerServiceListGroupsProcedure:
			ledgerServiceListGroupsHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteGroupProcedure:
			ledgerServiceDeleteGroupHandler.ServeHTTP(w, r)
		case LedgerServiceAddMemberProcedure:
			ledgerServiceAddMemberHandler.ServeHTTP(w, r)
		case LedgerServiceRemoveMemberProcedure:
			ledgerServiceRemoveMemberHandler.ServeHTTP(w, r)
		case LedgerServiceAddExpenseProcedure:
			ledgerServiceAddExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceUpdateExpenseProcedure:
			ledgerServiceUpdateExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteExpenseProcedure:
			ledgerServiceDeleteExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceListExpensesProcedure:
			ledgerServiceListExpensesHandler.ServeHTTP(w, r)
		case LedgerServiceResolveSplitProcedure:
			ledgerServiceResolveSplitHandler.ServeHTTP(w, r)
		case LedgerServiceGetBalancesProcedure:
			ledgerServiceGetBalancesHandler.ServeHTTP(w, r)
		case LedgerServiceRecordPaymentProcedure:
			ledgerServiceRecordPaymentHandler.ServeHTTP(w, r)
		case LedgerServiceListPaymentsProcedure:
			ledgerServiceListPaymentsHandler.ServeHTTP(w, r)
		case LedgerServiceGetSummaryProcedure:
			ledgerServiceGetSummaryHandler.ServeHTTP(w, r)
		case LedgerServiceParseReceiptProcedure:
			ledgerServiceParseReceiptHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.CreateGroup is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.GetGroup is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.ListGroups is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.DeleteGroup is not implemented"))
}

func (UnimplementedLedgerServiceHandler) AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.AddMember is not implemented"))
}

func (UnimplementedLedgerServiceHandler) RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.RemoveMember is not implemented"))
}

func (UnimplementedLedgerServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.AddExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.UpdateExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.DeleteExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.ListExpenses is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ResolveSplit(context.Context, *connect.Request[api.ResolveSplitRequest]) (*connect.Response[api.ResolveSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.ResolveSplit is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.GetBalances is not implemented"))
}

func (UnimplementedLedgerServiceHandler) RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.RecordPayment is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.ListPayments is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.GetSummary is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ParseReceipt(context.Context, *connect.Request[api.ParseReceiptRequest]) (*connect.Response[api.ParseReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.LedgerService.ParseReceipt is not implemented"))
}
