package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"connectrpc.com/connect"
	"golang.org/x/sync/singleflight"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/receipt"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService.
//
// Balances and settlement plans are derived from a storage snapshot and
// cached per group. Every write drops the group's cached view before it
// announces the change on the event bus, so a read that follows a write
// never sees the old view.
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	store   storage.Store
	bus     *events.Bus
	metrics *metrics.Metrics
	planner calculator.Planner

	flight singleflight.Group

	mu    sync.Mutex
	views map[string]*ledgerView
	gens  map[string]uint64
}

// ledgerView is the derived state of one group at one snapshot.
type ledgerView struct {
	group       models.Group
	balances    map[string]calculator.Balance
	settlements []calculator.Settlement
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithEventBus publishes a SnapshotChanged event after every write.
func WithEventBus(bus *events.Bus) Option {
	return func(s *LedgerService) { s.bus = bus }
}

// WithMetrics records recomputations, plan sizes and ledger errors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *LedgerService) { s.metrics = m }
}

// WithDust sets the settlement planner's dust threshold.
func WithDust(dust money.Money) Option {
	return func(s *LedgerService) { s.planner.Dust = dust }
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, opts ...Option) *LedgerService {
	s := &LedgerService{
		store: store,
		views: make(map[string]*ledgerView),
		gens:  make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateGroup creates a new group with the named members.
func (s *LedgerService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group name is required"))
	}

	group := &models.Group{
		Name:      name,
		CreatedBy: req.Msg.CreatedBy,
	}
	for _, memberName := range req.Msg.Members {
		if memberName = strings.TrimSpace(memberName); memberName != "" {
			group.Members = append(group.Members, models.Member{Name: memberName})
		}
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, s.toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	s.changed(ctx, events.GroupCreated, group.ID, group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: groupToAPI(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *LedgerService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{Group: groupToAPI(group)}), nil
}

// ListGroups retrieves all groups.
func (s *LedgerService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, s.toConnectError(err)
	}

	resp := &api.ListGroupsResponse{Groups: make([]*api.Group, len(groups))}
	for i, group := range groups {
		resp.Groups[i] = groupToAPI(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(resp), nil
}

// DeleteGroup removes a group with all its expenses and payments.
func (s *LedgerService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupId)

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupId)
	s.changed(ctx, events.GroupDeleted, req.Msg.GroupId, req.Msg.GroupId)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddMember adds a member to a group.
func (s *LedgerService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupId, "name", req.Msg.Name)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("member name is required"))
	}

	member := &models.Member{ID: req.Msg.MemberId, Name: name}
	if err := s.store.AddMember(ctx, req.Msg.GroupId, member); err != nil {
		slog.Error("AddMember failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, s.toConnectError(err)
	}

	slog.Info("Member added", "group_id", req.Msg.GroupId, "member_id", member.ID)
	s.changed(ctx, events.MemberAdded, req.Msg.GroupId, member.ID)

	return connect.NewResponse(&api.AddMemberResponse{Member: memberToAPI(*member)}), nil
}

// RemoveMember removes a member that no expense or payment refers to.
func (s *LedgerService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupId, "member_id", req.Msg.MemberId)

	if err := s.store.RemoveMember(ctx, req.Msg.GroupId, req.Msg.MemberId); err != nil {
		slog.Error("RemoveMember failed", "group_id", req.Msg.GroupId, "member_id", req.Msg.MemberId, "error", err)
		return nil, s.toConnectError(err)
	}

	slog.Info("Member removed", "group_id", req.Msg.GroupId, "member_id", req.Msg.MemberId)
	s.changed(ctx, events.MemberRemoved, req.Msg.GroupId, req.Msg.MemberId)

	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// ParseReceipt reads a draft expense from receipt text.
func (s *LedgerService) ParseReceipt(ctx context.Context, req *connect.Request[api.ParseReceiptRequest]) (*connect.Response[api.ParseReceiptResponse], error) {
	slog.Info("ParseReceipt request received", "length", len(req.Msg.Text))

	draft, err := receipt.Parse(req.Msg.Text)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	slog.Info("ParseReceipt successful", "store", draft.Store, "amount", draft.Amount)

	resp := &api.ReceiptDraft{
		Store:       draft.Store,
		Description: draft.Description,
		Date:        draft.Date,
		Category:    string(draft.Category),
	}
	if draft.Amount > 0 {
		resp.Amount = draft.Amount.String()
	}
	return connect.NewResponse(&api.ParseReceiptResponse{Draft: resp}), nil
}

// ledger returns the cached view of a group, computing it from a fresh
// snapshot if needed. Concurrent callers for the same group and generation
// share one computation.
func (s *LedgerService) ledger(ctx context.Context, groupID string) (*ledgerView, error) {
	s.mu.Lock()
	if view, ok := s.views[groupID]; ok {
		s.mu.Unlock()
		return view, nil
	}
	gen := s.gens[groupID]
	s.mu.Unlock()

	key := fmt.Sprintf("%s#%d", groupID, gen)
	v, err, shared := s.flight.Do(key, func() (any, error) {
		// Shared by every caller in flight; one caller's cancellation must not fail the rest.
		view, err := s.compute(context.WithoutCancel(ctx), groupID)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.gens[groupID] == gen {
			s.views[groupID] = view
		}
		s.mu.Unlock()
		return view, nil
	})
	s.metrics.ObserveRecompute(shared)
	if err != nil {
		return nil, err
	}
	return v.(*ledgerView), nil
}

func (s *LedgerService) compute(ctx context.Context, groupID string) (*ledgerView, error) {
	snap, err := s.store.GetSnapshot(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	balances, err := calculator.ComputeLedgerBalances(snap.MemberIDs(), snap.Expenses, snap.Payments)
	if err != nil {
		return nil, err
	}

	settlements, err := s.planner.Plan(balances, snap.Group.MemberMap())
	if err != nil {
		return nil, err
	}
	s.metrics.ObservePlan(len(settlements))

	slog.Debug("Ledger recomputed",
		"group_id", groupID,
		"expenses", len(snap.Expenses),
		"payments", len(snap.Payments),
		"settlements", len(settlements),
	)

	return &ledgerView{
		group:       snap.Group,
		balances:    balances,
		settlements: settlements,
	}, nil
}

// changed drops the cached view of a group and announces the change.
func (s *LedgerService) changed(ctx context.Context, kind events.Kind, groupID, entityID string) {
	s.mu.Lock()
	delete(s.views, groupID)
	s.gens[groupID]++
	s.mu.Unlock()

	if s.bus == nil {
		return
	}
	err := s.bus.Publish(ctx, events.SnapshotChanged{GroupID: groupID, Kind: kind, EntityID: entityID})
	if err != nil {
		slog.Warn("Failed to publish ledger event", "group_id", groupID, "kind", kind, "error", err)
	}
}

// toConnectError maps domain and storage errors onto Connect codes.
func (s *LedgerService) toConnectError(err error) *connect.Error {
	s.metrics.ObserveError(err)

	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case errors.Is(err, calculator.ErrInvalidSplit),
		errors.Is(err, calculator.ErrSplitMismatch),
		errors.Is(err, calculator.ErrUnknownMember),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrSubCent),
		errors.Is(err, money.ErrOverflow),
		errors.Is(err, models.ErrEmptyDescription),
		errors.Is(err, models.ErrMissingPayer),
		errors.Is(err, models.ErrEmptySplit):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, calculator.ErrUnbalancedLedger):
		return connect.NewError(connect.CodeDataLoss, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrMemberInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
