// Package api defines the request and response messages of the
// settleup.v1.LedgerService RPC service.
//
// Messages are plain structs carried as JSON. Amounts are decimal strings
// with two fractional digits ("30.00") so no precision is lost on the wire;
// IDs are opaque strings.
package api

// Group is a group with its members.
type Group struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	Members     []*Member `json:"members"`
	TotalAmount string    `json:"totalAmount"`
	CreatedAt   int64     `json:"createdAt"`
}

// Member is one participant of a group. Paid and Owes are the totals of
// recorded payments sent and received.
type Member struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Paid string `json:"paid"`
	Owes string `json:"owes"`
}

type Expense struct {
	Id           string            `json:"id"`
	GroupId      string            `json:"groupId"`
	Amount       string            `json:"amount"`
	Description  string            `json:"description"`
	Category     string            `json:"category"`
	PaidBy       string            `json:"paidBy"`
	Participants []string          `json:"participants"`
	SplitType    string            `json:"splitType"`
	Split        map[string]string `json:"split"`
	CreatedAt    int64             `json:"createdAt"`
}

// Balance is a member's position. Positive NetBalance means the member is owed.
type Balance struct {
	MemberId   string `json:"memberId"`
	MemberName string `json:"memberName"`
	TotalPaid  string `json:"totalPaid"`
	TotalOwes  string `json:"totalOwes"`
	NetBalance string `json:"netBalance"`
}

// Settlement is a suggested transfer.
type Settlement struct {
	FromMemberId string `json:"fromMemberId"`
	ToMemberId   string `json:"toMemberId"`
	FromName     string `json:"fromName"`
	ToName       string `json:"toName"`
	Amount       string `json:"amount"`
}

// Payment is a recorded transfer.
type Payment struct {
	Id           string `json:"id"`
	GroupId      string `json:"groupId"`
	FromMemberId string `json:"fromMemberId"`
	ToMemberId   string `json:"toMemberId"`
	Amount       string `json:"amount"`
	Note         string `json:"note,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
}

type CategoryTotal struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type MemberShare struct {
	MemberId string `json:"memberId"`
	Name     string `json:"name"`
	Total    string `json:"total"`
}

// ReceiptDraft is an expense proposal read off a receipt. Amount is empty
// when none was found.
type ReceiptDraft struct {
	Store       string `json:"store"`
	Description string `json:"description"`
	Amount      string `json:"amount,omitempty"`
	Date        string `json:"date,omitempty"`
	Category    string `json:"category"`
}

// Groups

type CreateGroupRequest struct {
	Name      string   `json:"name"`
	CreatedBy string   `json:"createdBy,omitempty"`
	Members   []string `json:"members"` // display names
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"groupId"`
}

type DeleteGroupResponse struct{}

// Members

type AddMemberRequest struct {
	GroupId  string `json:"groupId"`
	MemberId string `json:"memberId,omitempty"` // generated when empty
	Name     string `json:"name"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type RemoveMemberRequest struct {
	GroupId  string `json:"groupId"`
	MemberId string `json:"memberId"`
}

type RemoveMemberResponse struct{}

// Expenses

// AddExpenseRequest carries the raw split input; the server resolves it.
// Values holds amounts for CUSTOM and percentages for PERCENTAGE, keyed
// by member ID. It is ignored for EQUAL.
type AddExpenseRequest struct {
	GroupId      string            `json:"groupId"`
	Amount       string            `json:"amount"`
	Description  string            `json:"description"`
	Category     string            `json:"category,omitempty"`
	PaidBy       string            `json:"paidBy"`
	Participants []string          `json:"participants"`
	SplitType    string            `json:"splitType,omitempty"`
	Values       map[string]string `json:"values,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// UpdateExpenseRequest changes only the fields that are set. Setting any of
// Amount, Participants, SplitType or Values re-resolves the whole split.
type UpdateExpenseRequest struct {
	ExpenseId    string            `json:"expenseId"`
	Description  *string           `json:"description,omitempty"`
	Category     *string           `json:"category,omitempty"`
	PaidBy       *string           `json:"paidBy,omitempty"`
	Amount       *string           `json:"amount,omitempty"`
	Participants []string          `json:"participants,omitempty"`
	SplitType    *string           `json:"splitType,omitempty"`
	Values       map[string]string `json:"values,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseId string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type ListExpensesRequest struct {
	GroupId string `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// ResolveSplitRequest previews a split without saving anything.
type ResolveSplitRequest struct {
	Amount       string            `json:"amount"`
	SplitType    string            `json:"splitType,omitempty"`
	Participants []string          `json:"participants"`
	Values       map[string]string `json:"values,omitempty"`
}

type ResolveSplitResponse struct {
	Split map[string]string `json:"split"`
}

// Balances and payments

type GetBalancesRequest struct {
	GroupId string `json:"groupId"`
}

type GetBalancesResponse struct {
	Balances    []*Balance    `json:"balances"`
	Settlements []*Settlement `json:"settlements"`
}

type RecordPaymentRequest struct {
	GroupId      string `json:"groupId"`
	FromMemberId string `json:"fromMemberId"`
	ToMemberId   string `json:"toMemberId"`
	Amount       string `json:"amount"`
	Note         string `json:"note,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsRequest struct {
	GroupId string `json:"groupId"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

// Summary and receipts

type GetSummaryRequest struct {
	GroupId string `json:"groupId"`
	Top     int32  `json:"top,omitempty"` // defaults to 3
}

type GetSummaryResponse struct {
	Total        string           `json:"total"`
	ExpenseCount int32            `json:"expenseCount"`
	ByCategory   []*CategoryTotal `json:"byCategory"`
	TopSpenders  []*MemberShare   `json:"topSpenders"`
}

type ParseReceiptRequest struct {
	Text string `json:"text"`
}

type ParseReceiptResponse struct {
	Draft *ReceiptDraft `json:"draft"`
}
