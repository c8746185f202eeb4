package clubapi

import (
	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xtime"
)

const (
	ClubStatusActive    = "active"
	ClubStatusPending   = "pending"
	ClubStatusRejected  = "rejected"
	ClubStatusSuspended = "suspended"
	ClubStatusDisbanded = "disbanded"
)

const (
	MembershipStatusPending  = "pending"
	MembershipStatusAccepted = "accepted"
	// MembershipStatusActive is the legacy spelling of accepted still returned
	// by older API deployments.
	MembershipStatusActive   = "active"
	MembershipStatusRejected = "rejected"
	MembershipStatusLeft     = "left"
)

const (
	PositionPresident       = "president"
	PositionVicePresident   = "vice_president"
	PositionActivityOfficer = "activity_officer"
	PositionFinanceOfficer  = "finance_officer"
	PositionPROfficer       = "pr_officer"
	PositionMember          = "member"
)

const (
	EventStatusPlanning  = "planning"
	EventStatusOpen      = "open"
	EventStatusClosed    = "closed"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodBank = "bank"
)

const (
	PaymentStatusUnpaid    = "unpaid"
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusConfirmed = "confirmed"
)

const (
	ClubActionApprove = "approve"
	ClubActionReject  = "reject"
	ClubActionSuspend = "suspend"
	ClubActionDisband = "disband"
)

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginResponse struct {
	Access string `json:"access"`
	User   User   `json:"user"`
}

type MemberCount struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

type Club struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Status         string       `json:"status"`
	FoundationDate xtime.Date   `json:"foundation_date"`
	MaxMember      int          `json:"max_member"`
	MemberCount    MemberCount  `json:"memberCount"`
	PresidentName  string       `json:"presidentName"`
	Members        []Membership `json:"members"`
	Activities     []Event      `json:"activities"`
}

type Membership struct {
	ID        int    `json:"id"`
	User      int    `json:"user"`
	Username  string `json:"username"`
	Club      int    `json:"club"`
	Status    string `json:"status"`
	IsManager bool   `json:"is_manager"`
	Position  string `json:"position"`
}

type CashPayment struct {
	Enabled bool   `json:"enabled"`
	Remark  string `json:"remark"`
}

type BankTransferPayment struct {
	Enabled       bool   `json:"enabled"`
	Bank          string `json:"bank"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

type PaymentMethods struct {
	Cash         CashPayment         `json:"cash"`
	BankTransfer BankTransferPayment `json:"bank_transfer"`
}

type Event struct {
	ID               int             `json:"id"`
	Club             int             `json:"club"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Fee              int             `json:"fee"`
	Quota            int             `json:"quota"`
	Status           string          `json:"status"`
	StartDate        xtime.Date      `json:"start_date"`
	EndDate          xtime.Date      `json:"end_date"`
	PaymentStartDate xtime.Date      `json:"payment_start_date"`
	PaymentEndDate   xtime.Date      `json:"payment_end_date"`
	PaymentMethods   PaymentMethods  `json:"payment_methods"`
	IsPublic         bool            `json:"is_public"`
	Participants     []Participation `json:"participants"`
}

// HasPaymentWindow reports whether the event carries the optional payment
// date pair.
func (e Event) HasPaymentWindow() bool {
	return !e.PaymentStartDate.IsZero() || !e.PaymentEndDate.IsZero()
}

type Participation struct {
	ID            int    `json:"id"`
	User          int    `json:"user"`
	Username      string `json:"username"`
	Event         int    `json:"event"`
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
	IsManager     bool   `json:"is_manager"`
}

// Settled reports whether the payment is done from the club's point of view.
// Everything except "confirmed" still needs manager action.
func (p Participation) Settled() bool {
	return p.PaymentStatus == PaymentStatusConfirmed
}

type ClubDraft struct {
	Name        string
	Description string
	MaxMember   int
}

type ClubPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	MaxMember   *int    `json:"max_member,omitempty"`
}

type MembershipPatch struct {
	Status   *string `json:"status,omitempty"`
	Position *string `json:"position,omitempty"`
}

type EventDraft struct {
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Fee              int            `json:"fee"`
	Quota            int            `json:"quota"`
	Status           string         `json:"status"`
	StartDate        xtime.Date     `json:"start_date"`
	EndDate          xtime.Date     `json:"end_date"`
	PaymentStartDate xtime.Date     `json:"payment_start_date"`
	PaymentEndDate   xtime.Date     `json:"payment_end_date"`
	PaymentMethods   PaymentMethods `json:"payment_methods"`
	IsPublic         bool           `json:"is_public"`
}

type MePatch struct {
	Email       *string `json:"email,omitempty"`
	OldPassword *string `json:"old_password,omitempty"`
	NewPassword *string `json:"new_password,omitempty"`
}
