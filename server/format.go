package server

import (
	"fmt"
	"html/template"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xtime"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

var templateFuncs = template.FuncMap{
	"formatClubStatus":       FormatClubStatus,
	"formatMembershipStatus": FormatMembershipStatus,
	"formatActivityStatus":   FormatActivityStatus,
	"formatPaymentStatus":    FormatPaymentStatus,
	"formatPosition":         FormatPosition,
	"formatCurrency":         FormatCurrency,
	"formatDateRange":        FormatDateRange,
}

func FormatClubStatus(status string) string {
	switch status {
	case clubapi.ClubStatusActive:
		return "Active"
	case clubapi.ClubStatusPending:
		return "Pending review"
	case clubapi.ClubStatusRejected:
		return "Rejected"
	case clubapi.ClubStatusSuspended:
		return "Suspended"
	case clubapi.ClubStatusDisbanded:
		return "Disbanded"
	default:
		return status
	}
}

func FormatMembershipStatus(status string) string {
	switch status {
	case clubapi.MembershipStatusAccepted, clubapi.MembershipStatusActive:
		return "Joined"
	case clubapi.MembershipStatusPending:
		return "Pending review"
	case clubapi.MembershipStatusRejected:
		return "Rejected"
	case clubapi.MembershipStatusLeft:
		return "Left"
	default:
		return status
	}
}

// FormatActivityStatus maps both the current activity status vocabulary and
// the legacy one ("ongoing") through a single formatter. Unknown values pass
// through untouched.
func FormatActivityStatus(status string) string {
	switch status {
	case clubapi.EventStatusPlanning:
		return "Planning"
	case clubapi.EventStatusOpen, "ongoing":
		return "Open for registration"
	case clubapi.EventStatusClosed:
		return "Registration closed"
	case clubapi.EventStatusCompleted:
		return "Completed"
	case clubapi.EventStatusCancelled:
		return "Cancelled"
	default:
		return status
	}
}

func FormatPaymentStatus(status string) string {
	switch status {
	case clubapi.PaymentStatusUnpaid:
		return "Unpaid"
	case clubapi.PaymentStatusPending:
		return "Pending confirmation"
	case clubapi.PaymentStatusPaid:
		return "Paid"
	case clubapi.PaymentStatusConfirmed:
		return "Confirmed"
	default:
		return status
	}
}

func FormatPosition(position string) string {
	switch position {
	case clubapi.PositionPresident:
		return "President"
	case clubapi.PositionVicePresident:
		return "Vice president"
	case clubapi.PositionActivityOfficer:
		return "Activity officer"
	case clubapi.PositionFinanceOfficer:
		return "Finance officer"
	case clubapi.PositionPROfficer:
		return "PR officer"
	case clubapi.PositionMember:
		return "Member"
	case "":
		return "-"
	default:
		return position
	}
}

func FormatCurrency(amount int) string {
	return fmt.Sprintf("NT$%d", amount)
}

func FormatDateRange(start xtime.Date, end xtime.Date) string {
	return fmt.Sprintf("%s ~ %s", start, end)
}
