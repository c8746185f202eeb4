package server

import (
	"testing"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xtime"
)

func TestFormatMembershipStatus(t *testing.T) {
	tests := map[string]string{
		"accepted": "Joined",
		"active":   "Joined",
		"pending":  "Pending review",
		"rejected": "Rejected",
		"left":     "Left",
		"weird":    "weird",
	}
	for status, want := range tests {
		if got := FormatMembershipStatus(status); got != want {
			t.Errorf("FormatMembershipStatus(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestFormatActivityStatus(t *testing.T) {
	tests := map[string]string{
		"planning":  "Planning",
		"open":      "Open for registration",
		"ongoing":   "Open for registration",
		"closed":    "Registration closed",
		"completed": "Completed",
		"cancelled": "Cancelled",
		"unknown":   "unknown",
	}
	for status, want := range tests {
		if got := FormatActivityStatus(status); got != want {
			t.Errorf("FormatActivityStatus(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestFormatPaymentStatus(t *testing.T) {
	tests := map[string]string{
		"unpaid":    "Unpaid",
		"pending":   "Pending confirmation",
		"paid":      "Paid",
		"confirmed": "Confirmed",
	}
	for status, want := range tests {
		if got := FormatPaymentStatus(status); got != want {
			t.Errorf("FormatPaymentStatus(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestFormatPosition(t *testing.T) {
	tests := map[string]string{
		"president":        "President",
		"vice_president":   "Vice president",
		"activity_officer": "Activity officer",
		"finance_officer":  "Finance officer",
		"pr_officer":       "PR officer",
		"member":           "Member",
		"":                 "-",
	}
	for position, want := range tests {
		if got := FormatPosition(position); got != want {
			t.Errorf("FormatPosition(%q) = %q, want %q", position, got, want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	if got := FormatCurrency(350); got != "NT$350" {
		t.Errorf("FormatCurrency(350) = %q", got)
	}
	if got := FormatCurrency(0); got != "NT$0" {
		t.Errorf("FormatCurrency(0) = %q", got)
	}
}

func TestFormatDateRange(t *testing.T) {
	start, _ := xtime.ParseDate("2026-03-01")
	end, _ := xtime.ParseDate("2026-03-05")
	if got := FormatDateRange(start, end); got != "2026-03-01 ~ 2026-03-05" {
		t.Errorf("FormatDateRange = %q", got)
	}
}
