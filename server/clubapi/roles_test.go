package clubapi

import (
	"testing"
)

func TestIsManager(t *testing.T) {
	tests := []struct {
		name       string
		membership Membership
		want       bool
	}{
		{"plain member", Membership{Status: MembershipStatusAccepted, Position: PositionMember}, false},
		{"explicit flag", Membership{Status: MembershipStatusAccepted, Position: PositionMember, IsManager: true}, true},
		{"president", Membership{Status: MembershipStatusAccepted, Position: PositionPresident}, true},
		{"vice president", Membership{Status: MembershipStatusAccepted, Position: PositionVicePresident}, true},
		{"activity officer", Membership{Status: MembershipStatusAccepted, Position: PositionActivityOfficer}, true},
		{"finance officer", Membership{Status: MembershipStatusAccepted, Position: PositionFinanceOfficer}, true},
		{"pr officer", Membership{Status: MembershipStatusAccepted, Position: PositionPROfficer}, true},
		{"empty position", Membership{Status: MembershipStatusAccepted}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsManager(tt.membership); got != tt.want {
				t.Errorf("IsManager(%+v) = %v, want %v", tt.membership, got, tt.want)
			}
		})
	}
}

func TestDeriveRole(t *testing.T) {
	members := []Membership{
		{ID: 1, User: 10, Status: MembershipStatusAccepted, Position: PositionPresident},
		{ID: 2, User: 11, Status: MembershipStatusPending, Position: PositionMember},
		{ID: 3, User: 12, Status: MembershipStatusActive, Position: PositionMember},
		{ID: 4, User: 13, Status: MembershipStatusRejected, Position: PositionMember},
	}

	t.Run("anonymous", func(t *testing.T) {
		role := DeriveRole(members, 0)
		if role.Membership != nil || role.IsMember || role.IsManager {
			t.Errorf("anonymous viewer got a role: %+v", role)
		}
	})

	t.Run("president", func(t *testing.T) {
		role := DeriveRole(members, 10)
		if role.Membership == nil || role.Membership.ID != 1 {
			t.Fatalf("expected membership 1, got %+v", role.Membership)
		}
		if !role.IsMember || !role.IsManager {
			t.Errorf("president should be member and manager: %+v", role)
		}
	})

	t.Run("pending", func(t *testing.T) {
		role := DeriveRole(members, 11)
		if role.Membership == nil {
			t.Fatal("expected a membership for pending user")
		}
		if role.IsMember {
			t.Error("pending membership must not count as member")
		}
		if role.Status != MembershipStatusPending {
			t.Errorf("Status = %q, want %q", role.Status, MembershipStatusPending)
		}
	})

	t.Run("legacy active counts as member", func(t *testing.T) {
		role := DeriveRole(members, 12)
		if !role.IsMember {
			t.Error("legacy active status must count as member")
		}
	})

	t.Run("rejected", func(t *testing.T) {
		role := DeriveRole(members, 13)
		if role.IsMember || role.IsManager {
			t.Errorf("rejected membership must not confer anything: %+v", role)
		}
	})

	t.Run("stranger", func(t *testing.T) {
		role := DeriveRole(members, 99)
		if role.Membership != nil {
			t.Errorf("expected no membership, got %+v", role.Membership)
		}
	})
}

func TestAcceptedMemberCount(t *testing.T) {
	members := []Membership{
		{Status: MembershipStatusAccepted},
		{Status: MembershipStatusActive},
		{Status: MembershipStatusPending},
		{Status: MembershipStatusRejected},
		{Status: MembershipStatusLeft},
		{Status: MembershipStatusAccepted},
	}
	if got := AcceptedMemberCount(members); got != 3 {
		t.Errorf("AcceptedMemberCount = %d, want 3", got)
	}
	if got := AcceptedMemberCount(nil); got != 0 {
		t.Errorf("AcceptedMemberCount(nil) = %d, want 0", got)
	}
}

func TestFindParticipation(t *testing.T) {
	participants := []Participation{
		{ID: 1, User: 10, PaymentStatus: PaymentStatusPending},
		{ID: 2, User: 11, PaymentStatus: PaymentStatusConfirmed},
	}

	if p := FindParticipation(participants, 0); p != nil {
		t.Errorf("anonymous viewer got a participation: %+v", p)
	}
	if p := FindParticipation(participants, 11); p == nil || p.ID != 2 {
		t.Errorf("expected participation 2, got %+v", p)
	}
	if p := FindParticipation(participants, 99); p != nil {
		t.Errorf("expected no participation, got %+v", p)
	}
}

func TestParticipationSettled(t *testing.T) {
	for status, want := range map[string]bool{
		PaymentStatusUnpaid:    false,
		PaymentStatusPending:   false,
		PaymentStatusPaid:      false,
		PaymentStatusConfirmed: true,
	} {
		p := Participation{PaymentStatus: status}
		if got := p.Settled(); got != want {
			t.Errorf("Settled() with status %q = %v, want %v", status, got, want)
		}
	}
}
