package web

import (
	"testing"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

func newTestHandler() *handler {
	return &handler{Server: &server.Server{
		Cfg: server.Config{
			Server: server.ServerConfig{PublicURL: "http://localhost:8085"},
		},
	}}
}

func testClub() *clubapi.Club {
	return &clubapi.Club{
		ID:   1,
		Name: "Chess Club",
		Members: []clubapi.Membership{
			{ID: 1, User: 10, Status: clubapi.MembershipStatusAccepted, Position: clubapi.PositionPresident},
			{ID: 2, User: 11, Status: clubapi.MembershipStatusAccepted, Position: clubapi.PositionMember},
			{ID: 3, User: 12, Status: clubapi.MembershipStatusPending, Position: clubapi.PositionMember},
		},
	}
}

func testEvent() *clubapi.Event {
	return &clubapi.Event{
		ID:     7,
		Club:   1,
		Name:   "Blitz Night",
		Fee:    100,
		Status: clubapi.EventStatusOpen,
		PaymentMethods: clubapi.PaymentMethods{
			Cash: clubapi.CashPayment{Enabled: true, Remark: "Club room, Friday"},
			BankTransfer: clubapi.BankTransferPayment{
				Enabled:       true,
				Bank:          "First Bank",
				AccountNumber: "123",
				AccountName:   "Chess Club",
			},
		},
	}
}

func TestEventVarsCanJoin(t *testing.T) {
	h := newTestHandler()

	t.Run("member can join open event", func(t *testing.T) {
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 11}, 11, testClub(), testEvent())
		if !vars.CanJoin {
			t.Error("accepted member should be able to join")
		}
	})

	t.Run("anonymous cannot join", func(t *testing.T) {
		vars := h.eventVars(Viewer{}, 0, testClub(), testEvent())
		if vars.CanJoin {
			t.Error("anonymous viewer must not be able to join")
		}
	})

	t.Run("pending member cannot join private event", func(t *testing.T) {
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 12}, 12, testClub(), testEvent())
		if vars.CanJoin {
			t.Error("pending member must not join a members-only event")
		}
	})

	t.Run("non-member can join public event", func(t *testing.T) {
		event := testEvent()
		event.IsPublic = true
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 99}, 99, testClub(), event)
		if !vars.CanJoin {
			t.Error("public events should accept non-members")
		}
	})

	t.Run("closed event rejects joins", func(t *testing.T) {
		event := testEvent()
		event.Status = clubapi.EventStatusClosed
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 11}, 11, testClub(), event)
		if vars.CanJoin {
			t.Error("closed event must not be joinable")
		}
	})

	t.Run("full event rejects joins", func(t *testing.T) {
		event := testEvent()
		event.Quota = 1
		event.Participants = []clubapi.Participation{
			{ID: 1, User: 10, PaymentStatus: clubapi.PaymentStatusPending},
		}
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 11}, 11, testClub(), event)
		if vars.CanJoin {
			t.Error("full event must not be joinable")
		}
	})

	t.Run("participant cannot join twice", func(t *testing.T) {
		event := testEvent()
		event.Participants = []clubapi.Participation{
			{ID: 1, User: 11, PaymentStatus: clubapi.PaymentStatusPending},
		}
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 11}, 11, testClub(), event)
		if vars.CanJoin {
			t.Error("existing participant must not join twice")
		}
		if !vars.Joined || vars.MyStatus != clubapi.PaymentStatusPending {
			t.Errorf("Joined = %v, MyStatus = %q", vars.Joined, vars.MyStatus)
		}
	})
}

func TestEventVarsMethods(t *testing.T) {
	h := newTestHandler()

	t.Run("both methods offered", func(t *testing.T) {
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 11}, 11, testClub(), testEvent())
		if len(vars.Methods) != 2 {
			t.Fatalf("got %d methods, want 2", len(vars.Methods))
		}
		if vars.Methods[0].Value != clubapi.PaymentMethodCash {
			t.Errorf("first method = %q", vars.Methods[0].Value)
		}
		if vars.Methods[1].Value != clubapi.PaymentMethodBank {
			t.Errorf("second method = %q", vars.Methods[1].Value)
		}
	})

	t.Run("disabled method is not offered", func(t *testing.T) {
		event := testEvent()
		event.PaymentMethods.Cash.Enabled = false
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 11}, 11, testClub(), event)
		if len(vars.Methods) != 1 || vars.Methods[0].Value != clubapi.PaymentMethodBank {
			t.Errorf("unexpected methods: %+v", vars.Methods)
		}
	})

	t.Run("free event offers no methods", func(t *testing.T) {
		event := testEvent()
		event.Fee = 0
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 11}, 11, testClub(), event)
		if len(vars.Methods) != 0 {
			t.Errorf("free event should not offer methods, got %+v", vars.Methods)
		}
	})
}

func TestEventVarsParticipants(t *testing.T) {
	h := newTestHandler()
	event := testEvent()
	event.Participants = []clubapi.Participation{
		{ID: 1, User: 11, Username: "bob", PaymentMethod: clubapi.PaymentMethodCash, PaymentStatus: clubapi.PaymentStatusPending},
		{ID: 2, User: 12, Username: "carol", PaymentMethod: clubapi.PaymentMethodBank, PaymentStatus: clubapi.PaymentStatusConfirmed},
	}

	t.Run("manager sees participants", func(t *testing.T) {
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 10}, 10, testClub(), event)
		if !vars.IsManager {
			t.Fatal("president should be manager")
		}
		if len(vars.Participants) != 2 {
			t.Fatalf("got %d participants, want 2", len(vars.Participants))
		}
		if vars.Participants[0].Settled {
			t.Error("pending payment must not be settled")
		}
		if !vars.Participants[1].Settled {
			t.Error("confirmed payment must be settled")
		}
	})

	t.Run("plain member sees no participants", func(t *testing.T) {
		vars := h.eventVars(Viewer{LoggedIn: true, UserID: 11}, 11, testClub(), event)
		if vars.IsManager || len(vars.Participants) != 0 {
			t.Errorf("plain member got manager data: %+v", vars.Participants)
		}
	})
}
