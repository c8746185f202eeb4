package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xtime"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/database"
)

// newPageHandler wires a handler against a fake upstream API and the real
// templates so tests can assert on rendered pages.
func newPageHandler(t *testing.T, upstream http.Handler) *handler {
	t.Helper()

	api := httptest.NewServer(upstream)
	t.Cleanup(api.Close)

	tmpl := template.Must(template.New("templates").Funcs(template.FuncMap{
		"formatClubStatus":       server.FormatClubStatus,
		"formatMembershipStatus": server.FormatMembershipStatus,
		"formatActivityStatus":   server.FormatActivityStatus,
		"formatPaymentStatus":    server.FormatPaymentStatus,
		"formatPosition":         server.FormatPosition,
		"formatCurrency":         server.FormatCurrency,
		"formatDateRange":        server.FormatDateRange,
	}).ParseGlob("../templates/*.gohtml"))

	return &handler{Server: &server.Server{
		Cfg: server.Config{
			Server: server.ServerConfig{PublicURL: "http://localhost:8085"},
		},
		Client: clubapi.New(clubapi.Config{
			BaseURL: api.URL,
			Every:   xtime.Duration(time.Millisecond),
			Burst:   100,
		}, api.Client()),
		Templates: func() *template.Template { return tmpl },
	}}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func upstreamClub() clubapi.Club {
	return clubapi.Club{
		ID:             1,
		Name:           "Chess Club",
		Description:    "We play chess.",
		Status:         clubapi.ClubStatusActive,
		FoundationDate: xtime.NewDate(2024, time.January, 1),
		MaxMember:      30,
		Members: []clubapi.Membership{
			{ID: 1, User: 10, Username: "alice", Club: 1, Status: clubapi.MembershipStatusAccepted, Position: clubapi.PositionPresident},
			{ID: 2, User: 11, Username: "bob", Club: 1, Status: clubapi.MembershipStatusAccepted, Position: clubapi.PositionMember},
		},
	}
}

func upstreamEvent() clubapi.Event {
	return clubapi.Event{
		ID:        7,
		Club:      1,
		Name:      "Blitz Night",
		Fee:       100,
		Status:    clubapi.EventStatusOpen,
		StartDate: xtime.NewDate(2026, time.March, 1),
		EndDate:   xtime.NewDate(2026, time.March, 2),
		PaymentMethods: clubapi.PaymentMethods{
			Cash: clubapi.CashPayment{Enabled: true, Remark: "Club room, Friday"},
		},
		Participants: []clubapi.Participation{
			{ID: 1, User: 11, Username: "bob", Event: 7, PaymentMethod: clubapi.PaymentMethodCash, PaymentStatus: clubapi.PaymentStatusPending},
		},
	}
}

func withSession(r *http.Request, session database.Session) *http.Request {
	return r.WithContext(auth.SetSession(r.Context(), session))
}

func TestUpdateParticipant(t *testing.T) {
	newRequest := func() *http.Request {
		form := url.Values{"payment_status": {clubapi.PaymentStatusConfirmed}}
		r := httptest.NewRequest(http.MethodPost, "/clubs/1/events/7/participants/1", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.SetPathValue("club_id", "1")
		r.SetPathValue("event_id", "7")
		r.SetPathValue("participant_id", "1")
		return withSession(r, database.Session{ID: "s1", UserID: 10, Username: "alice", AccessToken: "tok"})
	}

	t.Run("failed confirmation keeps the pending row and shows an alert", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/clubs/1/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, upstreamClub())
		})
		mux.HandleFunc("GET /api/clubs/1/events/7/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, upstreamEvent())
		})
		mux.HandleFunc("PATCH /api/events/7/participants/1/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		h := newPageHandler(t, mux)

		rr := httptest.NewRecorder()
		h.UpdateParticipant(rr, newRequest())

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		body := rr.Body.String()
		if !strings.Contains(body, "Pending confirmation") {
			t.Error("re-rendered page should still show the pending payment status")
		}
		if !strings.Contains(body, "Failed to update the payment status") {
			t.Error("re-rendered page should carry the alert banner")
		}
		if strings.Contains(body, "Revoke confirmation") {
			t.Error("the row must not render as confirmed after a failed update")
		}
	})

	t.Run("successful confirmation redirects back to the event", func(t *testing.T) {
		var patched bool
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/clubs/1/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, upstreamClub())
		})
		mux.HandleFunc("PATCH /api/events/7/participants/1/", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			if body["payment_status"] != clubapi.PaymentStatusConfirmed {
				t.Errorf("payment_status = %q", body["payment_status"])
			}
			patched = true
		})
		h := newPageHandler(t, mux)

		rr := httptest.NewRecorder()
		h.UpdateParticipant(rr, newRequest())

		if !patched {
			t.Error("expected the upstream PATCH to be sent")
		}
		if rr.Code != http.StatusFound {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
		}
		if got := rr.Header().Get("Location"); got != "/clubs/1/events/7" {
			t.Errorf("Location = %q", got)
		}
	})

	t.Run("non-manager is rejected", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/clubs/1/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, upstreamClub())
		})
		h := newPageHandler(t, mux)

		r := newRequest()
		r = withSession(r, database.Session{ID: "s2", UserID: 11, Username: "bob", AccessToken: "tok"})
		rr := httptest.NewRecorder()
		h.UpdateParticipant(rr, r)

		if rr.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusForbidden)
		}
	})
}

func TestEventStaleTokenRetry(t *testing.T) {
	var anonymous bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/clubs/1/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		anonymous = true
		writeJSON(t, w, upstreamClub())
	})
	mux.HandleFunc("GET /api/clubs/1/events/7/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		event := upstreamEvent()
		event.IsPublic = true
		writeJSON(t, w, event)
	})
	h := newPageHandler(t, mux)

	r := httptest.NewRequest(http.MethodGet, "/clubs/1/events/7", nil)
	r.SetPathValue("club_id", "1")
	r.SetPathValue("event_id", "7")
	r = withSession(r, database.Session{AccessToken: "stale"})

	rr := httptest.NewRecorder()
	h.Event(rr, r)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !anonymous {
		t.Error("expected an anonymous retry after the stale token was rejected")
	}
	if body := rr.Body.String(); !strings.Contains(body, "Blitz Night") {
		t.Error("page should render the event after the anonymous retry")
	}
}

func TestUpdateClubRequiresPresident(t *testing.T) {
	newRequest := func(session database.Session) *http.Request {
		form := url.Values{
			"name":        {"Chess Club"},
			"description": {"We play chess."},
			"max_member":  {"30"},
		}
		r := httptest.NewRequest(http.MethodPost, "/clubs/1", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.SetPathValue("club_id", "1")
		return withSession(r, session)
	}

	t.Run("plain member is rejected", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/clubs/1/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, upstreamClub())
		})
		h := newPageHandler(t, mux)

		rr := httptest.NewRecorder()
		h.UpdateClub(rr, newRequest(database.Session{ID: "s2", UserID: 11, Username: "bob", AccessToken: "tok"}))

		if rr.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusForbidden)
		}
	})

	t.Run("officer without the president position is rejected", func(t *testing.T) {
		club := upstreamClub()
		club.Members[1].Position = clubapi.PositionFinanceOfficer
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/clubs/1/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, club)
		})
		h := newPageHandler(t, mux)

		rr := httptest.NewRecorder()
		h.UpdateClub(rr, newRequest(database.Session{ID: "s2", UserID: 11, Username: "bob", AccessToken: "tok"}))

		if rr.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusForbidden)
		}
	})

	t.Run("president saves and is redirected", func(t *testing.T) {
		var patched bool
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/clubs/1/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, upstreamClub())
		})
		mux.HandleFunc("PATCH /api/clubs/1/", func(w http.ResponseWriter, r *http.Request) {
			patched = true
			writeJSON(t, w, upstreamClub())
		})
		h := newPageHandler(t, mux)

		rr := httptest.NewRecorder()
		h.UpdateClub(rr, newRequest(database.Session{ID: "s1", UserID: 10, Username: "alice", AccessToken: "tok"}))

		if !patched {
			t.Error("expected the upstream PATCH to be sent")
		}
		if rr.Code != http.StatusFound {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
		}
		if got := rr.Header().Get("Location"); got != "/clubs/1" {
			t.Errorf("Location = %q", got)
		}
	})
}
