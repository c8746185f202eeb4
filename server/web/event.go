package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/tsync"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xtime"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/database"
)

// MethodOption is one selectable payment method with its display details.
type MethodOption struct {
	Value  string
	Label  string
	Detail string
}

type ParticipantRow struct {
	ID       int
	Username string
	Method   string
	Status   string
	Settled  bool
}

type EventVars struct {
	Viewer           Viewer
	ClubID           int
	ClubName         string
	ClubURL          string
	ID               int
	Name             string
	Description      string
	Status           string
	Fee              int
	Quota            int
	StartDate        xtime.Date
	EndDate          xtime.Date
	HasPaymentWindow bool
	PaymentStartDate xtime.Date
	PaymentEndDate   xtime.Date
	IsPublic         bool
	IsManager        bool
	CanEdit          bool
	CanJoin          bool
	Joined           bool
	MyStatus         string
	Methods          []MethodOption
	Participants     []ParticipantRow
	QRCodeURL        string
	ShareURL         string
	Alert            string
}

func (h *handler) Event(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	eventID, ok := pathID(r, "event_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	club, event, err := h.fetchEvent(ctx, w, r, &session, clubID, eventID)
	if err != nil {
		if errors.Is(err, clubapi.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		slog.ErrorContext(ctx, "Failed to fetch event", slog.Int("club_id", clubID), slog.Int("event_id", eventID), slog.Any("err", err))
		h.renderError(w, r, http.StatusInternalServerError, viewer, "Failed to load the activity. Please try again later.")
		return
	}
	viewer = viewerFromSession(session)

	vars := h.eventVars(viewer, session.UserID, club, event)
	if err = h.Templates().ExecuteTemplate(w, "event.gohtml", vars); err != nil {
		slog.ErrorContext(ctx, "Failed to render event template", slog.Int("event_id", eventID), slog.Any("err", err))
	}
}

// fetchEvent loads the event together with its club, falling back to an
// anonymous retry on a stale token the same way fetchClub does. The session is
// zeroed in that case so the caller rebuilds the viewer.
func (h *handler) fetchEvent(ctx context.Context, w http.ResponseWriter, r *http.Request, session *database.Session, clubID int, eventID int) (*clubapi.Club, *clubapi.Event, error) {
	club, event, err := h.getClubEvent(ctx, session.AccessToken, clubID, eventID)
	if errors.Is(err, clubapi.ErrUnauthorized) && session.AccessToken != "" {
		h.expireSession(w, r)
		*session = database.Session{}
		club, event, err = h.getClubEvent(ctx, "", clubID, eventID)
	}
	return club, event, err
}

func (h *handler) getClubEvent(ctx context.Context, token string, clubID int, eventID int) (*clubapi.Club, *clubapi.Event, error) {
	eg, ctx := tsync.ErrorGroupWithContext(ctx)

	var club *clubapi.Club
	eg.Go(func() error {
		var err error
		club, err = h.Client.GetClub(ctx, token, clubID)
		return err
	})

	var event *clubapi.Event
	eg.Go(func() error {
		var err error
		event, err = h.Client.GetEvent(ctx, token, clubID, eventID)
		return err
	})

	if err := eg.Wait(); err != nil {
		if errors.Is(err, clubapi.ErrNotFound) {
			return nil, nil, clubapi.ErrNotFound
		}
		if errors.Is(err, clubapi.ErrUnauthorized) {
			return nil, nil, clubapi.ErrUnauthorized
		}
		return nil, nil, err
	}
	if event.Club != club.ID {
		return nil, nil, clubapi.ErrNotFound
	}
	return club, event, nil
}

func (h *handler) eventVars(viewer Viewer, userID int, club *clubapi.Club, event *clubapi.Event) EventVars {
	role := clubapi.DeriveRole(club.Members, userID)
	participation := clubapi.FindParticipation(event.Participants, userID)

	var methods []MethodOption
	if event.Fee > 0 {
		if event.PaymentMethods.Cash.Enabled {
			methods = append(methods, MethodOption{
				Value:  clubapi.PaymentMethodCash,
				Label:  "Cash",
				Detail: event.PaymentMethods.Cash.Remark,
			})
		}
		if bank := event.PaymentMethods.BankTransfer; bank.Enabled {
			methods = append(methods, MethodOption{
				Value:  clubapi.PaymentMethodBank,
				Label:  "Bank transfer",
				Detail: fmt.Sprintf("%s %s (%s)", bank.Bank, bank.AccountNumber, bank.AccountName),
			})
		}
	}

	canJoin := userID != 0 &&
		participation == nil &&
		event.Status == clubapi.EventStatusOpen &&
		(event.IsPublic || role.IsMember) &&
		(event.Quota == 0 || len(event.Participants) < event.Quota)

	var participants []ParticipantRow
	if role.IsManager {
		participants = make([]ParticipantRow, len(event.Participants))
		for i, p := range event.Participants {
			participants[i] = ParticipantRow{
				ID:       p.ID,
				Username: p.Username,
				Method:   p.PaymentMethod,
				Status:   p.PaymentStatus,
				Settled:  p.Settled(),
			}
		}
	}

	vars := EventVars{
		Viewer:           viewer,
		ClubID:           club.ID,
		ClubName:         club.Name,
		ClubURL:          fmt.Sprintf("/clubs/%d", club.ID),
		ID:               event.ID,
		Name:             event.Name,
		Description:      event.Description,
		Status:           event.Status,
		Fee:              event.Fee,
		Quota:            event.Quota,
		StartDate:        event.StartDate,
		EndDate:          event.EndDate,
		HasPaymentWindow: event.HasPaymentWindow(),
		PaymentStartDate: event.PaymentStartDate,
		PaymentEndDate:   event.PaymentEndDate,
		IsPublic:         event.IsPublic,
		IsManager:        role.IsManager,
		CanEdit:          role.IsManager,
		CanJoin:          canJoin,
		Methods:          methods,
		Participants:     participants,
		QRCodeURL:        fmt.Sprintf("/clubs/%d/events/%d/code.png", club.ID, event.ID),
		ShareURL:         fmt.Sprintf("%s/clubs/%d/events/%d", h.Cfg.Server.PublicURL, club.ID, event.ID),
	}
	if participation != nil {
		vars.Joined = true
		vars.MyStatus = participation.PaymentStatus
	}
	return vars
}

// renderEventAlert re-renders the event page with its unchanged server-side
// state and a blocking alert message.
func (h *handler) renderEventAlert(w http.ResponseWriter, r *http.Request, clubID int, eventID int, message string) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	club, event, err := h.fetchEvent(ctx, w, r, &session, clubID, eventID)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, viewer, message)
		return
	}
	viewer = viewerFromSession(session)

	vars := h.eventVars(viewer, session.UserID, club, event)
	vars.Alert = message

	if err = h.Templates().ExecuteTemplate(w, "event.gohtml", vars); err != nil {
		slog.ErrorContext(ctx, "Failed to render event template", slog.Int("event_id", eventID), slog.Any("err", err))
	}
}
