package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

// UpdateParticipant confirms or revokes a participant's payment. On failure
// the page comes back with the statuses the API still holds plus an alert, so
// the manager never sees a confirmation that did not stick.
func (h *handler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

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
	participantID, ok := pathID(r, "participant_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	club, err := h.Client.GetClub(ctx, session.AccessToken, clubID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch club", slog.Int("club_id", clubID), slog.Any("err", err))
		h.renderEventAlert(w, r, clubID, eventID, "Failed to update the payment status. Please try again later.")
		return
	}
	if role := clubapi.DeriveRole(club.Members, session.UserID); !role.IsManager {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	status := r.FormValue("payment_status")
	if !slices.Contains([]string{
		clubapi.PaymentStatusConfirmed,
		clubapi.PaymentStatusPending,
	}, status) {
		http.Error(w, "Invalid payment status", http.StatusBadRequest)
		return
	}

	if err = h.Client.UpdateParticipant(ctx, session.AccessToken, eventID, participantID, status); err != nil {
		slog.ErrorContext(ctx, "Failed to update participant", slog.Int("participant_id", participantID), slog.Any("err", err))
		h.renderEventAlert(w, r, clubID, eventID, "Failed to update the payment status. Please try again later.")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/clubs/%d/events/%d", clubID, eventID), http.StatusFound)
}
