package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

// JoinEvent registers the viewer for an activity with their chosen payment
// method. Free activities skip the method entirely.
func (h *handler) JoinEvent(w http.ResponseWriter, r *http.Request) {
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

	if session.UserID == 0 {
		h.forceLogin(w, r)
		return
	}

	event, err := h.Client.GetEvent(ctx, session.AccessToken, clubID, eventID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch event", slog.Int("event_id", eventID), slog.Any("err", err))
		h.renderEventAlert(w, r, clubID, eventID, "Failed to sign up. Please try again later.")
		return
	}

	var method string
	if event.Fee > 0 {
		method = r.FormValue("payment_method")
		switch method {
		case clubapi.PaymentMethodCash:
			if !event.PaymentMethods.Cash.Enabled {
				h.renderEventAlert(w, r, clubID, eventID, "Cash payment is not available for this activity.")
				return
			}
		case clubapi.PaymentMethodBank:
			if !event.PaymentMethods.BankTransfer.Enabled {
				h.renderEventAlert(w, r, clubID, eventID, "Bank transfer is not available for this activity.")
				return
			}
		default:
			h.renderEventAlert(w, r, clubID, eventID, "Please choose a payment method.")
			return
		}
	}

	if err = h.Client.JoinEvent(ctx, session.AccessToken, eventID, method); err != nil {
		slog.ErrorContext(ctx, "Failed to join event", slog.Int("event_id", eventID), slog.Any("err", err))
		h.renderEventAlert(w, r, clubID, eventID, "Failed to sign up. Please try again later.")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/clubs/%d/events/%d", clubID, eventID), http.StatusFound)
}
