package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

// JoinClub requests membership in a club on behalf of the viewer.
func (h *handler) JoinClub(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	if session.UserID == 0 {
		h.forceLogin(w, r)
		return
	}

	if err := h.Client.JoinClub(ctx, session.AccessToken, clubID); err != nil {
		slog.ErrorContext(ctx, "Failed to join club", slog.Int("club_id", clubID), slog.Any("err", err))
		h.renderClubAlert(w, r, clubID, "Failed to send join request. Please try again later.")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/clubs/%d", clubID), http.StatusFound)
}

// LeaveClub withdraws a pending request or leaves a joined club, depending on
// the current membership status. Both map to the same membership delete.
func (h *handler) LeaveClub(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	membershipID := formInt(r, "membership_id")
	if session.UserID == 0 || membershipID == 0 {
		h.forceLogin(w, r)
		return
	}

	if err := h.Client.DeleteMembership(ctx, session.AccessToken, membershipID); err != nil {
		slog.ErrorContext(ctx, "Failed to delete membership", slog.Int("membership_id", membershipID), slog.Any("err", err))
		h.renderClubAlert(w, r, clubID, "Failed to update your membership. Please try again later.")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/clubs/%d", clubID), http.StatusFound)
}

// UpdateMember changes another member's status or position. Manager only; the
// API enforces it too, this is just the affordance gate.
func (h *handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	membershipID, ok := pathID(r, "membership_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	club, err := h.Client.GetClub(ctx, session.AccessToken, clubID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch club", slog.Int("club_id", clubID), slog.Any("err", err))
		h.renderError(w, r, http.StatusInternalServerError, viewer, "Failed to load club details. Please try again later.")
		return
	}

	if role := clubapi.DeriveRole(club.Members, session.UserID); !role.IsManager {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var patch clubapi.MembershipPatch
	if status := r.FormValue("status"); status != "" {
		if !slices.Contains([]string{
			clubapi.MembershipStatusAccepted,
			clubapi.MembershipStatusRejected,
		}, status) {
			http.Error(w, "Invalid status", http.StatusBadRequest)
			return
		}
		patch.Status = &status
	}
	if position := r.FormValue("position"); position != "" {
		if position != clubapi.PositionMember && !slices.Contains(clubapi.ManagerPositions, position) {
			http.Error(w, "Invalid position", http.StatusBadRequest)
			return
		}
		patch.Position = &position
	}

	if err = h.Client.UpdateMembership(ctx, session.AccessToken, membershipID, patch); err != nil {
		slog.ErrorContext(ctx, "Failed to update membership", slog.Int("membership_id", membershipID), slog.Any("err", err))
		h.renderClubAlert(w, r, clubID, "Failed to update the member. Please try again later.")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/clubs/%d", clubID), http.StatusFound)
}

// ApproveClub handles the admin approval actions on a pending club.
func (h *handler) ApproveClub(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	if !session.IsAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	action := r.FormValue("action")
	if !slices.Contains([]string{
		clubapi.ClubActionApprove,
		clubapi.ClubActionReject,
		clubapi.ClubActionSuspend,
		clubapi.ClubActionDisband,
	}, action) {
		http.Error(w, "Invalid action", http.StatusBadRequest)
		return
	}

	if err := h.Client.ApproveClub(ctx, session.AccessToken, clubID, action); err != nil {
		slog.ErrorContext(ctx, "Failed to change club status", slog.Int("club_id", clubID), slog.String("action", action), slog.Any("err", err))
		h.renderClubAlert(w, r, clubID, "Failed to change the club status. Please try again later.")
		return
	}

	http.Redirect(w, r, "/my-clubs", http.StatusFound)
}

// renderClubAlert re-renders the club detail with the state the API still
// holds plus a blocking alert message.
func (h *handler) renderClubAlert(w http.ResponseWriter, r *http.Request, clubID int, message string) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	club, err := h.Client.GetClub(ctx, session.AccessToken, clubID)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, viewer, message)
		return
	}

	vars := h.clubVars(viewer, session.UserID, club)
	vars.Alert = message

	if err = h.Templates().ExecuteTemplate(w, "club.gohtml", vars); err != nil {
		slog.ErrorContext(ctx, "Failed to render club template", slog.Int("club_id", clubID), slog.Any("err", err))
	}
}
