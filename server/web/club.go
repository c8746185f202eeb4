package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xquery"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xtime"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/database"
)

type MemberRow struct {
	MembershipID int
	Username     string
	Position     string
	Status       string
	IsManager    bool
}

type ActivityRow struct {
	ID        int
	URL       string
	Name      string
	StartDate xtime.Date
	EndDate   xtime.Date
	Fee       int
	Status    string
}

// MembershipAction is the single state-dependent button the viewer gets for
// their own membership.
type MembershipAction struct {
	Label        string
	Action       string
	MembershipID int
}

type ClubDraft struct {
	Name        string
	Description string
	MaxMember   int
}

type ClubVars struct {
	Viewer         Viewer
	ID             int
	Name           string
	Description    string
	FoundationDate string
	Status         string
	MemberCount    string
	PresidentName  string
	Members        []MemberRow
	Activities     []ActivityRow
	IsMember       bool
	IsManager      bool
	CanEditInfo    bool
	Action         *MembershipAction
	Positions      []string
	Editing        bool
	Draft          ClubDraft
	FormError      string
	Alert          string
}

func (h *handler) Club(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	club, err := h.fetchClub(ctx, w, r, &session, clubID)
	if err != nil {
		if errors.Is(err, clubapi.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		slog.ErrorContext(ctx, "Failed to fetch club", slog.Int("club_id", clubID), slog.Any("err", err))
		h.renderError(w, r, http.StatusInternalServerError, viewer, "Failed to load club details. Please try again later.")
		return
	}
	viewer = viewerFromSession(session)

	vars := h.clubVars(viewer, session.UserID, club)
	vars.Editing = xquery.ParseBool(r.URL.Query(), "edit", false) && vars.CanEditInfo

	if err = h.Templates().ExecuteTemplate(w, "club.gohtml", vars); err != nil {
		slog.ErrorContext(ctx, "Failed to render club template", slog.Int("club_id", clubID), slog.Any("err", err))
	}
}

// fetchClub reads one club, falling back to an anonymous retry when the
// session token turns out to be stale. The session is zeroed in that case so
// the caller rebuilds the viewer.
func (h *handler) fetchClub(ctx context.Context, w http.ResponseWriter, r *http.Request, session *database.Session, clubID int) (*clubapi.Club, error) {
	club, err := h.Client.GetClub(ctx, session.AccessToken, clubID)
	if errors.Is(err, clubapi.ErrUnauthorized) && session.AccessToken != "" {
		h.expireSession(w, r)
		*session = database.Session{}
		club, err = h.Client.GetClub(ctx, "", clubID)
	}
	return club, err
}

func (h *handler) clubVars(viewer Viewer, userID int, club *clubapi.Club) ClubVars {
	role := clubapi.DeriveRole(club.Members, userID)

	members := make([]MemberRow, len(club.Members))
	for i, m := range club.Members {
		members[i] = MemberRow{
			MembershipID: m.ID,
			Username:     m.Username,
			Position:     m.Position,
			Status:       m.Status,
			IsManager:    clubapi.IsManager(m),
		}
	}

	activities := make([]ActivityRow, len(club.Activities))
	for i, a := range club.Activities {
		activities[i] = ActivityRow{
			ID:        a.ID,
			URL:       fmt.Sprintf("/clubs/%d/events/%d", club.ID, a.ID),
			Name:      a.Name,
			StartDate: a.StartDate,
			EndDate:   a.EndDate,
			Fee:       a.Fee,
			Status:    a.Status,
		}
	}

	var action *MembershipAction
	switch {
	case userID == 0:
		// anonymous viewers get no membership button at all
	case role.Membership == nil:
		action = &MembershipAction{Label: "Request to join", Action: "join"}
	case role.Status == clubapi.MembershipStatusPending:
		action = &MembershipAction{Label: "Withdraw request", Action: "leave", MembershipID: role.Membership.ID}
	case role.IsMember:
		action = &MembershipAction{Label: "Leave club", Action: "leave", MembershipID: role.Membership.ID}
	}

	canEditInfo := role.IsManager && role.Membership != nil && role.Membership.Position == clubapi.PositionPresident

	return ClubVars{
		Viewer:         viewer,
		ID:             club.ID,
		Name:           club.Name,
		Description:    club.Description,
		FoundationDate: club.FoundationDate.String(),
		Status:         club.Status,
		MemberCount:    fmt.Sprintf("%d/%d", clubapi.AcceptedMemberCount(club.Members), club.MaxMember),
		PresidentName:  club.PresidentName,
		Members:        members,
		Activities:     activities,
		IsMember:       role.IsMember,
		IsManager:      role.IsManager,
		CanEditInfo:    canEditInfo,
		Action:         action,
		Positions:      append([]string{clubapi.PositionMember}, clubapi.ManagerPositions...),
		Draft: ClubDraft{
			Name:        club.Name,
			Description: club.Description,
			MaxMember:   club.MaxMember,
		},
	}
}

// UpdateClub saves the club info draft. On failure the edit form stays open
// with a static message and the draft intact.
func (h *handler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	clubID, ok := pathID(r, "club_id")
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

	// the API enforces this too; the gate keeps non-presidents from even trying
	role := clubapi.DeriveRole(club.Members, session.UserID)
	if role.Membership == nil || role.Membership.Position != clubapi.PositionPresident {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	draft := ClubDraft{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		MaxMember:   formInt(r, "max_member"),
	}

	var formError string
	if draft.Name == "" {
		formError = "Club name must not be empty."
	} else if draft.MaxMember < 1 {
		formError = "Member limit must be at least 1."
	}

	if formError == "" {
		patch := clubapi.ClubPatch{
			Name:        &draft.Name,
			Description: &draft.Description,
			MaxMember:   &draft.MaxMember,
		}
		if _, err = h.Client.UpdateClub(ctx, session.AccessToken, clubID, patch); err != nil {
			slog.ErrorContext(ctx, "Failed to update club", slog.Int("club_id", clubID), slog.Any("err", err))
			formError = "Failed to save club info. Please try again later."
		}
	}

	if formError == "" {
		// refetch on write: the API is the source of truth
		http.Redirect(w, r, fmt.Sprintf("/clubs/%d", clubID), http.StatusFound)
		return
	}

	vars := h.clubVars(viewer, session.UserID, club)
	vars.Editing = true
	vars.Draft = draft
	vars.FormError = formError

	if err = h.Templates().ExecuteTemplate(w, "club.gohtml", vars); err != nil {
		slog.ErrorContext(ctx, "Failed to render club template", slog.Int("club_id", clubID), slog.Any("err", err))
	}
}
