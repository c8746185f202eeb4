package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xquery"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

type MyClubRow struct {
	ID             int
	URL            string
	Name           string
	PresidentName  string
	MemberCount    string
	Role           string
	Status         string
	FoundationDate string
}

type MyClubsVars struct {
	Viewer       Viewer
	Clubs        Page[MyClubRow]
	PendingClubs []MyClubRow
}

// MyClubs lists the clubs the viewer belongs to. Admins additionally get the
// clubs waiting for approval.
func (h *handler) MyClubs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	page := xquery.ParseInt(r.URL.Query(), "page", 1)

	clubs, err := h.Client.GetMyClubs(ctx, session.AccessToken)
	if err != nil {
		if errors.Is(err, clubapi.ErrUnauthorized) {
			h.expireSession(w, r)
			h.forceLogin(w, r)
			return
		}
		slog.ErrorContext(ctx, "Failed to fetch my clubs", slog.Any("err", err))
		h.renderError(w, r, http.StatusInternalServerError, viewer, "Failed to load your clubs. Please try again later.")
		return
	}

	rows := make([]MyClubRow, len(clubs))
	for i, club := range clubs {
		rows[i] = myClubRow(club, session.UserID)
	}

	var pending []MyClubRow
	if viewer.IsAdmin {
		for _, club := range clubs {
			if club.Status == clubapi.ClubStatusPending {
				pending = append(pending, myClubRow(club, session.UserID))
			}
		}
	}

	if err = h.Templates().ExecuteTemplate(w, "my_clubs.gohtml", MyClubsVars{
		Viewer:       viewer,
		Clubs:        paginate(rows, page, myClubsPageSize),
		PendingClubs: pending,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render my clubs template", slog.Any("err", err))
	}
}

func myClubRow(club clubapi.Club, userID int) MyClubRow {
	role := "-"
	if r := clubapi.DeriveRole(club.Members, userID); r.Membership != nil {
		switch {
		case r.Status == clubapi.MembershipStatusRejected:
			role = "Rejected"
		case r.Status == clubapi.MembershipStatusPending:
			role = "Pending review"
		case r.Membership.Position != "":
			role = r.Membership.Position
		case r.IsManager:
			role = clubapi.PositionPresident
		default:
			role = clubapi.PositionMember
		}
	}

	return MyClubRow{
		ID:             club.ID,
		URL:            fmt.Sprintf("/clubs/%d", club.ID),
		Name:           club.Name,
		PresidentName:  club.PresidentName,
		MemberCount:    fmt.Sprintf("%d/%d", club.MemberCount.Current, club.MemberCount.Max),
		Role:           role,
		Status:         club.Status,
		FoundationDate: club.FoundationDate.String(),
	}
}
