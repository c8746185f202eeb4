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

type ClubCard struct {
	ID          int
	URL         string
	Name        string
	Description string
	MemberCount string
	Status      string
}

type IndexVars struct {
	Viewer Viewer
	Query  string
	Clubs  Page[ClubCard]
}

// Index renders the public club list: active clubs only, searchable and
// paginated client-side because the collection is small.
func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	query := r.URL.Query()
	search := xquery.ParseString(query, "q", "")
	page := xquery.ParseInt(query, "page", 1)

	clubs, err := h.Client.GetClubs(ctx, session.AccessToken)
	if errors.Is(err, clubapi.ErrUnauthorized) && session.AccessToken != "" {
		// Stale token. Reset the session and retry anonymously; the public
		// list does not need one.
		h.expireSession(w, r)
		viewer = Viewer{}
		clubs, err = h.Client.GetClubs(ctx, "")
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch clubs", slog.Any("err", err))
		h.renderError(w, r, http.StatusInternalServerError, viewer, "Failed to load clubs. Please try again later.")
		return
	}

	filtered := filterClubs(activeClubs(clubs), search)
	cards := make([]ClubCard, len(filtered))
	for i, club := range filtered {
		cards[i] = ClubCard{
			ID:          club.ID,
			URL:         fmt.Sprintf("/clubs/%d", club.ID),
			Name:        club.Name,
			Description: club.Description,
			MemberCount: fmt.Sprintf("%d/%d", club.MemberCount.Current, club.MemberCount.Max),
			Status:      club.Status,
		}
	}

	if err = h.Templates().ExecuteTemplate(w, "index.gohtml", IndexVars{
		Viewer: viewer,
		Query:  search,
		Clubs:  paginate(cards, page, clubListPageSize),
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render index template", slog.Any("err", err))
	}
}
