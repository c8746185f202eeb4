package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

const maxClubImageSize = 5 << 20

type NewClubVars struct {
	Viewer    Viewer
	Draft     ClubDraft
	FormError string
}

func (h *handler) NewClub(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

	if err := h.Templates().ExecuteTemplate(w, "club_new.gohtml", NewClubVars{
		Viewer: viewerFromSession(session),
		Draft:  ClubDraft{MaxMember: 20},
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render new club template", slog.Any("err", err))
	}
}

// CreateClub submits a new club for admin review. The image is optional and
// streamed through as-is; the API stores it.
func (h *handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

	if err := r.ParseMultipartForm(maxClubImageSize); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	draft := ClubDraft{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		MaxMember:   formInt(r, "max_member"),
	}

	var image io.Reader
	var imageName string
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		image = file
		imageName = header.Filename
	} else if !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, "Invalid image upload", http.StatusBadRequest)
		return
	}

	var formError string
	switch {
	case draft.Name == "":
		formError = "Club name must not be empty."
	case len(draft.Name) > 100:
		formError = "Club name must be at most 100 characters."
	case len(draft.Description) > 500:
		formError = "Description must be at most 500 characters."
	case draft.MaxMember < 20 || draft.MaxMember > 500:
		formError = "Member limit must be between 20 and 500."
	}

	if formError == "" {
		if _, err := h.Client.CreateClub(ctx, session.AccessToken, clubapi.ClubDraft(draft), image, imageName); err != nil {
			if errors.Is(err, clubapi.ErrUnauthorized) {
				h.expireSession(w, r)
				h.forceLogin(w, r)
				return
			}
			slog.ErrorContext(ctx, "Failed to create club", slog.Any("err", err))
			formError = "Failed to create the club. Please try again later."
		} else {
			// the new club is pending review, so it only shows up under my clubs
			http.Redirect(w, r, "/my-clubs", http.StatusFound)
			return
		}
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	if err = h.Templates().ExecuteTemplate(w, "club_new.gohtml", NewClubVars{
		Viewer:    viewerFromSession(session),
		Draft:     draft,
		FormError: formError,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render new club template", slog.Any("err", err))
	}
}
