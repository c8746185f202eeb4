package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/database"
)

// Viewer is the session-derived identity every page template receives for the
// navigation bar and role gating.
type Viewer struct {
	LoggedIn bool
	UserID   int
	Username string
	IsAdmin  bool
}

func viewerFromSession(session database.Session) Viewer {
	return Viewer{
		LoggedIn: session.ID != "",
		UserID:   session.UserID,
		Username: session.Username,
		IsAdmin:  session.IsAdmin,
	}
}

type ErrorVars struct {
	Viewer  Viewer
	Message string
}

// renderError is the terminal error banner for failed reads: no retry button,
// just a message.
func (h *handler) renderError(w http.ResponseWriter, r *http.Request, status int, viewer Viewer, message string) {
	ctx := r.Context()

	w.WriteHeader(status)
	if err := h.Templates().ExecuteTemplate(w, "error.gohtml", ErrorVars{
		Viewer:  viewer,
		Message: message,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render error template", slog.Any("err", err))
	}
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formInt coerces a numeric form field, defaulting to 0 on non-numeric input.
func formInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(strings.TrimSpace(r.FormValue(name)))
	if err != nil {
		return 0
	}
	return value
}
