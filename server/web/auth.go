package web

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/database"
)

// sessionPaths are page prefixes that only make sense for a logged-in viewer.
var sessionPaths = []string{"/my-clubs", "/account", "/clubs/new"}

func needsSession(path string) bool {
	for _, p := range sessionPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (h *handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var session *database.Session
		cookie, err := r.Cookie("session")
		if err != nil && !errors.Is(err, http.ErrNoCookie) {
			slog.ErrorContext(ctx, "failed to get session cookie", slog.Any("err", err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if cookie != nil {
			session, err = h.DB.GetSession(ctx, cookie.Value)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) || errors.Is(err, database.ErrSessionExpired) {
					removeSessionCookie(w)
					session = nil
				} else {
					slog.ErrorContext(ctx, "failed to get session", slog.Any("err", err))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
			}
		}

		if session == nil {
			if needsSession(r.URL.Path) {
				h.forceLogin(w, r)
				return
			}
			session = &database.Session{}
		}

		r = r.WithContext(auth.SetSession(ctx, *session))
		next.ServeHTTP(w, r)
	})
}

func (h *handler) forceLogin(w http.ResponseWriter, r *http.Request) {
	u := url.URL{
		Path:     "/login",
		RawQuery: url.Values{"rd": {r.URL.Path}}.Encode(),
	}
	http.Redirect(w, r, u.String(), http.StatusFound)
}

// expireSession is the single place where an invalid upstream token is turned
// back into a logged-out viewer: the session row and cookie are cleared
// together.
func (h *handler) expireSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session := auth.GetSession(r)
	if session.ID != "" {
		if err := h.DB.DeleteSession(ctx, session.ID); err != nil {
			slog.ErrorContext(ctx, "failed to delete expired session", slog.Any("err", err))
		}
	}
	removeSessionCookie(w)
}

func addSessionCookie(w http.ResponseWriter, session string, expiration time.Time) {
	cookie := http.Cookie{
		Name:     "session",
		Value:    session,
		Expires:  expiration,
		SameSite: http.SameSiteLaxMode,
		Secure:   false, // Can use via http reqs
		HttpOnly: true,  // Can't be accessed by JS
		Path:     "/",
	}

	http.SetCookie(w, &cookie)
}

func removeSessionCookie(w http.ResponseWriter) {
	cookie := http.Cookie{
		Name:     "session",
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
		HttpOnly: true,
		Path:     "/",
	}

	http.SetCookie(w, &cookie)
}
