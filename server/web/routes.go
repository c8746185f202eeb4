package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/middlewares"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server"
)

type handler struct {
	*server.Server
}

func Routes(srv *server.Server) http.Handler {
	h := &handler{
		Server: srv,
	}

	fileServer := http.FileServer(h.StaticFS)
	var fs http.Handler
	if srv.Cfg.Dev {
		fs = fileServer
	} else {
		fs = middlewares.Cache(fileServer)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)

	mux.HandleFunc("GET  /login", h.Login)
	mux.HandleFunc("POST /login", h.DoLogin)
	mux.HandleFunc("GET  /register", h.Register)
	mux.HandleFunc("POST /register", h.DoRegister)
	mux.HandleFunc("POST /logout", h.Logout)

	mux.HandleFunc("GET /my-clubs", h.MyClubs)

	mux.HandleFunc("GET  /clubs/new", h.NewClub)
	mux.HandleFunc("POST /clubs/new", h.CreateClub)

	mux.HandleFunc("GET  /clubs/{club_id}", h.Club)
	mux.HandleFunc("POST /clubs/{club_id}", h.UpdateClub)
	mux.HandleFunc("POST /clubs/{club_id}/approve", h.ApproveClub)
	mux.HandleFunc("POST /clubs/{club_id}/join", h.JoinClub)
	mux.HandleFunc("POST /clubs/{club_id}/leave", h.LeaveClub)
	mux.HandleFunc("POST /clubs/{club_id}/members/{membership_id}", h.UpdateMember)

	mux.HandleFunc("GET  /clubs/{club_id}/events/new", h.NewEvent)
	mux.HandleFunc("POST /clubs/{club_id}/events/new", h.CreateEvent)
	mux.HandleFunc("GET  /clubs/{club_id}/events/{event_id}", h.Event)
	mux.HandleFunc("GET  /clubs/{club_id}/events/{event_id}/edit", h.EditEvent)
	mux.HandleFunc("POST /clubs/{club_id}/events/{event_id}/edit", h.UpdateEvent)
	mux.HandleFunc("POST /clubs/{club_id}/events/{event_id}/join", h.JoinEvent)
	mux.HandleFunc("POST /clubs/{club_id}/events/{event_id}/participants/{participant_id}", h.UpdateParticipant)
	mux.HandleFunc("GET  /clubs/{club_id}/events/{event_id}/code.png", h.EventQRCode)

	mux.HandleFunc("GET  /account", h.Account)
	mux.HandleFunc("POST /account", h.UpdateAccount)
	mux.HandleFunc("POST /account/password", h.ChangePassword)

	mux.Handle("GET  /static/", fs)
	mux.Handle("HEAD /static/", fs)

	if srv.Cfg.Dev {
		mux.HandleFunc("GET /dev/reload", h.DevReload)
	}

	mux.HandleFunc("/", h.NotFound)

	return cleanPath(h.auth(mux))
}

func (h *handler) NotFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	w.WriteHeader(http.StatusNotFound)
	if err := h.Templates().ExecuteTemplate(w, "not_found.gohtml", nil); err != nil {
		slog.ErrorContext(ctx, "Failed to render not found template", slog.Any("err", err))
	}
}

func cleanPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = path.Clean(r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// DevReload streams server-sent events that instruct the browser to refresh
// whenever the dev watcher picks up a change on disk. The SSE connection stays
// open until the client disconnects or the server shuts down.
func (h *handler) DevReload(w http.ResponseWriter, r *http.Request) {
	if h.ReloadNotifier == nil {
		http.NotFound(w, r)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	cancel, ch := h.ReloadNotifier.Subscribe()
	if ch == nil {
		w.WriteHeader(http.StatusGone)
		return
	}
	defer cancel()

	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			if _, err := fmt.Fprint(w, "data: reload\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
