package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/database"
)

type LoginVars struct {
	Redirect string
	Notice   string
	Error    string
}

func (h *handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Templates().ExecuteTemplate(w, "login.gohtml", LoginVars{
		Redirect: r.URL.Query().Get("rd"),
		Notice:   r.URL.Query().Get("notice"),
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render login template", slog.Any("err", err))
	}
}

func (h *handler) DoLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	redirect := r.FormValue("rd")
	if redirect == "" {
		redirect = "/"
	}

	if username == "" || password == "" {
		h.renderLoginError(w, r, redirect, "Please enter both username and password.")
		return
	}

	resp, err := h.Client.Login(ctx, username, password)
	if err != nil {
		slog.ErrorContext(ctx, "Login failed", slog.String("username", username), slog.Any("err", err))
		h.renderLoginError(w, r, redirect, "Login failed. Please check your username and password.")
		return
	}

	now := time.Now()
	expiration := now.Add(auth.MaxSessionDuration)
	sessionID := auth.RandomStr(32)
	if err = h.DB.CreateSession(ctx, database.Session{
		ID:          sessionID,
		CreatedAt:   now,
		ExpiresAt:   expiration,
		AccessToken: resp.Access,
		UserID:      resp.User.ID,
		Username:    resp.User.Username,
		IsAdmin:     resp.User.IsAdmin,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to create session", slog.Any("err", err))
		h.renderLoginError(w, r, redirect, "Login failed. Please try again later.")
		return
	}

	addSessionCookie(w, sessionID, expiration)
	http.Redirect(w, r, redirect, http.StatusFound)
}

func (h *handler) renderLoginError(w http.ResponseWriter, r *http.Request, redirect string, message string) {
	ctx := r.Context()

	if err := h.Templates().ExecuteTemplate(w, "login.gohtml", LoginVars{
		Redirect: redirect,
		Error:    message,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render login template", slog.Any("err", err))
	}
}

func (h *handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.expireSession(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

type RegisterVars struct {
	Username string
	Email    string
	Error    string
}

func (h *handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Templates().ExecuteTemplate(w, "register.gohtml", RegisterVars{}); err != nil {
		slog.ErrorContext(ctx, "Failed to render register template", slog.Any("err", err))
	}
}

func (h *handler) DoRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	vars := RegisterVars{
		Username: username,
		Email:    email,
	}

	if username == "" || email == "" || password == "" {
		vars.Error = "Username, email and password are all required."
		h.renderRegister(w, r, vars)
		return
	}

	if err := h.Client.Register(ctx, username, email, password); err != nil {
		slog.ErrorContext(ctx, "Registration failed", slog.String("username", username), slog.Any("err", err))
		vars.Error = "Registration failed. Please check your details and try again."
		h.renderRegister(w, r, vars)
		return
	}

	http.Redirect(w, r, "/login?notice=Registration+successful.+Please+log+in.", http.StatusFound)
}

func (h *handler) renderRegister(w http.ResponseWriter, r *http.Request, vars RegisterVars) {
	ctx := r.Context()

	if err := h.Templates().ExecuteTemplate(w, "register.gohtml", vars); err != nil {
		slog.ErrorContext(ctx, "Failed to render register template", slog.Any("err", err))
	}
}
