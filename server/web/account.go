package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xquery"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/auth"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

type AccountVars struct {
	Viewer   Viewer
	Username string
	Email    string
	Notice   string
	Error    string
}

func (h *handler) Account(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)
	viewer := viewerFromSession(session)

	user, err := h.Client.GetMe(ctx, session.AccessToken)
	if err != nil {
		if errors.Is(err, clubapi.ErrUnauthorized) {
			h.expireSession(w, r)
			h.forceLogin(w, r)
			return
		}
		slog.ErrorContext(ctx, "Failed to fetch own profile", slog.Any("err", err))
		h.renderError(w, r, http.StatusInternalServerError, viewer, "Failed to load your account. Please try again later.")
		return
	}

	query := r.URL.Query()
	if err = h.Templates().ExecuteTemplate(w, "account.gohtml", AccountVars{
		Viewer:   viewer,
		Username: user.Username,
		Email:    user.Email,
		Notice:   xquery.ParseString(query, "notice", ""),
		Error:    xquery.ParseString(query, "error", ""),
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to render account template", slog.Any("err", err))
	}
}

// UpdateAccount changes the account email address.
func (h *handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

	email := strings.TrimSpace(r.FormValue("email"))
	if _, err := mail.ParseAddress(email); err != nil {
		h.redirectAccount(w, r, "", "Please enter a valid email address.")
		return
	}

	if _, err := h.Client.UpdateMe(ctx, session.AccessToken, clubapi.MePatch{Email: &email}); err != nil {
		if errors.Is(err, clubapi.ErrUnauthorized) {
			h.expireSession(w, r)
			h.forceLogin(w, r)
			return
		}
		slog.ErrorContext(ctx, "Failed to update email", slog.Any("err", err))
		h.redirectAccount(w, r, "", "Failed to update your email. Please try again later.")
		return
	}

	h.redirectAccount(w, r, "Email updated.", "")
}

// ChangePassword rotates the account password after checking the old one.
func (h *handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := auth.GetSession(r)

	oldPassword := r.FormValue("old_password")
	newPassword := r.FormValue("new_password")
	if oldPassword == "" || newPassword == "" {
		h.redirectAccount(w, r, "", "Both the current and the new password are required.")
		return
	}
	if newPassword != r.FormValue("confirm_password") {
		h.redirectAccount(w, r, "", "The new passwords do not match.")
		return
	}

	if _, err := h.Client.UpdateMe(ctx, session.AccessToken, clubapi.MePatch{
		OldPassword: &oldPassword,
		NewPassword: &newPassword,
	}); err != nil {
		if errors.Is(err, clubapi.ErrUnauthorized) {
			h.expireSession(w, r)
			h.forceLogin(w, r)
			return
		}
		slog.ErrorContext(ctx, "Failed to change password", slog.Any("err", err))
		h.redirectAccount(w, r, "", "Failed to change your password. Check the current password and try again.")
		return
	}

	h.redirectAccount(w, r, "Password changed.", "")
}

func (h *handler) redirectAccount(w http.ResponseWriter, r *http.Request, notice string, errMsg string) {
	values := url.Values{}
	if notice != "" {
		values.Set("notice", notice)
	}
	if errMsg != "" {
		values.Set("error", errMsg)
	}
	target := "/account"
	if len(values) > 0 {
		target += "?" + values.Encode()
	}
	http.Redirect(w, r, target, http.StatusFound)
}
