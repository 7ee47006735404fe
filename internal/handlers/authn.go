package handlers

import (
	"errors"
	"net/http"

	"github.com/solviatours/backoffice/internal/auth"
	"github.com/solviatours/backoffice/internal/httpx"
	"github.com/solviatours/backoffice/internal/i18n"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials, sets the session cookie, and returns the
// session user so the client can route immediately.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	uid, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httpx.JSONError(w, http.StatusUnauthorized, i18n.T(i18n.LangFromContext(r.Context()), "login_failed"), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	auth.CreateSession(w, uid)
	user, err := h.sessions.Resolve(r.Context(), uid)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// Logout ends the remote auth session, drops the local session user, and
// clears the cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.SignOut(r.Context())
	h.sessions.Logout()
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Me returns the authenticated session user, or 401.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	user, err := h.sessions.Resolve(r.Context(), uid)
	if err != nil || user == nil {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
