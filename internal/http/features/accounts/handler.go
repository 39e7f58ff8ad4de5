// Package accounts exposes the signup, login, profile and logout endpoints.
package accounts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sahjnr/authd/internal/httputil"
	"github.com/sahjnr/authd/pkg/auth"
	"github.com/sahjnr/authd/pkg/domain"
)

// Handler handles account endpoints.
type Handler struct {
	logger *slog.Logger
	auth   auth.Authenticator
}

// NewHandler creates a new accounts handler.
func NewHandler(logger *slog.Logger, authenticator auth.Authenticator) *Handler {
	return &Handler{logger: logger, auth: authenticator}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles account creation.
// POST /api/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	account, err := h.auth.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			httputil.Error(w, http.StatusBadRequest, "username, email and password are required")
		case errors.Is(err, domain.ErrDuplicateUsername):
			httputil.Error(w, http.StatusConflict, "username already exists")
		case errors.Is(err, domain.ErrDuplicateEmail):
			httputil.Error(w, http.StatusConflict, "email already exists")
		default:
			h.logger.Error("signup failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "signup failed")
		}
		return
	}

	httputil.JSON(w, http.StatusOK, account.View())
}

// Login handles authentication. A wrong password is a structured 401, not a
// server fault.
// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	account, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.Error(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.logger.Error("login failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	httputil.JSON(w, http.StatusOK, account.View())
}

// Profile returns the current session's account. Absence of a session is a
// 401 so callers can redirect to login.
// GET /api/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	account, err := h.auth.Profile(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			httputil.Error(w, http.StatusUnauthorized, "not logged in")
			return
		}
		h.logger.Error("profile lookup failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	httputil.JSON(w, http.StatusOK, account.View())
}

// Logout clears the global session. Always succeeds when the store is
// reachable, whether or not a session existed.
// POST /api/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		h.logger.Error("logout failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "logout failed")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
