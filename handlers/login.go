// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/election-dashboard/auth"
	"github.com/danielhkuo/election-dashboard/cliparse"
	"github.com/danielhkuo/election-dashboard/middleware"
	"github.com/danielhkuo/election-dashboard/models"
)

// Authenticator exchanges credentials for a session.
// *auth.Client satisfies it.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (auth.Session, error)
}

type LoginHandler struct {
	auth Authenticator
	cfg  cliparse.Config
}

func NewLoginHandler(authenticator Authenticator, cfg cliparse.Config) *LoginHandler {
	return &LoginHandler{auth: authenticator, cfg: cfg}
}

// LoginAdmin handles POST /login/admin
func (h *LoginHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, models.RoleAdmin)
}

// LoginJuror handles POST /login/juror
func (h *LoginHandler) LoginJuror(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, models.RoleJuror)
}

func (h *LoginHandler) login(w http.ResponseWriter, r *http.Request, role string) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	session, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrMissingCredentials):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		slog.Info("login rejected", "role", role, "ip_hash", ipHash)
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	case errors.Is(err, auth.ErrNotConfigured):
		slog.Error("login unavailable", "role", role, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, err.Error())
		return
	default:
		slog.Error("identity provider failed", "role", role, "ip_hash", ipHash, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, auth.ErrProviderUnavailable.Error())
		return
	}

	slog.Info("login succeeded", "role", role, "user_id", session.UserID, "ip_hash", ipHash)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Role:      role,
		Email:     session.Email,
		UserID:    session.UserID,
		IDToken:   session.IDToken,
		ExpiresIn: session.ExpiresIn,
	})
}
