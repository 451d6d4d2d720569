// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/sgformer/auth"
	"github.com/danielhkuo/sgformer/middleware"
	"github.com/danielhkuo/sgformer/models"
)

type AuthHandler struct {
	provider auth.Provider
	tokens   *auth.Tokens
}

func NewAuthHandler(provider auth.Provider, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{provider: provider, tokens: tokens}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.provider.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("login rejected", "email", req.Email, "ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("authentication failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("login", "email", user.Email, "role", user.Role)
	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Token: token, User: user})
}
