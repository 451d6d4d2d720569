// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/sgformer/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient role")
)

// GenerateID creates a random record ID of the form "<prefix>-<uuid>"
func GenerateID(prefix string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	if prefix == "" {
		return id.String(), nil
	}
	return prefix + "-" + id.String(), nil
}

type contextKey string

const userContextKey contextKey = "user"

// WithUser returns a copy of ctx carrying the authenticated user
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext returns the user set by WithUser
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userContextKey).(models.User)
	return u, ok
}

// HasRole reports whether u may act with role. Admins may act as users.
func HasRole(u models.User, role string) bool {
	if u.Role == role {
		return true
	}
	return u.Role == models.UserRoleAdmin && role == models.UserRoleUser
}

// BearerToken extracts the token from an "Authorization: Bearer ..." header
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
