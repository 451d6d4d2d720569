// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/sgformer/models"
)

// Provider checks login credentials
type Provider interface {
	Authenticate(ctx context.Context, email, password string) (models.User, error)
}

// StaticProvider knows one administrator and one guest user, both supplied
// by configuration. The guest signs in without a password.
type StaticProvider struct {
	adminEmail string
	adminHash  []byte
	userEmail  string
}

// NewStaticProvider hashes adminPassword with bcrypt. cost 0 means
// bcrypt.DefaultCost.
func NewStaticProvider(adminEmail, adminPassword, userEmail string, cost int) (*StaticProvider, error) {
	if adminEmail == "" || adminPassword == "" {
		return nil, fmt.Errorf("admin email and password are required")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &StaticProvider{
		adminEmail: normalizeEmail(adminEmail),
		adminHash:  hash,
		userEmail:  normalizeEmail(userEmail),
	}, nil
}

func (p *StaticProvider) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	email = normalizeEmail(email)

	if email == p.adminEmail {
		if bcrypt.CompareHashAndPassword(p.adminHash, []byte(password)) != nil {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{Email: p.adminEmail, Role: models.UserRoleAdmin}, nil
	}

	if p.userEmail != "" && (email == "" || email == p.userEmail) && password == "" {
		return models.User{Email: p.userEmail, Role: models.UserRoleUser}, nil
	}
	return models.User{}, ErrInvalidCredentials
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
