package devauth

// Package devauth provides a static token verifier for development and
// testing. Enabled with AUTH_MODE=mock; never use in production.

import (
	"context"
	"errors"
	"strings"

	domainauth "github.com/pagekeep/digest-api/internal/domain/auth"
)

// Verifier accepts any non-empty token and resolves it to a fixed identity.
type Verifier struct {
	UserID string
	Email  string
}

// NewVerifier creates a dev verifier for the given identity.
func NewVerifier(userID, email string) *Verifier {
	return &Verifier{UserID: userID, Email: email}
}

// Verify returns the configured identity for any non-empty token.
func (v *Verifier) Verify(_ context.Context, rawToken string) (domainauth.Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return domainauth.Claims{}, errors.New("token is empty")
	}
	return domainauth.Claims{UserID: v.UserID, Email: v.Email}, nil
}
