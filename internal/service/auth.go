package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pagekeep/digest-api/internal/data"
	domainauth "github.com/pagekeep/digest-api/internal/domain/auth"
	apperrors "github.com/pagekeep/digest-api/internal/errors"
	"github.com/pagekeep/digest-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Verifier ports.TokenVerifier // Required: token verifier
	Users    ports.UserSource    // Required: account lookup
	Logger   *slog.Logger        // Optional: structured logger
}

// AuthService resolves caller credentials into an active account.
// A token that fails verification, resolves to no account, or resolves to
// a non-active account all yield the same Unauthorized result; callers
// learn nothing about which check failed.
type AuthService struct {
	verifier ports.TokenVerifier
	users    ports.UserSource
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Verifier == nil {
		return nil, errors.New("TokenVerifier is required")
	}
	if opts.Users == nil {
		return nil, errors.New("UserSource is required")
	}

	logger := opts.Logger
	if logger != nil {
		logger = logger.With("component", "auth_service")
	}

	return &AuthService{
		verifier: opts.Verifier,
		users:    opts.Users,
		logger:   logger,
	}, nil
}

// Authenticate resolves a raw token into an active account.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (domainauth.User, error) {
	if rawToken == "" {
		return domainauth.User{}, apperrors.Unauthorized("authentication required")
	}

	claims, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		if s.logger != nil {
			s.logger.DebugContext(ctx, "token verification failed", "error", err)
		}
		return domainauth.User{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "invalid token")
	}

	user, err := s.users.FindActiveUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return domainauth.User{}, apperrors.Unauthorized("no active account for token")
		}
		return domainauth.User{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "look up account")
	}

	return user, nil
}
