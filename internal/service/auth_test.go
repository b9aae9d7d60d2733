package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagekeep/digest-api/internal/data"
	domainauth "github.com/pagekeep/digest-api/internal/domain/auth"
	apperrors "github.com/pagekeep/digest-api/internal/errors"
	mockauth "github.com/pagekeep/digest-api/internal/mocks/auth"
)

func newAuthService(t *testing.T, verifier *mockauth.MockTokenVerifier, users *mockauth.MockUserSource) *AuthService {
	t.Helper()
	svc, err := NewAuthService(AuthServiceOptions{
		Verifier: verifier,
		Users:    users,
	})
	require.NoError(t, err)
	return svc
}

func TestAuthServiceAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a valid token to an active account", func(t *testing.T) {
		svc := newAuthService(t, mockauth.NewMockTokenVerifier(), mockauth.NewMockUserSource())

		user, err := svc.Authenticate(ctx, "valid-token")
		require.NoError(t, err)
		assert.Equal(t, "test-user", user.ID)
		assert.True(t, user.IsActive())
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		svc := newAuthService(t, mockauth.NewMockTokenVerifier(), mockauth.NewMockUserSource())

		_, err := svc.Authenticate(ctx, "")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("rejects a token that fails verification", func(t *testing.T) {
		verifier := mockauth.NewMockTokenVerifier()
		verifier.VerifyFunc = func(_ context.Context, _ string) (domainauth.Claims, error) {
			return domainauth.Claims{}, errors.New("token expired")
		}
		svc := newAuthService(t, verifier, mockauth.NewMockUserSource())

		_, err := svc.Authenticate(ctx, "expired-token")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("rejects a token with no active account", func(t *testing.T) {
		users := mockauth.NewMockUserSource()
		users.FindActiveUserFunc = func(_ context.Context, _ string) (domainauth.User, error) {
			return domainauth.User{}, data.ErrUserNotFound
		}
		svc := newAuthService(t, mockauth.NewMockTokenVerifier(), users)

		_, err := svc.Authenticate(ctx, "valid-token")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("maps lookup failures to internal", func(t *testing.T) {
		users := mockauth.NewMockUserSource()
		users.FindActiveUserFunc = func(_ context.Context, _ string) (domainauth.User, error) {
			return domainauth.User{}, errors.New("connection reset")
		}
		svc := newAuthService(t, mockauth.NewMockTokenVerifier(), users)

		_, err := svc.Authenticate(ctx, "valid-token")
		require.Error(t, err)
		assert.True(t, apperrors.IsInternal(err))
	})
}
