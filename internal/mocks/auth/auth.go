// Package auth provides hand-written test doubles for the authentication
// ports. Unlike the generated gomock mocks, these use overridable function
// fields so tests can swap behavior per case without a controller.
package auth

import (
	"context"

	domainauth "github.com/pagekeep/digest-api/internal/domain/auth"
	"github.com/pagekeep/digest-api/internal/ports"
)

// MockTokenVerifier implements ports.TokenVerifier for testing.
type MockTokenVerifier struct {
	VerifyFunc func(ctx context.Context, rawToken string) (domainauth.Claims, error)
}

var _ ports.TokenVerifier = (*MockTokenVerifier)(nil)

// NewMockTokenVerifier returns a verifier that accepts any token and
// attributes it to a fixed test identity.
func NewMockTokenVerifier() *MockTokenVerifier {
	return &MockTokenVerifier{
		VerifyFunc: func(_ context.Context, _ string) (domainauth.Claims, error) {
			return domainauth.Claims{UserID: "test-user", Email: "test-user@example.com"}, nil
		},
	}
}

func (m *MockTokenVerifier) Verify(ctx context.Context, rawToken string) (domainauth.Claims, error) {
	return m.VerifyFunc(ctx, rawToken)
}

// MockUserSource implements ports.UserSource for testing.
type MockUserSource struct {
	FindActiveUserFunc func(ctx context.Context, userID string) (domainauth.User, error)
}

var _ ports.UserSource = (*MockUserSource)(nil)

// NewMockUserSource returns a source where every looked-up user exists
// and is active.
func NewMockUserSource() *MockUserSource {
	return &MockUserSource{
		FindActiveUserFunc: func(_ context.Context, userID string) (domainauth.User, error) {
			return domainauth.User{
				ID:     userID,
				Email:  userID + "@example.com",
				Status: domainauth.UserStatusActive,
			}, nil
		},
	}
}

func (m *MockUserSource) FindActiveUser(ctx context.Context, userID string) (domainauth.User, error) {
	return m.FindActiveUserFunc(ctx, userID)
}
