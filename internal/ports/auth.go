package ports

// Package ports defines interfaces (hexagonal ports) consumed by the
// service layer. Implementations live in internal/adapters and
// internal/data; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/pagekeep/digest-api/internal/domain/auth"
)

// TokenVerifier resolves a raw credential token into caller claims.
// Implementations must reject expired or otherwise invalid tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (domainauth.Claims, error)
}

// UserSource looks up accounts by the identifier carried in token claims.
type UserSource interface {
	// FindActiveUser returns the account only when it exists and is active.
	// Returns data.ErrUserNotFound otherwise.
	FindActiveUser(ctx context.Context, userID string) (domainauth.User, error)
}

// FeatureSource answers whether an account has a named feature enabled.
// Reads go to the grant store directly; no caching semantics are implied.
type FeatureSource interface {
	HasFeature(ctx context.Context, userID, feature string) (bool, error)
}
