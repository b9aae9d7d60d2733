package httpx

import (
	"context"

	domainauth "github.com/pagekeep/digest-api/internal/domain/auth"
)

type contextKey string

const userContextKey contextKey = "user"

// SetUserInContext stores the authenticated user in the request context.
func SetUserInContext(ctx context.Context, user domainauth.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user from the request context.
func UserFromContext(ctx context.Context) (domainauth.User, bool) {
	user, ok := ctx.Value(userContextKey).(domainauth.User)
	return user, ok
}
