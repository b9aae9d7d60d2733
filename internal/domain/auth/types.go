package auth

// Package auth contains domain-level types for caller identity.
// It is pure and free of framework/adapter concerns.

// Claims represents the decoded identity assertions derived from a
// caller's credential token. Adapters map provider-specific claims
// into this shape.
type Claims struct {
	// UserID is the stable user identifier (the token subject).
	UserID string
	Email  string
}

// UserStatus is the lifecycle state of an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
	UserStatusDeleted   UserStatus = "DELETED"
)

// User is the account record consulted after token verification.
// A token that resolves to a non-active account is treated the same
// as an invalid token.
type User struct {
	ID     string     `json:"id"`
	Email  string     `json:"email"`
	Status UserStatus `json:"status"`
}

// IsActive returns true if the account may use the API.
func (u User) IsActive() bool { return u.Status == UserStatusActive }
