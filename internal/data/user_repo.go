package data

import (
	"context"
	"database/sql"
	"errors"

	domainauth "github.com/pagekeep/digest-api/internal/domain/auth"
)

// UserRepo looks up accounts in PostgreSQL.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// FindActiveUser returns the account when it exists and is active.
// Suspended or deleted accounts are reported as ErrUserNotFound so
// callers treat their tokens the same as invalid ones.
func (r *UserRepo) FindActiveUser(ctx context.Context, userID string) (domainauth.User, error) {
	if userID == "" {
		return domainauth.User{}, ErrUserNotFound
	}

	var u domainauth.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, status FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Email, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domainauth.User{}, ErrUserNotFound
		}
		return domainauth.User{}, classifyPGError("find user", err)
	}

	if !u.IsActive() {
		return domainauth.User{}, ErrUserNotFound
	}

	return u, nil
}
