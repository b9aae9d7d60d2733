package data

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Shared sentinel errors for data-layer repositories.
var (
	// ErrJobNotFound is returned when a user holds no digest job record.
	ErrJobNotFound = errors.New("digest job not found")

	// ErrUserNotFound is returned when an account does not exist or is not active.
	ErrUserNotFound = errors.New("user not found")
)

// classifyPGError maps low-level postgres errors onto readable wrappers.
// Constraint violations are surfaced with their class so callers can log
// something actionable without parsing driver internals.
func classifyPGError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
			return fmt.Errorf("%s: constraint %s violated: %w", op, pgErr.ConstraintName, err)
		case pgerrcode.IsConnectionException(pgErr.Code):
			return fmt.Errorf("%s: connection failure: %w", op, err)
		case pgerrcode.IsInsufficientResources(pgErr.Code):
			return fmt.Errorf("%s: insufficient resources: %w", op, err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
