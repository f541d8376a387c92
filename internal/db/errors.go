package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a single-row lookup matches nothing
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when a signup collides with an existing email
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnavailable is returned when the service started without a database
	ErrUnavailable = errors.New("database unavailable")
)

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique_violation,
// optionally restricted to one constraint name
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
