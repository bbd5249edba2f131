package dberrors

import (
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports whether err is a unique_violation on any constraint.
func IsUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == CodeUniqueViolation
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsForeignKeyViolation reports whether err is a foreign_key_violation.
func IsForeignKeyViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == CodeForeignKeyViolation
}

// IsCheckViolation reports whether err is a check_violation.
func IsCheckViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == CodeCheckViolation
}

// IsConnectionError reports whether err means the server could not be reached
// (as opposed to the server rejecting a statement).
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	// Class 08 is "connection exception"
	if pgErr, ok := pgError(err); ok {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "08"
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// ConstraintName returns the constraint a PostgreSQL error names, or "".
func ConstraintName(err error) string {
	if pgErr, ok := pgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}
