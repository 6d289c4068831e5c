// Package repository implements the data access layer for the application.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation checks if a DB error is a unique constraint violation.
// The string fallbacks keep sqlite-backed tests working.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgErrorCode(err) == pgUniqueViolation {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// isForeignKeyViolation checks if a DB error is a foreign key violation.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgErrorCode(err) == pgForeignKeyViolation {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
