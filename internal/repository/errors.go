package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/d60-Lab/mediahub/pkg/apperrors"
)

const pgUniqueViolation = "23505"

// isUniqueViolation recognises duplicate-key failures from every driver we
// run on: translated gorm errors, raw PostgreSQL errors and SQLite messages.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// dbError wraps a store failure as Internal (or Timeout when the request
// deadline expired).
func dbError(err error, operation string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(err, apperrors.KindInternal, operation)
}

// lookupError maps a missing row to NotFound and anything else to dbError.
func lookupError(err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(resource, id)
	}
	return dbError(err, "load "+resource)
}
