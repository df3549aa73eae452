package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-management-api/internal/domain/scheduling"

	"github.com/jackc/pgx/v5/pgconn"
)

// Errors shared by several usecases. Usecase-specific errors live next to
// the usecase that returns them.
var (
	ErrForbidden         = errors.New("not authorized to access this resource")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrFieldNotAllowed   = errors.New("not allowed to update field")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrStaffNotFound     = errors.New("staff not found")
	ErrSequenceOutOfSync = errors.New("number sequence is behind stored records")
	ErrStaffHasRecords   = errors.New("staff member has authored medical records")
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
)

func fieldsNotAllowed(fields []string) error {
	return fmt.Errorf("%w: %s", ErrFieldNotAllowed, strings.Join(fields, ", "))
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// whose constraint name contains constraintName
func isDuplicateKeyError(err error, constraintName string) bool {
	return hasPgCode(err, pgUniqueViolation, constraintName)
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// whose constraint name contains constraintName
func isForeignKeyError(err error, constraintName string) bool {
	return hasPgCode(err, pgForeignKeyViolation, constraintName)
}

// isExclusionError reports an exclusion constraint violation, raised when two
// active appointments of one staff member overlap.
func isExclusionError(err error) bool {
	return hasPgCode(err, pgExclusionViolation, "")
}

func hasPgCode(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
}

func parseDate(value string) (time.Time, error) {
	t, err := scheduling.ParseDate(value)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// parseOptionalDate returns nil for an empty value.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
