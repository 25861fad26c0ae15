package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// reKeyField extracts the column list from a unique violation detail:
// "Key (job_id, user_id)=(...) already exists.".
var reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)

// MapDBError maps database errors to AppError instances. It is the single
// translation boundary between store-specific error shapes and the
// application taxonomy:
// - pgx.ErrNoRows → NotFound
// - Unique constraint violations → Conflict
// - Foreign key violations → Validation (referenced row missing or in use)
// - Check / NOT NULL violations → Validation
// - Context timeouts/cancellations → Timeout/Canceled
//
// Anything else is treated as a transport failure so callers never branch on
// driver error codes directly.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "The request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "The request was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Resource not found",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	// Unrecognized database error: likely a connectivity problem.
	return &AppError{
		Code:    ErrCodeTransport,
		Message: "A storage error occurred. Please try again.",
		Cause:   err,
	}
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgerrcode.ForeignKeyViolation:
		return mapForeignKeyViolation(pgErr)
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return mapRequiredFieldViolation(pgErr)
	default:
		return &AppError{
			Code:    ErrCodeTransport,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}

// mapUniqueViolation maps unique constraint violations to Conflict errors.
// The Field carries the violated column(s) so callers can distinguish, e.g.,
// a duplicate application (job_id, user_id) from a duplicate email.
func mapUniqueViolation(pgErr *pgconn.PgError) error {
	field := pgErr.ColumnName

	// Prefer the Detail message; it names every column of a composite key.
	if pgErr.Detail != "" {
		if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			field = strings.ReplaceAll(m[1], " ", "")
		}
	}

	// Last resort: infer from constraint name (e.g., "users_email_key" → "email").
	if field == "" {
		field = inferFieldFromConstraint(pgErr.ConstraintName)
	}

	return &AppError{
		Code:    ErrCodeConflict,
		Message: "This value already exists.",
		Field:   field,
		Cause:   pgErr,
	}
}

// mapForeignKeyViolation maps foreign key constraint violations to Validation
// errors. The only FK paths in this schema point at jobs and users, so a
// violation means the referenced row disappeared (e.g., applying to a job an
// admin deleted moments earlier).
func mapForeignKeyViolation(pgErr *pgconn.PgError) error {
	domain := "record"
	switch {
	case strings.Contains(pgErr.ConstraintName, "job"):
		domain = "job"
	case strings.Contains(pgErr.ConstraintName, "user"):
		domain = "user"
	}
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "The referenced " + domain + " no longer exists.",
		Cause:   pgErr,
	}
}

func mapRequiredFieldViolation(pgErr *pgconn.PgError) error {
	if pgErr.ColumnName != "" {
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "This field is required.",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	}
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "Required field is missing. Please check your input.",
		Cause:   pgErr,
	}
}

// inferFieldFromConstraint attempts to infer the field name from a constraint
// name like "users_email_key". Returns empty string when ambiguous.
func inferFieldFromConstraint(constraintName string) string {
	if constraintName == "" {
		return ""
	}
	parts := strings.Split(constraintName, "_")
	if len(parts) == 3 {
		return parts[1]
	}
	// Composite constraints ("applications_job_id_user_id_key") have more
	// parts; reporting a single misleading column helps no one.
	return ""
}
