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

var (
	// "Key (docket_no)=(000123) already exists."
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// "... is still referenced from table "skip_jobs"."
	reReferencedFrom = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// "... is not present in table "customers"."
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// tableLabels names tables the way they appear in API messages.
var tableLabels = map[string]string{
	"customers":               "customer",
	"drivers":                 "driver",
	"skip_jobs":               "skip job",
	"skip_job_completion":     "completion",
	"skip_job_status_history": "status history",
	"docket_counters":         "docket counter",
}

// constraintSuffixes are the suffixes Postgres appends to generated constraint names.
var constraintSuffixes = []string{"_fkey", "_key", "_check", "_not_null"}

// MapDBError translates driver and context errors into AppErrors:
//
//	context deadline / cancellation  -> Timeout / Canceled
//	pgx.ErrNoRows                    -> NotFound
//	unique_violation                 -> Conflict (with Field when known)
//	foreign_key_violation            -> ForeignKey
//	check / not_null violation       -> Validation
//	other PgError                    -> Internal
//
// Anything else is returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: ErrCodeTimeout, Message: "Request timed out. Please try again.", Cause: err}
	case errors.Is(err, context.Canceled):
		return &AppError{Code: ErrCodeCanceled, Message: "Request was canceled.", Cause: err}
	case errors.Is(err, pgx.ErrNoRows):
		return &AppError{Code: ErrCodeNotFound, Message: "Resource not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "This value already exists.",
			Field:   uniqueField(pgErr),
			Cause:   pgErr,
		}
	case pgerrcode.ForeignKeyViolation:
		return &AppError{Code: ErrCodeForeignKey, Message: foreignKeyMessage(pgErr), Cause: pgErr}
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		field := pgErr.ColumnName
		if field == "" {
			field = fieldFromConstraint(pgErr.TableName, pgErr.ConstraintName)
		}
		msg := "Invalid data. Please check your input."
		if pgErr.Code == pgerrcode.NotNullViolation {
			msg = "Required field is missing."
		}
		return &AppError{Code: ErrCodeValidation, Message: msg, Field: field, Cause: pgErr}
	default:
		return &AppError{Code: ErrCodeInternal, Message: "A database error occurred. Please try again.", Cause: pgErr}
	}
}

func uniqueField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 && !strings.Contains(m[1], ",") {
		return m[1]
	}
	return fieldFromConstraint(pgErr.TableName, pgErr.ConstraintName)
}

func foreignKeyMessage(pgErr *pgconn.PgError) string {
	if m := reReferencedFrom.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "Cannot delete because this item is in use by a " + tableLabel(m[1]) + "."
	}
	if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "The referenced " + tableLabel(m[1]) + " does not exist."
	}
	if field := fieldFromConstraint(pgErr.TableName, pgErr.ConstraintName); field != "" {
		return "The referenced " + strings.TrimSuffix(field, "_id") + " does not exist or is in use."
	}
	return "Cannot complete operation because this item is in use."
}

// fieldFromConstraint recovers the column from a generated constraint name,
// e.g. ("skip_jobs", "skip_jobs_customer_id_fkey") -> "customer_id".
// Without the table name only known table prefixes are stripped.
func fieldFromConstraint(table, constraint string) string {
	if constraint == "" {
		return ""
	}
	rest := ""
	for _, suffix := range constraintSuffixes {
		if s, ok := strings.CutSuffix(constraint, suffix); ok {
			rest = s
			break
		}
	}
	if rest == "" {
		return ""
	}
	if table != "" {
		s, ok := strings.CutPrefix(rest, table+"_")
		if !ok {
			return ""
		}
		return s
	}
	// Longest table name first so skip_job_completion wins over skip_jobs.
	best := ""
	for t := range tableLabels {
		if strings.HasPrefix(rest, t+"_") && len(t) > len(best) {
			best = t
		}
	}
	if best == "" {
		return ""
	}
	return strings.TrimPrefix(rest, best+"_")
}

func tableLabel(table string) string {
	table = strings.ToLower(strings.TrimSpace(table))
	if label, ok := tableLabels[table]; ok {
		return label
	}
	return strings.ReplaceAll(table, "_", " ")
}
