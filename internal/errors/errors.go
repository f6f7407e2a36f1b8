// Package errors defines the application error taxonomy shared by the data,
// service and HTTP layers. Repositories and services return *AppError values;
// the HTTP layer maps their Code to a status.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a job, token, completion or reference row did not resolve.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates the operation is not legal in the job's current state.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeForeignKey indicates a foreign key constraint violation.
	ErrCodeForeignKey ErrorCode = "foreign_key"
	// ErrCodeDependency indicates storage or a downstream transport failed.
	ErrCodeDependency ErrorCode = "dependency"
	ErrCodeInternal   ErrorCode = "internal"
	ErrCodeTimeout    ErrorCode = "timeout"
	ErrCodeCanceled   ErrorCode = "canceled"
)

// AppError is a categorised error. Cause is exposed through Unwrap so
// errors.Is and errors.As see through it.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field names the offending column or input, when known.
	Field string
	// Details lists every violation found when validation collected more than one.
	Details []string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound reports a missing job, token, completion or reference row.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// Conflict reports an operation that the job's current status does not allow.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// Conflictf is Conflict with a formatted message.
func Conflictf(format string, args ...any) *AppError {
	return Conflict(fmt.Sprintf(format, args...))
}

// Validation reports a single invalid input.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationDetails reports every collected violation. details is copied.
func ValidationDetails(message string, details []string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Details: append([]string(nil), details...)}
}

// Dependency wraps a failure of storage or a downstream transport.
func Dependency(err error, message string) *AppError {
	return &AppError{Code: ErrCodeDependency, Message: message, Cause: err}
}

// Wrap attaches code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// GetCode returns the code of the first AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	if appErr, ok := asAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field of the first AppError in err's chain, or "".
func GetField(err error) string {
	if appErr, ok := asAppError(err); ok {
		return appErr.Field
	}
	return ""
}

// GetDetails returns the collected validation details, or nil.
func GetDetails(err error) []string {
	if appErr, ok := asAppError(err); ok {
		return appErr.Details
	}
	return nil
}

func IsNotFound(err error) bool   { return GetCode(err) == ErrCodeNotFound }
func IsConflict(err error) bool   { return GetCode(err) == ErrCodeConflict }
func IsValidation(err error) bool { return GetCode(err) == ErrCodeValidation }
func IsForeignKey(err error) bool { return GetCode(err) == ErrCodeForeignKey }
func IsDependency(err error) bool { return GetCode(err) == ErrCodeDependency }
func IsInternal(err error) bool   { return GetCode(err) == ErrCodeInternal }
func IsTimeout(err error) bool    { return GetCode(err) == ErrCodeTimeout }
func IsCanceled(err error) bool   { return GetCode(err) == ErrCodeCanceled }
