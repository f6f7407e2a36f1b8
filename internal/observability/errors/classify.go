// Package errors turns errors into short labels for logs and alerts.
package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

// Classify returns a normalized error label. Application errors report their
// code, e.g. "conflict"; anything else reports its innermost concrete type in
// snake case, e.g. "pgconn_pgerror".
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var appErr *apperrors.AppError
	if goerrors.As(err, &appErr) && appErr.Code != "" {
		return string(appErr.Code)
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
