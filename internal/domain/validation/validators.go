// Package validation holds the field predicates and the accumulating collector
// every lifecycle operation runs before it touches storage.
package validation

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the only accepted job date format.
const DateLayout = "2006-01-02"

// Validator checks a string value and returns an error message, or "" when valid.
type Validator func(v string) string

// UUID validates that a field holds a canonical 36-character UUID.
func UUID(fieldName string) Validator {
	return func(v string) string {
		if !IsUUID(v) {
			return fieldName + " must be a valid UUID"
		}
		return ""
	}
}

// Date validates that a field is a real calendar date in YYYY-MM-DD form.
func Date(fieldName string) Validator {
	return func(v string) string {
		if !IsDate(v) {
			return fieldName + " must be a valid date (YYYY-MM-DD)"
		}
		return ""
	}
}

// Required validates that a field is non-empty after trimming.
func Required(fieldName string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return fieldName + " is required"
		}
		return ""
	}
}

// OneOf validates that a field matches one of the allowed values exactly.
// message receives the field name as its prefix.
func OneOf(fieldName string, allowed []string, message string) Validator {
	return func(v string) string {
		for _, opt := range allowed {
			if v == opt {
				return ""
			}
		}
		return fieldName + " " + message
	}
}

// IsUUID reports whether v is a hyphenated UUID string.
func IsUUID(v string) bool {
	if len(v) != 36 {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}

// IsDate reports whether v is a valid YYYY-MM-DD date. Rolled-over dates such
// as 2025-02-30 are rejected.
func IsDate(v string) bool {
	if len(v) != len(DateLayout) {
		return false
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == v
}

// IsNonNegative reports whether f is a finite number >= 0.
func IsNonNegative(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

// InRange reports whether f is finite and within [lo, hi].
func InRange(f, lo, hi float64) bool {
	return !math.IsNaN(f) && f >= lo && f <= hi
}
