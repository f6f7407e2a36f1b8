package validation

import (
	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

// FailedMessage is the top-level error text of every validation response.
const FailedMessage = "Validation failed"

// Response is the wire shape of a failed validation.
type Response struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// Collector accumulates every violation instead of stopping at the first one.
// Calls chain:
//
//	c := validation.New().
//		RequireUUID("customer_id", req.CustomerID).
//		RequireDate("job_date", req.JobDate)
//	if c.HasErrors() { ... }
type Collector struct {
	details []string
}

// New creates an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Validate runs validators against value in order, keeping the first failure.
func (c *Collector) Validate(value string, validators ...Validator) *Collector {
	for _, v := range validators {
		if msg := v(value); msg != "" {
			c.details = append(c.details, msg)
			break
		}
	}
	return c
}

// RequireUUID records a violation unless v is a UUID.
func (c *Collector) RequireUUID(field, v string) *Collector {
	return c.Validate(v, UUID(field))
}

// OptionalUUID records a violation when v is set but is not a UUID.
func (c *Collector) OptionalUUID(field string, v *string) *Collector {
	if v == nil || *v == "" {
		return c
	}
	if !IsUUID(*v) {
		c.details = append(c.details, field+" must be a valid UUID if provided")
	}
	return c
}

// RequireDate records a violation unless v is a YYYY-MM-DD date.
func (c *Collector) RequireDate(field, v string) *Collector {
	return c.Validate(v, Date(field))
}

// RequireNonEmpty records a violation when v is blank.
func (c *Collector) RequireNonEmpty(field, v string) *Collector {
	return c.Validate(v, Required(field))
}

// OneOf records a violation unless v is one of allowed.
func (c *Collector) OneOf(field, v string, allowed []string, message string) *Collector {
	return c.Validate(v, OneOf(field, allowed, message))
}

// OptionalOneOf is OneOf for values that may be absent; empty strings count as absent.
func (c *Collector) OptionalOneOf(field string, v *string, allowed []string, message string) *Collector {
	if v == nil || *v == "" {
		return c
	}
	return c.OneOf(field, *v, allowed, message)
}

// NonNegative records a violation when v is set and negative or not finite.
func (c *Collector) NonNegative(field string, v *float64) *Collector {
	if v != nil && !IsNonNegative(*v) {
		c.details = append(c.details, field+" must be a non-negative number")
	}
	return c
}

// Check records message when ok is false.
func (c *Collector) Check(ok bool, message string) *Collector {
	if !ok {
		c.details = append(c.details, message)
	}
	return c
}

// HasErrors reports whether any violation was recorded.
func (c *Collector) HasErrors() bool {
	return len(c.details) > 0
}

// Details returns a copy of the recorded violations.
func (c *Collector) Details() []string {
	out := make([]string, len(c.details))
	copy(out, c.details)
	return out
}

// ToResponse renders the wire payload.
func (c *Collector) ToResponse() Response {
	return Response{Error: FailedMessage, Details: c.Details()}
}

// Err returns a validation AppError carrying every violation, or nil.
func (c *Collector) Err() error {
	if !c.HasErrors() {
		return nil
	}
	return apperrors.ValidationDetails(FailedMessage, c.details)
}
