package data

import (
	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

// Shared sentinel errors for data-layer repositories. They are AppErrors so
// callers can match them with errors.Is or by code.
var (
	ErrSkipJobNotFound    = apperrors.NotFound("Job not found")
	ErrJobTokenNotFound   = apperrors.NotFound("Invalid or expired token")
	ErrCompletionNotFound = apperrors.NotFound("Completion not found")
	ErrCustomerNotFound   = apperrors.NotFound("Customer not found")
	ErrDriverNotFound     = apperrors.NotFound("Driver not found")

	// ErrCompletionExists is returned when a second completion is attempted for a job.
	ErrCompletionExists = apperrors.Conflict("Job already completed")
	// ErrStatusChanged is returned when a conditional status update matched no row
	// because another caller moved the job first.
	ErrStatusChanged = apperrors.Conflict("Job status changed concurrently")
)
