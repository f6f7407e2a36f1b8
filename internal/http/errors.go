package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/irishmetals/skipdispatch/internal/domain/validation"
	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

// statusFor maps an application error code to an HTTP status. Lifecycle
// conflicts are reported as 400, which is what dispatch clients expect.
func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders err. Validation failures carry every violation
// in details; internal failures hide their cause from the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if errors.Is(err, context.Canceled) {
		// Client went away; nothing useful to send.
		return
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = &apperrors.AppError{Code: apperrors.ErrCodeInternal, Message: err.Error(), Cause: err}
	}

	if appErr.Code == apperrors.ErrCodeValidation {
		details := appErr.Details
		if len(details) == 0 {
			details = []string{appErr.Message}
		}
		WriteJSON(w, http.StatusBadRequest, validation.Response{Error: validation.FailedMessage, Details: details})
		return
	}

	status := statusFor(appErr.Code)
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.ErrorContext(r.Context(), "request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
		}
		WriteError(w, ErrorParams{Code: status, ErrCode: string(apperrors.ErrCodeInternal), Err: errInternal})
		return
	}
	WriteError(w, ErrorParams{Code: status, ErrCode: string(appErr.Code), Err: errors.New(appErr.Message)})
}

var errInternal = errors.New("Internal server error")
