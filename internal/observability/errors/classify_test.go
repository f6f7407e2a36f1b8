package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

type customError struct{}

func (*customError) Error() string { return "custom" }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "app error code", err: apperrors.Conflict("Job already completed"), want: "conflict"},
		{name: "wrapped app error", err: fmt.Errorf("complete: %w", apperrors.NotFound("Job not found")), want: "not_found"},
		{name: "pointer type", err: fmt.Errorf("send: %w", &customError{}), want: "errors_customerror"},
		{name: "context", err: context.DeadlineExceeded, want: "context_deadlineexceedederror"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
