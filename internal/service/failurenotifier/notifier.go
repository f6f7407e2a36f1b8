// Package failurenotifier fans notification delivery failures out to alert sinks.
package failurenotifier

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/irishmetals/skipdispatch/internal/observability/notify"
)

// SinkRegistration names a sink for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the failure notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
	// Now stamps payloads that arrive without OccurredAt. Defaults to time.Now.
	Now func() time.Time
}

// Service dispatches delivery failure alerts to all registered sinks.
type Service struct {
	logger *slog.Logger
	sinks  []SinkRegistration
	now    func() time.Time
}

// NewService drops nil sinks and names anonymous ones "sink".
func NewService(opts Options) *Service {
	s := &Service{logger: opts.Logger, now: opts.Now}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "failure_notifier")
	}
	if s.now == nil {
		s.now = time.Now
	}
	for _, reg := range opts.Sinks {
		if reg.Sink == nil {
			continue
		}
		if reg.Name == "" {
			reg.Name = "sink"
		}
		s.sinks = append(s.sinks, reg)
	}
	return s
}

// NotifyDeliveryFailure sends payload to every sink concurrently and waits.
// Sink errors are logged, never returned.
func (s *Service) NotifyDeliveryFailure(ctx context.Context, payload notify.DeliveryFailurePayload) {
	if !s.Enabled() {
		return
	}
	if payload.Severity == "" {
		payload.Severity = notify.SeverityWarning
	}
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = s.now().UTC()
	}

	// A plain Group: one failing sink must not cancel the others.
	var g errgroup.Group
	for _, reg := range s.sinks {
		g.Go(func() error {
			if err := reg.Sink.SendDeliveryFailure(ctx, payload); err != nil {
				s.logger.ErrorContext(ctx, "failure notifier delivery error",
					"sink", reg.Name,
					"job_id", payload.JobID,
					"channel", payload.Channel,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return s != nil && len(s.sinks) > 0
}
