// Package notify defines the alert payloads raised when an outbound
// notification to a driver or the office could not be delivered.
package notify

import (
	"context"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// DeliveryFailurePayload describes one failed SMS, WhatsApp or email delivery.
type DeliveryFailurePayload struct {
	JobID      string
	DocketNo   string
	Channel    string
	Recipient  string
	Error      string
	ErrorClass string
	Severity   string
	OccurredAt time.Time
	Metadata   map[string]string
}

// Sink is a destination for delivery failure alerts.
type Sink interface {
	SendDeliveryFailure(ctx context.Context, payload DeliveryFailurePayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload DeliveryFailurePayload) error

// SendDeliveryFailure implements the Sink interface.
func (f SinkFunc) SendDeliveryFailure(ctx context.Context, payload DeliveryFailurePayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
