package events

import (
	"context"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

// LocalPublisher delivers events straight into an in-process Hub. It is used
// when Redis is not configured and the deployment runs a single instance.
type LocalPublisher struct {
	hub *Hub
}

// NewLocalPublisher creates a publisher for hub.
func NewLocalPublisher(hub *Hub) *LocalPublisher {
	return &LocalPublisher{hub: hub}
}

// Publish implements core.JobEventPublisher.
func (p *LocalPublisher) Publish(_ context.Context, event model.JobEvent) error {
	p.hub.Broadcast(event)
	return nil
}
