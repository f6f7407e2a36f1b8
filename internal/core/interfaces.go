package core

import (
	"context"
	"time"

	"github.com/irishmetals/skipdispatch/internal/docket"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

// This file contains repository and transport interface definitions (ports in hexagonal architecture).
// Service implementations depend on these interfaces, not concrete implementations.

// TransitionParams groups parameters for SkipJobRepository.Transition.
// The update only applies while the job's status is one of From; the
// timestamp column for To is set once and never overwritten.
type TransitionParams struct {
	JobID string
	From  []model.JobStatus
	To    model.JobStatus
}

// CreateSkipJobParams groups parameters for SkipJobRepository.Create.
type CreateSkipJobParams struct {
	Request  *model.CreateJobRequest
	JobToken string
}

// SkipJobRepository defines persistence for skip jobs. Docket numbers are
// assigned by storage inside Create.
type SkipJobRepository interface {
	Create(ctx context.Context, params CreateSkipJobParams) (*model.SkipJob, error)
	GetByID(ctx context.Context, id string) (*model.SkipJob, error)
	GetByToken(ctx context.Context, token string) (*model.SkipJob, error)
	List(ctx context.Context, opts *model.SkipJobListOptions) ([]*model.SkipJobListItem, error)
	Transition(ctx context.Context, params TransitionParams) (*model.SkipJob, error)
	Update(ctx context.Context, id string, req *model.UpdateJobRequest) (*model.SkipJob, error)
	Delete(ctx context.Context, id string) (bool, error)
	// Complete inserts the completion and moves the job to completed in one transaction.
	Complete(ctx context.Context, completion *model.Completion, from []model.JobStatus) (*model.Completion, *model.SkipJob, error)
}

// CompletionRepository defines persistence for completion records.
type CompletionRepository interface {
	GetByID(ctx context.Context, id string) (*model.Completion, error)
	GetByJobID(ctx context.Context, jobID string) (*model.Completion, error)
	UpdateWeight(ctx context.Context, id string, req *model.UpdateCompletionWeightRequest) (*model.Completion, error)
	ListForTracker(ctx context.Context, limit int) ([]*model.TrackerRow, error)
}

// StatusHistoryRepository defines the append-only status audit log.
type StatusHistoryRepository interface {
	Append(ctx context.Context, entry *model.StatusHistoryEntry) error
	ListByJob(ctx context.Context, jobID string) ([]*model.StatusHistoryEntry, error)
}

// ReferenceRepository provides read access to customers and drivers.
type ReferenceRepository interface {
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	GetDriver(ctx context.Context, id string) (*model.Driver, error)
	ListCustomers(ctx context.Context) ([]*model.Customer, error)
	ListActiveDrivers(ctx context.Context) ([]*model.Driver, error)
}

// CompletionLock guards against two completions for the same job token
// running at once. Acquire reports false when the key is already held;
// otherwise it returns an owner value that Release must present. Release
// leaves the key alone once another owner holds it.
type CompletionLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (owner string, ok bool, err error)
	Release(ctx context.Context, key, owner string) error
}

// TextMessage is an outbound SMS or WhatsApp message. To is already in
// international form.
type TextMessage struct {
	To   string
	Body string
}

// MessageSender submits text messages through a transport.
type MessageSender interface {
	Send(ctx context.Context, msg TextMessage) (string, error)
	Channel() string
}

// DocketEmail is the office notification sent when a job completes.
type DocketEmail struct {
	Subject        string
	HTML           string
	AttachmentName string
	Attachment     []byte
}

// DocketMailer delivers docket emails to the configured office address.
type DocketMailer interface {
	SendDocket(ctx context.Context, email DocketEmail) error
}

// DocketRenderer produces the completion docket PDF.
type DocketRenderer interface {
	Render(data docket.Data) ([]byte, error)
}

// JobEventPublisher fans job events out to live subscribers.
type JobEventPublisher interface {
	Publish(ctx context.Context, event model.JobEvent) error
}
