package model

import "time"

// JobEventType names the kind of change a JobEvent reports.
type JobEventType string

const (
	JobEventStatusChanged JobEventType = "status_changed"
	JobEventUpdated       JobEventType = "updated"
	JobEventDeleted       JobEventType = "deleted"
	JobEventWeightUpdated JobEventType = "weight_updated"
)

// JobEvent is broadcast to live subscribers after a successful mutation.
type JobEvent struct {
	Type       JobEventType `json:"type"`
	JobID      string       `json:"job_id"`
	DocketNo   string       `json:"docket_no"`
	Status     JobStatus    `json:"status"`
	Operation  string       `json:"operation"`
	Actor      Actor        `json:"actor"`
	OccurredAt time.Time    `json:"occurred_at"`
}
