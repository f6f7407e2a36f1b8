package model

import "time"

// StatusHistoryEntry is one append-only audit row. OldStatus is nil only for
// the entry written when the job is created. DocketNo is a snapshot so the row
// stays readable after the job itself is hard-deleted.
type StatusHistoryEntry struct {
	ID        int64      `json:"id"         db:"id"`
	SkipJobID string     `json:"skip_job_id" db:"skip_job_id"`
	DocketNo  *string    `json:"docket_no"  db:"docket_no"`
	OldStatus *JobStatus `json:"old_status" db:"old_status"`
	NewStatus JobStatus  `json:"new_status" db:"new_status"`
	ChangedBy Actor      `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time  `json:"changed_at" db:"changed_at"`
}
