//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"time"
)

// JobStatus is the lifecycle state of a skip job.
type JobStatus string

const (
	JobStatusCreated    JobStatus = "created"
	JobStatusSent       JobStatus = "sent"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusCreated, JobStatusSent, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave this state.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// Label returns the display text for the status.
func (s JobStatus) Label() string {
	switch s {
	case JobStatusCreated:
		return "Created"
	case JobStatusSent:
		return "Sent"
	case JobStatusInProgress:
		return "In Progress"
	case JobStatusCompleted:
		return "Completed"
	case JobStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// JobStatusValues lists every status in lifecycle order.
func JobStatusValues() []string {
	return []string{
		string(JobStatusCreated),
		string(JobStatusSent),
		string(JobStatusInProgress),
		string(JobStatusCompleted),
		string(JobStatusCancelled),
	}
}

// SkipSize is the container volume in cubic yards.
type SkipSize string

const (
	SkipSize8  SkipSize = "8"
	SkipSize12 SkipSize = "12"
	SkipSize14 SkipSize = "14"
	SkipSize16 SkipSize = "16"
	SkipSize20 SkipSize = "20"
	SkipSize35 SkipSize = "35"
	SkipSize40 SkipSize = "40"
)

var skipSizes = []SkipSize{SkipSize8, SkipSize12, SkipSize14, SkipSize16, SkipSize20, SkipSize35, SkipSize40}

// Valid reports whether the size is stocked.
func (s SkipSize) Valid() bool {
	for _, v := range skipSizes {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the size as printed on dockets, e.g. "20y".
func (s SkipSize) Label() string {
	if s == "" {
		return ""
	}
	return string(s) + "y"
}

// SkipSizeValues lists the stocked sizes, smallest first.
func SkipSizeValues() []string {
	out := make([]string, len(skipSizes))
	for i, v := range skipSizes {
		out[i] = string(v)
	}
	return out
}

// SkipAction is what the driver does with skips at the site.
type SkipAction string

const (
	SkipActionDrop     SkipAction = "drop"
	SkipActionPick     SkipAction = "pick"
	SkipActionPickDrop SkipAction = "pick_drop"
)

// Valid reports whether the action is supported.
func (a SkipAction) Valid() bool {
	switch a {
	case SkipActionDrop, SkipActionPick, SkipActionPickDrop:
		return true
	default:
		return false
	}
}

// InvolvesPick reports whether a skip leaves the site and returns to the yard.
func (a SkipAction) InvolvesPick() bool {
	return a == SkipActionPick || a == SkipActionPickDrop
}

// InvolvesDrop reports whether a skip is left on site.
func (a SkipAction) InvolvesDrop() bool {
	return a == SkipActionDrop || a == SkipActionPickDrop
}

// Label returns the display text for the action.
func (a SkipAction) Label() string {
	switch a {
	case SkipActionDrop:
		return "Drop"
	case SkipActionPick:
		return "Pick"
	case SkipActionPickDrop:
		return "Pick & Drop"
	default:
		return string(a)
	}
}

// SkipActionValues lists the supported actions.
func SkipActionValues() []string {
	return []string{string(SkipActionDrop), string(SkipActionPick), string(SkipActionPickDrop)}
}

// TruckType is the lifting gear on the truck assigned to a job.
type TruckType string

const (
	TruckTypeChainLift  TruckType = "chain_lift"
	TruckTypeHookLoader TruckType = "hook_loader"
)

// Valid reports whether the truck type is supported.
func (t TruckType) Valid() bool {
	return t == TruckTypeChainLift || t == TruckTypeHookLoader
}

// Label returns the display text for the truck type.
func (t TruckType) Label() string {
	switch t {
	case TruckTypeChainLift:
		return "Chain Lift"
	case TruckTypeHookLoader:
		return "Hook Loader"
	default:
		return string(t)
	}
}

// TruckTypeValues lists the supported truck types.
func TruckTypeValues() []string {
	return []string{string(TruckTypeChainLift), string(TruckTypeHookLoader)}
}

// Actor tags who caused a status transition.
type Actor string

const (
	ActorOffice Actor = "office"
	ActorDriver Actor = "driver"
	ActorSystem Actor = "system"
)

// SkipJob is a single delivery or collection visit and the aggregate root of
// the lifecycle. JobDate is kept in YYYY-MM-DD form end to end.
type SkipJob struct {
	ID           string      `json:"id"                      db:"id"`
	JobToken     string      `json:"job_token"               db:"job_token"`
	DocketNo     string      `json:"docket_no"               db:"docket_no"`
	CustomerID   string      `json:"customer_id"             db:"customer_id"`
	DriverID     string      `json:"driver_id"               db:"driver_id"`
	TruckReg     string      `json:"truck_reg"               db:"truck_reg"`
	JobDate      string      `json:"job_date"                db:"job_date"`
	Notes        *string     `json:"notes"                   db:"notes"`
	OfficeAction *SkipAction `json:"office_action"           db:"office_action"`
	SkipSize     *SkipSize   `json:"skip_size"               db:"skip_size"`
	TruckType    *TruckType  `json:"truck_type"              db:"truck_type"`
	Status       JobStatus   `json:"status"                  db:"status"`
	CreatedAt    time.Time   `json:"created_at"              db:"created_at"`
	SentAt       *time.Time  `json:"sent_at"                 db:"sent_at"`
	StartedAt    *time.Time  `json:"started_at"              db:"started_at"`
	CompletedAt  *time.Time  `json:"completed_at"            db:"completed_at"`
}

// SkipJobListItem is a job row joined with the names shown in listings.
type SkipJobListItem struct {
	SkipJob
	CustomerName string `json:"customer_name" db:"customer_name"`
	DriverName   string `json:"driver_name"   db:"driver_name"`
}

// SkipJobListOptions filters and pages job listings. Results are ordered by
// job_date desc, then created_at desc.
type SkipJobListOptions struct {
	Status     *JobStatus
	DriverID   *string
	CustomerID *string
	DateFrom   *string // inclusive, YYYY-MM-DD
	DateTo     *string // inclusive, YYYY-MM-DD
	DocketNo   *string
	Limit      int
	Offset     int
}

// SkipJobDetail bundles a job with everything an office detail view needs.
type SkipJobDetail struct {
	Job        *SkipJob              `json:"job"`
	Customer   *Customer             `json:"customer"`
	Driver     *Driver               `json:"driver"`
	Completion *Completion           `json:"completion"`
	History    []*StatusHistoryEntry `json:"history"`
}

// DriverJobView is what the driver magic link resolves to.
type DriverJobView struct {
	Job        *SkipJob    `json:"job"`
	Customer   *Customer   `json:"customer"`
	Driver     *Driver     `json:"driver"`
	Completion *Completion `json:"completion,omitempty"`
}
