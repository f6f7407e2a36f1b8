package model

import "time"

// SkipLocationKind says where a tracked skip currently is.
type SkipLocationKind string

const (
	SkipLocationSite SkipLocationKind = "site"
	SkipLocationYard SkipLocationKind = "yard"
)

// TrackerRow is a completion joined with the job, customer and driver names.
type TrackerRow struct {
	CompletionID    string     `db:"completion_id"`
	SkipJobID       string     `db:"skip_job_id"`
	DocketNo        string     `db:"docket_no"`
	Action          SkipAction `db:"action"`
	PickSize        *SkipSize  `db:"pick_size"`
	DropSize        *SkipSize  `db:"drop_size"`
	DropLat         *float64   `db:"drop_lat"`
	DropLng         *float64   `db:"drop_lng"`
	CustomerName    *string    `db:"customer_name"`
	CustomerAddress *string    `db:"customer_address"`
	DriverName      *string    `db:"driver_name"`
	CompletedTime   time.Time  `db:"completed_time"`
}

// SkipLocation is one skip movement derived from a completion.
type SkipLocation struct {
	Size            SkipSize         `json:"size"              yaml:"size"`
	Location        SkipLocationKind `json:"location"          yaml:"location"`
	CustomerName    *string          `json:"customer_name"     yaml:"customer_name,omitempty"`
	CustomerAddress *string          `json:"customer_address"  yaml:"customer_address,omitempty"`
	Position        *Point           `json:"position"          yaml:"position,omitempty"`
	DocketNo        string           `json:"docket_no"         yaml:"docket_no"`
	DriverName      string           `json:"driver_name"       yaml:"driver_name"`
	CompletedAt     time.Time        `json:"completed_at"      yaml:"completed_at"`
}

// TrackerSummary is the skip tracker view.
type TrackerSummary struct {
	Locations []SkipLocation `json:"locations" yaml:"locations"`
	OnSite    map[string]int `json:"on_site"   yaml:"on_site"`
	InYard    map[string]int `json:"in_yard"   yaml:"in_yard"`
}
