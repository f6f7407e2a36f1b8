package model

import (
	"math"
	"strings"

	"github.com/irishmetals/skipdispatch/internal/domain/validation"
)

const (
	msgSkipSize  = "must be a valid skip size"
	msgAction    = "must be drop, pick, or pick_drop"
	msgTruckType = "must be chain_lift or hook_loader"
	msgStatus    = "must be a valid status"
)

// CreateJobRequest is the office's input to create a job.
type CreateJobRequest struct {
	CustomerID   string      `json:"customer_id"`
	DriverID     string      `json:"driver_id"`
	TruckReg     string      `json:"truck_reg"`
	JobDate      string      `json:"job_date"`
	Notes        *string     `json:"notes,omitempty"`
	OfficeAction *SkipAction `json:"office_action,omitempty"`
	SkipSize     *SkipSize   `json:"skip_size,omitempty"`
	TruckType    *TruckType  `json:"truck_type,omitempty"`
}

// Normalize trims strings and turns empty optional values into nil.
func (r *CreateJobRequest) Normalize() {
	r.CustomerID = strings.TrimSpace(r.CustomerID)
	r.DriverID = strings.TrimSpace(r.DriverID)
	r.TruckReg = strings.TrimSpace(r.TruckReg)
	r.JobDate = strings.TrimSpace(r.JobDate)
	r.Notes = trimmedOrNil(r.Notes)
	r.OfficeAction = emptyToNil(r.OfficeAction)
	r.SkipSize = emptyToNil(r.SkipSize)
	r.TruckType = emptyToNil(r.TruckType)
}

// Validate reports every problem with the request at once.
func (r *CreateJobRequest) Validate() error {
	return validation.New().
		RequireUUID("customer_id", r.CustomerID).
		RequireUUID("driver_id", r.DriverID).
		RequireNonEmpty("truck_reg", r.TruckReg).
		RequireDate("job_date", r.JobDate).
		OptionalOneOf("office_action", (*string)(r.OfficeAction), SkipActionValues(), msgAction).
		OptionalOneOf("skip_size", (*string)(r.SkipSize), SkipSizeValues(), msgSkipSize).
		OptionalOneOf("truck_type", (*string)(r.TruckType), TruckTypeValues(), msgTruckType).
		Err()
}

// UpdateJobRequest is a sparse office edit. See Optional for the merge rule.
// Required columns reject an explicit null.
type UpdateJobRequest struct {
	CustomerID   Optional[string]     `json:"customer_id,omitzero"`
	DriverID     Optional[string]     `json:"driver_id,omitzero"`
	TruckReg     Optional[string]     `json:"truck_reg,omitzero"`
	JobDate      Optional[string]     `json:"job_date,omitzero"`
	Notes        Optional[string]     `json:"notes,omitzero"`
	OfficeAction Optional[SkipAction] `json:"office_action,omitzero"`
	SkipSize     Optional[SkipSize]   `json:"skip_size,omitzero"`
	TruckType    Optional[TruckType]  `json:"truck_type,omitzero"`
}

// Normalize trims strings; empty optional columns become explicit nulls.
func (r *UpdateJobRequest) Normalize() {
	trimOptional(&r.CustomerID)
	trimOptional(&r.DriverID)
	trimOptional(&r.TruckReg)
	trimOptional(&r.JobDate)
	trimOptional(&r.Notes)
	clearIfEmpty(&r.Notes)
	clearIfEmpty(&r.OfficeAction)
	clearIfEmpty(&r.SkipSize)
	clearIfEmpty(&r.TruckType)
}

// HasChanges reports whether any field was present.
func (r *UpdateJobRequest) HasChanges() bool {
	return r.CustomerID.Set || r.DriverID.Set || r.TruckReg.Set || r.JobDate.Set ||
		r.Notes.Set || r.OfficeAction.Set || r.SkipSize.Set || r.TruckType.Set
}

// Validate reports every problem with the patch at once.
func (r *UpdateJobRequest) Validate() error {
	c := validation.New()
	if r.CustomerID.Set {
		c.Check(!r.CustomerID.IsNull(), "customer_id is required")
		if r.CustomerID.Value != nil {
			c.RequireUUID("customer_id", *r.CustomerID.Value)
		}
	}
	if r.DriverID.Set {
		c.Check(!r.DriverID.IsNull(), "driver_id is required")
		if r.DriverID.Value != nil {
			c.RequireUUID("driver_id", *r.DriverID.Value)
		}
	}
	if r.TruckReg.Set {
		c.RequireNonEmpty("truck_reg", valueOr(r.TruckReg.Value, ""))
	}
	if r.JobDate.Set {
		c.RequireDate("job_date", valueOr(r.JobDate.Value, ""))
	}
	c.OptionalOneOf("office_action", (*string)(r.OfficeAction.Value), SkipActionValues(), msgAction).
		OptionalOneOf("skip_size", (*string)(r.SkipSize.Value), SkipSizeValues(), msgSkipSize).
		OptionalOneOf("truck_type", (*string)(r.TruckType.Value), TruckTypeValues(), msgTruckType)
	return c.Err()
}

// CompleteJobRequest is what the driver submits from the magic link. Token is
// taken from the link, not the body.
type CompleteJobRequest struct {
	Token             string     `json:"-"`
	Action            SkipAction `json:"action"`
	SkipSize          *SkipSize  `json:"skip_size,omitempty"`
	PickSize          *SkipSize  `json:"pick_size,omitempty"`
	DropSize          *SkipSize  `json:"drop_size,omitempty"`
	Lat               *float64   `json:"lat,omitempty"`
	Lng               *float64   `json:"lng,omitempty"`
	AccuracyM         *float64   `json:"accuracy_m,omitempty"`
	DriverNotes       *string    `json:"driver_notes,omitempty"`
	CustomerSignature *string    `json:"customer_signature,omitempty"`
}

// Normalize trims free text and turns empty sizes into nil.
func (r *CompleteJobRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
	r.SkipSize = emptyToNil(r.SkipSize)
	r.PickSize = emptyToNil(r.PickSize)
	r.DropSize = emptyToNil(r.DropSize)
	r.DriverNotes = trimmedOrNil(r.DriverNotes)
	r.CustomerSignature = trimmedOrNil(r.CustomerSignature)
}

// Validate checks field shapes and that the sizes supplied fit the action.
func (r *CompleteJobRequest) Validate() error {
	c := validation.New().
		RequireNonEmpty("token", r.Token).
		OneOf("action", string(r.Action), SkipActionValues(), msgAction).
		OptionalOneOf("skip_size", (*string)(r.SkipSize), SkipSizeValues(), msgSkipSize).
		OptionalOneOf("pick_size", (*string)(r.PickSize), SkipSizeValues(), msgSkipSize).
		OptionalOneOf("drop_size", (*string)(r.DropSize), SkipSizeValues(), msgSkipSize)

	if r.Action.InvolvesPick() {
		c.Check(r.PickSize != nil, "pick_size is required when action is "+string(r.Action))
	}
	if r.Action.InvolvesDrop() {
		c.Check(r.DropSize != nil, "drop_size is required when action is "+string(r.Action))
	}

	c.Check((r.Lat == nil) == (r.Lng == nil), "lat and lng must be provided together")
	if r.Lat != nil {
		c.Check(validation.InRange(*r.Lat, -90, 90), "lat must be between -90 and 90")
	}
	if r.Lng != nil {
		c.Check(validation.InRange(*r.Lng, -180, 180), "lng must be between -180 and 180")
	}
	c.NonNegative("accuracy_m", r.AccuracyM)
	return c.Err()
}

// HasPosition reports whether the driver's GPS fix was captured.
func (r *CompleteJobRequest) HasPosition() bool {
	return r.Lat != nil && r.Lng != nil && !math.IsNaN(*r.Lat) && !math.IsNaN(*r.Lng)
}

// UpdateCompletionWeightRequest carries weighbridge data entered after the visit.
type UpdateCompletionWeightRequest struct {
	NetWeightKg  Optional[float64] `json:"net_weight_kg,omitzero"`
	MaterialType Optional[string]  `json:"material_type,omitzero"`
}

// Normalize trims the material; blank material clears it.
func (r *UpdateCompletionWeightRequest) Normalize() {
	trimOptional(&r.MaterialType)
	clearIfEmpty(&r.MaterialType)
}

// Validate checks the weight is null or a non-negative number.
func (r *UpdateCompletionWeightRequest) Validate(completionID string) error {
	return validation.New().
		RequireUUID("completion_id", completionID).
		NonNegative("net_weight_kg", r.NetWeightKg.Value).
		Err()
}

// ParseJobStatus validates a status filter value.
func ParseJobStatus(v string) (JobStatus, error) {
	if err := validation.New().OneOf("status", v, JobStatusValues(), msgStatus).Err(); err != nil {
		return "", err
	}
	return JobStatus(v), nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func emptyToNil[T ~string](v *T) *T {
	if v == nil || strings.TrimSpace(string(*v)) == "" {
		return nil
	}
	return v
}

func trimOptional(o *Optional[string]) {
	if o.Value != nil {
		t := strings.TrimSpace(*o.Value)
		o.Value = &t
	}
}

func clearIfEmpty[T ~string](o *Optional[T]) {
	if o.Value != nil && strings.TrimSpace(string(*o.Value)) == "" {
		o.Value = nil
	}
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
