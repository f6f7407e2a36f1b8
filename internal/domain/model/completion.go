package model

import (
	"errors"
	"fmt"
	"time"
)

// CoordinateRole distinguishes the three places a completion can record.
type CoordinateRole string

const (
	// CoordinateRoleYard is the fixed yard a picked skip returns to.
	CoordinateRoleYard CoordinateRole = "yard"
	// CoordinateRoleSite is where a dropped skip now sits.
	CoordinateRoleSite CoordinateRole = "site"
	// CoordinateRoleDriverPosition is where the driver stood when completing.
	CoordinateRoleDriverPosition CoordinateRole = "driver_position"
)

// Coordinate is a tagged point on a completion.
type Coordinate struct {
	Role      CoordinateRole `json:"role"`
	Lat       float64        `json:"lat"`
	Lng       float64        `json:"lng"`
	AccuracyM *float64       `json:"accuracy_m,omitempty"`
}

// Point is an untagged latitude/longitude pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry is the set of tagged coordinates on one completion, at most one per role.
type Geometry []Coordinate

// ErrDuplicateCoordinateRole is returned when a role appears twice in a Geometry.
var ErrDuplicateCoordinateRole = errors.New("coordinate role appears more than once")

// Validate enforces the at-most-one-per-role invariant.
func (g Geometry) Validate() error {
	seen := make(map[CoordinateRole]struct{}, len(g))
	for _, c := range g {
		switch c.Role {
		case CoordinateRoleYard, CoordinateRoleSite, CoordinateRoleDriverPosition:
		default:
			return fmt.Errorf("unknown coordinate role %q", c.Role)
		}
		if _, dup := seen[c.Role]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateCoordinateRole, c.Role)
		}
		seen[c.Role] = struct{}{}
	}
	return nil
}

// Get returns the coordinate with the given role.
func (g Geometry) Get(role CoordinateRole) (Coordinate, bool) {
	for _, c := range g {
		if c.Role == role {
			return c, true
		}
	}
	return Coordinate{}, false
}

// Completion is the record a driver's completion creates. Only NetWeightKg
// and MaterialType change after insert.
type Completion struct {
	ID                string     `json:"id"                 db:"id"`
	SkipJobID         string     `json:"skip_job_id"        db:"skip_job_id"`
	SkipSize          SkipSize   `json:"skip_size"          db:"skip_size"`
	Action            SkipAction `json:"action"             db:"action"`
	PickSize          *SkipSize  `json:"pick_size"          db:"pick_size"`
	DropSize          *SkipSize  `json:"drop_size"          db:"drop_size"`
	SiteCompany       *string    `json:"site_company"       db:"site_company"`
	CustomerSignature *string    `json:"customer_signature" db:"customer_signature"`
	DriverNotes       *string    `json:"driver_notes"       db:"driver_notes"`
	PickLat           *float64   `json:"pick_lat"           db:"pick_lat"`
	PickLng           *float64   `json:"pick_lng"           db:"pick_lng"`
	DropLat           *float64   `json:"drop_lat"           db:"drop_lat"`
	DropLng           *float64   `json:"drop_lng"           db:"drop_lng"`
	Lat               *float64   `json:"lat"                db:"lat"`
	Lng               *float64   `json:"lng"                db:"lng"`
	AccuracyM         *float64   `json:"accuracy_m"         db:"accuracy_m"`
	NetWeightKg       *float64   `json:"net_weight_kg"      db:"net_weight_kg"`
	MaterialType      *string    `json:"material_type"      db:"material_type"`
	CompletedTime     time.Time  `json:"completed_time"     db:"completed_time"`
	CreatedAt         time.Time  `json:"created_at"         db:"created_at"`
}

// Geometry rebuilds the tagged coordinates from the stored columns. A role is
// present only when both halves of its pair are set.
func (c *Completion) Geometry() Geometry {
	var g Geometry
	if c.PickLat != nil && c.PickLng != nil {
		g = append(g, Coordinate{Role: CoordinateRoleYard, Lat: *c.PickLat, Lng: *c.PickLng})
	}
	if c.DropLat != nil && c.DropLng != nil {
		g = append(g, Coordinate{Role: CoordinateRoleSite, Lat: *c.DropLat, Lng: *c.DropLng})
	}
	if c.Lat != nil && c.Lng != nil {
		g = append(g, Coordinate{
			Role:      CoordinateRoleDriverPosition,
			Lat:       *c.Lat,
			Lng:       *c.Lng,
			AccuracyM: copyFloat(c.AccuracyM),
		})
	}
	return g
}

// SetGeometry flattens tagged coordinates onto the stored columns, clearing
// any role that is absent.
func (c *Completion) SetGeometry(g Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	c.PickLat, c.PickLng = nil, nil
	c.DropLat, c.DropLng = nil, nil
	c.Lat, c.Lng, c.AccuracyM = nil, nil, nil
	for _, coord := range g {
		lat, lng := coord.Lat, coord.Lng
		switch coord.Role {
		case CoordinateRoleYard:
			c.PickLat, c.PickLng = &lat, &lng
		case CoordinateRoleSite:
			c.DropLat, c.DropLng = &lat, &lng
		case CoordinateRoleDriverPosition:
			c.Lat, c.Lng = &lat, &lng
			c.AccuracyM = copyFloat(coord.AccuracyM)
		}
	}
	return nil
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
