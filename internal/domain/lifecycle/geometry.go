package lifecycle

import (
	"errors"
	"time"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

// ErrSkipSizeUnresolved is returned when neither skip_size, drop_size nor pick_size is set.
var ErrSkipSizeUnresolved = errors.New("completion skip size could not be resolved")

// Position is a measured GPS fix from the driver's device.
type Position struct {
	Lat       float64
	Lng       float64
	AccuracyM *float64
}

// BuildGeometry applies the completion geometry policy:
//
//   - a pick returns the skip to the yard, so the yard role gets the configured yard point
//   - a drop leaves the skip where the driver stood, so the site role gets the measured fix
//   - the driver position role always gets the measured fix
//
// Without a measured fix only the yard role can be present.
func BuildGeometry(action model.SkipAction, yard model.Point, measured *Position) model.Geometry {
	var g model.Geometry
	if action.InvolvesPick() {
		g = append(g, model.Coordinate{Role: model.CoordinateRoleYard, Lat: yard.Lat, Lng: yard.Lng})
	}
	if measured == nil {
		return g
	}
	if action.InvolvesDrop() {
		g = append(g, model.Coordinate{Role: model.CoordinateRoleSite, Lat: measured.Lat, Lng: measured.Lng})
	}
	var acc *float64
	if measured.AccuracyM != nil {
		v := *measured.AccuracyM
		acc = &v
	}
	return append(g, model.Coordinate{
		Role:      model.CoordinateRoleDriverPosition,
		Lat:       measured.Lat,
		Lng:       measured.Lng,
		AccuracyM: acc,
	})
}

// ResolveSkipSize picks the size recorded on the completion: the explicit
// skip size, else the dropped size, else the picked size.
func ResolveSkipSize(skip, drop, pick *model.SkipSize) (model.SkipSize, bool) {
	for _, s := range []*model.SkipSize{skip, drop, pick} {
		if s != nil && *s != "" {
			return *s, true
		}
	}
	return "", false
}

// CompletionInput is everything BuildCompletion needs. Customer may be nil.
type CompletionInput struct {
	Job         *model.SkipJob
	Request     *model.CompleteJobRequest
	Customer    *model.Customer
	Yard        model.Point
	CompletedAt time.Time
}

// BuildCompletion assembles the completion row for a validated request.
func BuildCompletion(in CompletionInput) (*model.Completion, error) {
	req := in.Request
	size, ok := ResolveSkipSize(req.SkipSize, req.DropSize, req.PickSize)
	if !ok {
		return nil, ErrSkipSizeUnresolved
	}

	c := &model.Completion{
		SkipJobID:         in.Job.ID,
		SkipSize:          size,
		Action:            req.Action,
		PickSize:          req.PickSize,
		DropSize:          req.DropSize,
		CustomerSignature: req.CustomerSignature,
		DriverNotes:       req.DriverNotes,
		CompletedTime:     in.CompletedAt,
	}
	if in.Customer != nil && in.Customer.Name != "" {
		name := in.Customer.Name
		c.SiteCompany = &name
	}

	var measured *Position
	if req.HasPosition() {
		measured = &Position{Lat: *req.Lat, Lng: *req.Lng, AccuracyM: req.AccuracyM}
	}
	if err := c.SetGeometry(BuildGeometry(req.Action, in.Yard, measured)); err != nil {
		return nil, err
	}
	return c, nil
}
