// Package docket renders the completion docket: the PDF sent to the office
// and the HTML email body that carries it.
package docket

import (
	"strconv"
	"time"
	// Embedded zone data so Europe/Dublin resolves on minimal images.
	_ "time/tzdata"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

// DefaultTimezone is the zone docket dates are printed in.
const DefaultTimezone = "Europe/Dublin"

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006, 15:04:05"
	notAvailable   = "N/A"
	dash           = "-"
)

// Data is everything a docket shows. Job and Completion are required;
// Customer and Driver may be nil when the reference rows are gone.
type Data struct {
	Job         *model.SkipJob
	Completion  *model.Completion
	Customer    *model.Customer
	Driver      *model.Driver
	GeneratedAt time.Time
	// Location defaults to Europe/Dublin.
	Location *time.Location
}

// LoadLocation resolves name, falling back to UTC when the zone is unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (d Data) location() *time.Location {
	if d.Location != nil {
		return d.Location
	}
	return LoadLocation(DefaultTimezone)
}

// DocketNo returns the job's docket number.
func (d Data) DocketNo() string {
	if d.Job == nil {
		return ""
	}
	return d.Job.DocketNo
}

// CustomerName returns the customer name or N/A.
func (d Data) CustomerName() string {
	if d.Customer == nil || d.Customer.Name == "" {
		return notAvailable
	}
	return d.Customer.Name
}

// DriverName returns the driver name or N/A.
func (d Data) DriverName() string {
	if d.Driver == nil || d.Driver.Name == "" {
		return notAvailable
	}
	return d.Driver.Name
}

func (d Data) customerAddress() string {
	if d.Customer == nil || d.Customer.Address == nil {
		return ""
	}
	return *d.Customer.Address
}

func (d Data) customerPhone() string {
	if d.Customer == nil || d.Customer.ContactPhone == nil {
		return ""
	}
	return *d.Customer.ContactPhone
}

// FormatDateTime prints t in loc as dd/mm/yyyy, HH:MM:SS.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dateTimeLayout)
}

// FormatJobDate turns a YYYY-MM-DD job date into dd/mm/yyyy. Unparseable
// input is returned unchanged.
func FormatJobDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format(dateLayout)
}

// MapsLink returns a Google Maps link for the point.
func MapsLink(lat, lng float64) string {
	return "https://www.google.com/maps?q=" + formatFloat(lat) + "," + formatFloat(lng)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return dash
	}
	return s
}

func sizeLabel(s *model.SkipSize) string {
	if s == nil {
		return ""
	}
	return s.Label()
}
