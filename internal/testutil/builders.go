package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a builder for the given customer and driver with a fixed job date.
func NewJobRequest(customerID, driverID string) *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			CustomerID: customerID,
			DriverID:   driverID,
			TruckReg:   "191-D-12345",
			JobDate:    "2025-01-15",
		},
	}
}

// WithTruckReg sets the truck registration.
func (b *JobRequestBuilder) WithTruckReg(reg string) *JobRequestBuilder {
	b.req.TruckReg = reg
	return b
}

// WithJobDate sets the job date (YYYY-MM-DD).
func (b *JobRequestBuilder) WithJobDate(date string) *JobRequestBuilder {
	b.req.JobDate = date
	return b
}

// WithNotes sets office notes.
func (b *JobRequestBuilder) WithNotes(notes string) *JobRequestBuilder {
	b.req.Notes = &notes
	return b
}

// WithOfficeAction sets the planned action.
func (b *JobRequestBuilder) WithOfficeAction(action model.SkipAction) *JobRequestBuilder {
	b.req.OfficeAction = &action
	return b
}

// WithSkipSize sets the planned skip size.
func (b *JobRequestBuilder) WithSkipSize(size model.SkipSize) *JobRequestBuilder {
	b.req.SkipSize = &size
	return b
}

// WithTruckType sets the truck type.
func (b *JobRequestBuilder) WithTruckType(tt model.TruckType) *JobRequestBuilder {
	b.req.TruckType = &tt
	return b
}

// Build returns the request.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}

// CompleteRequestBuilder builds driver completion submissions.
type CompleteRequestBuilder struct {
	req *model.CompleteJobRequest
}

// NewCompleteRequest starts a completion for the token with the given action.
func NewCompleteRequest(token string, action model.SkipAction) *CompleteRequestBuilder {
	return &CompleteRequestBuilder{req: &model.CompleteJobRequest{Token: token, Action: action}}
}

// WithSizes sets pick and drop sizes; empty strings leave a size unset.
func (b *CompleteRequestBuilder) WithSizes(pick, drop model.SkipSize) *CompleteRequestBuilder {
	if pick != "" {
		b.req.PickSize = &pick
	}
	if drop != "" {
		b.req.DropSize = &drop
	}
	return b
}

// WithPosition sets the driver's GPS fix.
func (b *CompleteRequestBuilder) WithPosition(lat, lng, accuracy float64) *CompleteRequestBuilder {
	b.req.Lat = &lat
	b.req.Lng = &lng
	b.req.AccuracyM = &accuracy
	return b
}

// WithNotes sets driver notes.
func (b *CompleteRequestBuilder) WithNotes(notes string) *CompleteRequestBuilder {
	b.req.DriverNotes = &notes
	return b
}

// Build returns the request.
func (b *CompleteRequestBuilder) Build() *model.CompleteJobRequest {
	return b.req
}

// SeedCustomer inserts a customer and returns its ID.
func SeedCustomer(t TestingTB, db *sql.DB, name, address string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id string
	if err := db.QueryRowContext(ctx,
		`INSERT INTO customers (name, address, contact_phone) VALUES ($1, NULLIF($2, ''), '087 123 4567') RETURNING id`,
		name, address,
	).Scan(&id); err != nil {
		t.Fatalf("Failed to seed customer %q: %v", name, err)
	}
	return id
}

// SeedDriver inserts an active driver and returns its ID.
func SeedDriver(t TestingTB, db *sql.DB, name, phone string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id string
	if err := db.QueryRowContext(ctx,
		`INSERT INTO drivers (name, phone) VALUES ($1, NULLIF($2, '')) RETURNING id`,
		name, phone,
	).Scan(&id); err != nil {
		t.Fatalf("Failed to seed driver %q: %v", name, err)
	}
	return id
}

// JobStatusOf reads a job's status directly, bypassing repositories.
func JobStatusOf(t TestingTB, db *sql.DB, jobID string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var status string
	if err := db.QueryRowContext(ctx, `SELECT status FROM skip_jobs WHERE id = $1`, jobID).Scan(&status); err != nil {
		t.Fatalf("Failed to read status of job %s: %v", jobID, err)
	}
	return status
}
