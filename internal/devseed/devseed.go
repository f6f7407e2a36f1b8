// Package devseed inserts demo customers and drivers for local development.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/irishmetals/skipdispatch/internal/data"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

// Store is the slice of the reference repository seeding needs.
type Store interface {
	FindCustomerByName(ctx context.Context, name string) (*model.Customer, error)
	FindDriverByName(ctx context.Context, name string) (*model.Driver, error)
	CreateCustomer(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error)
	CreateDriver(ctx context.Context, req *model.CreateDriverRequest) (*model.Driver, error)
}

// NewStore returns the Postgres-backed seeding store.
func NewStore(db *sql.DB) *data.ReferenceRepo {
	return data.NewReferenceRepo(db)
}

// Summary counts what a seeding run did.
type Summary struct {
	CustomersCreated int
	DriversCreated   int
	Skipped          int
}

func strPtr(s string) *string { return &s }

// Customers are the demo customers. Names are the idempotency key.
func Customers() []model.CreateCustomerRequest {
	return []model.CreateCustomerRequest{
		{
			Name:         "Murphy Construction",
			Address:      strPtr("Unit 4, Ballymount Industrial Estate, Dublin 12"),
			ContactName:  strPtr("Sean Murphy"),
			ContactPhone: strPtr("0871234567"),
		},
		{
			Name:         "Kelly Demolition",
			Address:      strPtr("Old Naas Road, Clondalkin, Dublin 22"),
			ContactName:  strPtr("Aoife Kelly"),
			ContactPhone: strPtr("0867654321"),
			Notes:        strPtr("Gate code 4411"),
		},
		{
			Name:    "Liffey Scrap Recycling",
			Address: strPtr("North Wall Quay, Dublin 1"),
		},
	}
}

// Drivers are the demo drivers.
func Drivers() []model.CreateDriverRequest {
	return []model.CreateDriverRequest{
		{Name: "Pat Byrne", Phone: strPtr("0851112222"), IsActive: true},
		{Name: "Niamh Walsh", Phone: strPtr("+353831234567"), IsActive: true},
		{Name: "Declan Ryan", Phone: strPtr("0899876543"), IsActive: false},
	}
}

// Run inserts the demo rows that are missing. Re-running is a no-op.
func Run(ctx context.Context, store Store, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var sum Summary

	for _, req := range Customers() {
		existing, err := store.FindCustomerByName(ctx, req.Name)
		if err != nil {
			return sum, fmt.Errorf("lookup customer %q: %w", req.Name, err)
		}
		if existing != nil {
			sum.Skipped++
			logger.DebugContext(ctx, "customer already exists", "name", req.Name, "id", existing.ID)
			continue
		}
		created, err := store.CreateCustomer(ctx, &req)
		if err != nil {
			return sum, fmt.Errorf("create customer %q: %w", req.Name, err)
		}
		sum.CustomersCreated++
		logger.InfoContext(ctx, "created customer", "name", created.Name, "id", created.ID)
	}

	for _, req := range Drivers() {
		existing, err := store.FindDriverByName(ctx, req.Name)
		if err != nil {
			return sum, fmt.Errorf("lookup driver %q: %w", req.Name, err)
		}
		if existing != nil {
			sum.Skipped++
			logger.DebugContext(ctx, "driver already exists", "name", req.Name, "id", existing.ID)
			continue
		}
		created, err := store.CreateDriver(ctx, &req)
		if err != nil {
			return sum, fmt.Errorf("create driver %q: %w", req.Name, err)
		}
		sum.DriversCreated++
		logger.InfoContext(ctx, "created driver", "name", created.Name, "id", created.ID, "active", created.IsActive)
	}

	return sum, nil
}
