package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/irishmetals/skipdispatch/internal/data/pgxutil"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

const (
	customerColumns = `id, name, address, contact_name, contact_phone, notes, created_at`
	driverColumns   = `id, name, phone, is_active, created_at`
)

// ReferenceRepo reads customers and drivers. Inserts exist only for seeding.
type ReferenceRepo struct {
	DB *sql.DB
}

// NewReferenceRepo creates a new ReferenceRepo.
func NewReferenceRepo(db *sql.DB) *ReferenceRepo {
	return &ReferenceRepo{DB: db}
}

// GetCustomer retrieves a customer by ID.
func (r *ReferenceRepo) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	c, err := pgxutil.QueryOne[model.Customer](ctx, r.DB,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

// GetDriver retrieves a driver by ID, active or not.
func (r *ReferenceRepo) GetDriver(ctx context.Context, id string) (*model.Driver, error) {
	d, err := pgxutil.QueryOne[model.Driver](ctx, r.DB,
		`SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return d, nil
}

// ListCustomers returns customers ordered by name.
func (r *ReferenceRepo) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	out, err := pgxutil.QueryAll[model.Customer](ctx, r.DB,
		`SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return out, nil
}

// ListActiveDrivers returns active drivers ordered by name.
func (r *ReferenceRepo) ListActiveDrivers(ctx context.Context) ([]*model.Driver, error) {
	out, err := pgxutil.QueryAll[model.Driver](ctx, r.DB,
		`SELECT `+driverColumns+` FROM drivers WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return out, nil
}

// CreateCustomer inserts a customer.
func (r *ReferenceRepo) CreateCustomer(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error) {
	c, err := pgxutil.QueryOne[model.Customer](ctx, r.DB, `
		INSERT INTO customers (name, address, contact_name, contact_phone, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+customerColumns,
		req.Name, req.Address, req.ContactName, req.ContactPhone, req.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", apperrors.MapDBError(err))
	}
	return c, nil
}

// CreateDriver inserts a driver.
func (r *ReferenceRepo) CreateDriver(ctx context.Context, req *model.CreateDriverRequest) (*model.Driver, error) {
	d, err := pgxutil.QueryOne[model.Driver](ctx, r.DB, `
		INSERT INTO drivers (name, phone, is_active)
		VALUES ($1, $2, $3)
		RETURNING `+driverColumns,
		req.Name, req.Phone, req.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", apperrors.MapDBError(err))
	}
	return d, nil
}

// FindCustomerByName returns the first customer with the exact name, or nil.
func (r *ReferenceRepo) FindCustomerByName(ctx context.Context, name string) (*model.Customer, error) {
	c, err := pgxutil.QueryOne[model.Customer](ctx, r.DB,
		`SELECT `+customerColumns+` FROM customers WHERE name = $1 ORDER BY created_at LIMIT 1`, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return c, nil
}

// FindDriverByName returns the first driver with the exact name, or nil.
func (r *ReferenceRepo) FindDriverByName(ctx context.Context, name string) (*model.Driver, error) {
	d, err := pgxutil.QueryOne[model.Driver](ctx, r.DB,
		`SELECT `+driverColumns+` FROM drivers WHERE name = $1 ORDER BY created_at LIMIT 1`, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find driver: %w", err)
	}
	return d, nil
}
