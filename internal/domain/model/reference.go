package model

import "time"

// Customer is a site owner jobs are booked for. Read-only to the lifecycle.
type Customer struct {
	ID           string    `json:"id"            db:"id"`
	Name         string    `json:"name"          db:"name"`
	Address      *string   `json:"address"       db:"address"`
	ContactName  *string   `json:"contact_name"  db:"contact_name"`
	ContactPhone *string   `json:"contact_phone" db:"contact_phone"`
	Notes        *string   `json:"notes"         db:"notes"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
}

// Driver is a truck driver jobs are dispatched to.
type Driver struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Phone     *string   `json:"phone"      db:"phone"`
	IsActive  bool      `json:"is_active"  db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateCustomerRequest seeds a customer row.
type CreateCustomerRequest struct {
	Name         string  `json:"name"          yaml:"name"`
	Address      *string `json:"address"       yaml:"address"`
	ContactName  *string `json:"contact_name"  yaml:"contact_name"`
	ContactPhone *string `json:"contact_phone" yaml:"contact_phone"`
	Notes        *string `json:"notes"         yaml:"notes"`
}

// CreateDriverRequest seeds a driver row.
type CreateDriverRequest struct {
	Name     string  `json:"name"      yaml:"name"`
	Phone    *string `json:"phone"     yaml:"phone"`
	IsActive bool    `json:"is_active" yaml:"is_active"`
}
