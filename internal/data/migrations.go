package data

import (
	"context"
	"database/sql"

	"github.com/irishmetals/skipdispatch/internal/migrate"
)

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}

// MigrationStatus lists embedded migrations and whether each has been applied.
func MigrationStatus(ctx context.Context, db *sql.DB) ([]migrate.Migration, error) {
	return migrate.Status(ctx, db)
}
