// Package migrate applies the embedded schema migrations in version order.
package migrate

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration is one embedded migration and whether it has been applied.
type Migration struct {
	Version   string     `json:"version"              yaml:"version"`
	Checksum  string     `json:"checksum"             yaml:"checksum"`
	Applied   bool       `json:"applied"              yaml:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty" yaml:"applied_at,omitempty"`
	// Drifted is set when the applied checksum differs from the embedded file.
	Drifted bool `json:"drifted,omitempty" yaml:"drifted,omitempty"`
}

type appliedRow struct {
	checksum  sql.NullString
	appliedAt time.Time
}

// Run applies every pending migration. It is safe to call multiple times.
func Run(ctx context.Context, db *sql.DB) error {
	logger := slog.Default().With("component", "migrations")

	if err := ensureTable(ctx, db); err != nil {
		return err
	}
	files, err := embeddedFiles()
	if err != nil {
		return err
	}
	applied, err := loadApplied(ctx, db)
	if err != nil {
		return err
	}

	for _, f := range files {
		body, readErr := migrationsFS.ReadFile("migrations/" + f)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", f, readErr)
		}
		version := strings.TrimSuffix(f, ".sql")
		sum := checksum(body)

		if row, ok := applied[version]; ok {
			if row.checksum.Valid && row.checksum.String != sum {
				logger.WarnContext(ctx, "applied migration differs from embedded file",
					"version", version,
					"applied_checksum", row.checksum.String,
					"embedded_checksum", sum,
				)
			}
			continue
		}

		if applyErr := apply(ctx, db, logger, migrationFile{version: version, body: body, sum: sum}); applyErr != nil {
			return applyErr
		}
	}
	return nil
}

// Status reports every embedded migration and whether it has been applied.
func Status(ctx context.Context, db *sql.DB) ([]Migration, error) {
	if err := ensureTable(ctx, db); err != nil {
		return nil, err
	}
	files, err := embeddedFiles()
	if err != nil {
		return nil, err
	}
	applied, err := loadApplied(ctx, db)
	if err != nil {
		return nil, err
	}

	out := make([]Migration, 0, len(files))
	for _, f := range files {
		body, readErr := migrationsFS.ReadFile("migrations/" + f)
		if readErr != nil {
			return nil, fmt.Errorf("read migration %s: %w", f, readErr)
		}
		m := Migration{Version: strings.TrimSuffix(f, ".sql"), Checksum: checksum(body)}
		if row, ok := applied[m.Version]; ok {
			at := row.appliedAt
			m.Applied = true
			m.AppliedAt = &at
			m.Drifted = row.checksum.Valid && row.checksum.String != m.Checksum
		}
		out = append(out, m)
	}
	return out, nil
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			checksum TEXT,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func embeddedFiles() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func loadApplied(ctx context.Context, db *sql.DB) (map[string]appliedRow, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, checksum, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	out := make(map[string]appliedRow)
	for rows.Next() {
		var version string
		var row appliedRow
		if scanErr := rows.Scan(&version, &row.checksum, &row.appliedAt); scanErr != nil {
			return nil, fmt.Errorf("scan applied migration: %w", scanErr)
		}
		out[version] = row
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied migrations: %w", err)
	}
	return out, nil
}

type migrationFile struct {
	version string
	body    []byte
	sum     string
}

func apply(ctx context.Context, db *sql.DB, logger *slog.Logger, m migrationFile) error {
	logger.InfoContext(ctx, "applying migration", "version", m.version)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			logger.ErrorContext(ctx, "failed to rollback transaction", "err", rollbackErr, "version", m.version)
		}
	}()

	if _, execErr := tx.ExecContext(ctx, string(m.body)); execErr != nil {
		return fmt.Errorf("exec migration %s: %w", m.version, execErr)
	}
	if _, insErr := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)`, m.version, m.sum); insErr != nil {
		return fmt.Errorf("record migration %s: %w", m.version, insErr)
	}
	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("commit migration %s: %w", m.version, commitErr)
	}
	return nil
}

func checksum(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
