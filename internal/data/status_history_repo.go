package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/irishmetals/skipdispatch/internal/data/pgxutil"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

const (
	statusHistoryInsertQuery = `
		INSERT INTO skip_job_status_history (skip_job_id, docket_no, old_status, new_status, changed_by)
		VALUES ($1, $2, $3, $4, $5)`

	// id is a bigserial so it orders entries by insertion within a job.
	statusHistoryListQuery = `
		SELECT id, skip_job_id, docket_no, old_status, new_status, changed_by, changed_at
		FROM skip_job_status_history
		WHERE skip_job_id = $1
		ORDER BY id ASC`
)

// StatusHistoryRepo appends and reads the status audit log. Rows are never
// updated or deleted.
type StatusHistoryRepo struct {
	DB *sql.DB
}

// NewStatusHistoryRepo creates a new StatusHistoryRepo.
func NewStatusHistoryRepo(db *sql.DB) *StatusHistoryRepo {
	return &StatusHistoryRepo{DB: db}
}

// Append writes one entry; changed_at is assigned by storage.
func (r *StatusHistoryRepo) Append(ctx context.Context, entry *model.StatusHistoryEntry) error {
	if entry == nil {
		return errors.New("status history entry is required")
	}
	var old *string
	if entry.OldStatus != nil {
		s := string(*entry.OldStatus)
		old = &s
	}
	if _, err := r.DB.ExecContext(ctx, statusHistoryInsertQuery,
		entry.SkipJobID, entry.DocketNo, old, string(entry.NewStatus), string(entry.ChangedBy),
	); err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}
	return nil
}

// ListByJob returns a job's entries in insertion order.
func (r *StatusHistoryRepo) ListByJob(ctx context.Context, jobID string) ([]*model.StatusHistoryEntry, error) {
	entries, err := pgxutil.QueryAll[model.StatusHistoryEntry](ctx, r.DB, statusHistoryListQuery, jobID)
	if err != nil {
		if isInvalidUUID(err) {
			return []*model.StatusHistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}
	return entries, nil
}
