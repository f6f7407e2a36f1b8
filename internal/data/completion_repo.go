package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/irishmetals/skipdispatch/internal/data/pgxutil"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

const completionColumns = `
	id, skip_job_id, skip_size, action, pick_size, drop_size, site_company,
	customer_signature, driver_notes, pick_lat, pick_lng, drop_lat, drop_lng,
	lat, lng, accuracy_m, net_weight_kg, material_type, completed_time, created_at`

const (
	completionGetByIDQuery    = `SELECT ` + completionColumns + ` FROM skip_job_completion WHERE id = $1`
	completionGetByJobIDQuery = `SELECT ` + completionColumns + ` FROM skip_job_completion WHERE skip_job_id = $1`

	completionTrackerQuery = `
		SELECT c.id AS completion_id, c.skip_job_id, j.docket_no, c.action,
		       c.pick_size, c.drop_size, c.drop_lat, c.drop_lng,
		       cu.name AS customer_name, cu.address AS customer_address,
		       d.name AS driver_name, c.completed_time
		FROM skip_job_completion c
		JOIN skip_jobs j ON j.id = c.skip_job_id
		LEFT JOIN customers cu ON cu.id = j.customer_id
		LEFT JOIN drivers d ON d.id = j.driver_id
		ORDER BY c.completed_time DESC
		LIMIT $1`
)

// CompletionRepo provides database operations for completion records.
type CompletionRepo struct {
	DB *sql.DB
}

// NewCompletionRepo creates a new CompletionRepo.
func NewCompletionRepo(db *sql.DB) *CompletionRepo {
	return &CompletionRepo{DB: db}
}

// GetByID retrieves a completion by ID.
func (r *CompletionRepo) GetByID(ctx context.Context, id string) (*model.Completion, error) {
	return r.getOne(ctx, completionGetByIDQuery, id)
}

// GetByJobID retrieves the completion of a job.
func (r *CompletionRepo) GetByJobID(ctx context.Context, jobID string) (*model.Completion, error) {
	return r.getOne(ctx, completionGetByJobIDQuery, jobID)
}

func (r *CompletionRepo) getOne(ctx context.Context, query, arg string) (*model.Completion, error) {
	c, err := pgxutil.QueryOne[model.Completion](ctx, r.DB, query, arg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, ErrCompletionNotFound
		}
		return nil, fmt.Errorf("failed to get completion: %w", err)
	}
	return c, nil
}

// UpdateWeight patches net_weight_kg and material_type, the only columns
// that change after a completion is written.
func (r *CompletionRepo) UpdateWeight(
	ctx context.Context,
	id string,
	req *model.UpdateCompletionWeightRequest,
) (*model.Completion, error) {
	if req == nil {
		return nil, errors.New("update completion weight request is required")
	}

	var setParts []string
	var args []any
	patchColumn(&setParts, &args, "net_weight_kg", "", req.NetWeightKg)
	patchColumn(&setParts, &args, "material_type", "", req.MaterialType)
	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE skip_job_completion SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setParts, ", "), len(args), completionColumns)

	c, err := pgxutil.QueryOne[model.Completion](ctx, r.DB, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, ErrCompletionNotFound
		}
		return nil, fmt.Errorf("failed to update completion weight: %w", apperrors.MapDBError(err))
	}
	return c, nil
}

// ListForTracker returns the newest completions joined with job, customer and driver names.
func (r *CompletionRepo) ListForTracker(ctx context.Context, limit int) ([]*model.TrackerRow, error) {
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	rows, err := pgxutil.QueryAll[model.TrackerRow](ctx, r.DB, completionTrackerQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracker rows: %w", err)
	}
	return rows, nil
}
