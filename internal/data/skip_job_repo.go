package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/irishmetals/skipdispatch/internal/core"
	"github.com/irishmetals/skipdispatch/internal/data/database"
	"github.com/irishmetals/skipdispatch/internal/data/pgxutil"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

const skipJobColumns = `
	id, job_token, docket_no, customer_id, driver_id, truck_reg,
	to_char(job_date, 'YYYY-MM-DD') AS job_date,
	notes, office_action, skip_size, truck_type, status,
	created_at, sent_at, started_at, completed_at`

const (
	skipJobInsertQuery = `
		INSERT INTO skip_jobs (
			job_token, docket_no, customer_id, driver_id, truck_reg, job_date,
			notes, office_action, skip_size, truck_type, status, created_at
		) VALUES (
			$1, generate_docket_number($5::date), $2, $3, $4, $5::date,
			$6, $7, $8, $9, 'created', $10
		) RETURNING ` + skipJobColumns

	skipJobGetByIDQuery    = `SELECT ` + skipJobColumns + ` FROM skip_jobs WHERE id = $1`
	skipJobGetByTokenQuery = `SELECT ` + skipJobColumns + ` FROM skip_jobs WHERE job_token = $1`

	// Each lifecycle timestamp is written with COALESCE so a repeated
	// transition keeps the first value.
	skipJobTransitionQuery = `
		UPDATE skip_jobs
		SET status = $2,
		    sent_at = CASE WHEN $2 = 'sent' THEN COALESCE(sent_at, $4) ELSE sent_at END,
		    started_at = CASE WHEN $2 = 'in_progress' THEN COALESCE(started_at, $4) ELSE started_at END,
		    completed_at = CASE WHEN $2 = 'completed' THEN COALESCE(completed_at, $4) ELSE completed_at END
		WHERE id = $1 AND status = ANY($3)
		RETURNING ` + skipJobColumns

	skipJobDeleteQuery = `DELETE FROM skip_jobs WHERE id = $1 AND status <> 'completed'`

	completionInsertQuery = `
		INSERT INTO skip_job_completion (
			skip_job_id, skip_size, action, pick_size, drop_size, site_company,
			customer_signature, driver_notes, pick_lat, pick_lng, drop_lat, drop_lng,
			lat, lng, accuracy_m, completed_time, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING ` + completionColumns
)

// SkipJobRepo provides database operations for skip jobs.
type SkipJobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSkipJobRepo creates a new SkipJobRepo with real time provider.
func NewSkipJobRepo(db *sql.DB) *SkipJobRepo {
	return &SkipJobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSkipJobRepoWithTimeProvider creates a new SkipJobRepo with a custom time provider (useful for tests).
func NewSkipJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SkipJobRepo {
	return &SkipJobRepo{DB: db, timeProvider: tp}
}

// Create inserts a job in status created. The docket number comes from
// generate_docket_number in the same statement.
func (r *SkipJobRepo) Create(ctx context.Context, params core.CreateSkipJobParams) (*model.SkipJob, error) {
	req := params.Request
	if req == nil {
		return nil, errors.New("create skip job request is required")
	}
	if params.JobToken == "" {
		return nil, errors.New("job token is required")
	}

	job, err := pgxutil.QueryOne[model.SkipJob](ctx, r.DB, skipJobInsertQuery,
		params.JobToken,
		req.CustomerID,
		req.DriverID,
		req.TruckReg,
		req.JobDate,
		req.Notes,
		req.OfficeAction,
		req.SkipSize,
		req.TruckType,
		r.timeProvider.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create skip job: %w", apperrors.MapDBError(err))
	}
	return job, nil
}

// GetByID retrieves a job by ID.
func (r *SkipJobRepo) GetByID(ctx context.Context, id string) (*model.SkipJob, error) {
	return r.getOne(ctx, skipJobGetByIDQuery, ErrSkipJobNotFound, id)
}

// GetByToken retrieves a job by its driver link token.
func (r *SkipJobRepo) GetByToken(ctx context.Context, token string) (*model.SkipJob, error) {
	return r.getOne(ctx, skipJobGetByTokenQuery, ErrJobTokenNotFound, token)
}

func (r *SkipJobRepo) getOne(ctx context.Context, query string, notFound error, arg string) (*model.SkipJob, error) {
	job, err := pgxutil.QueryOne[model.SkipJob](ctx, r.DB, query, arg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to get skip job: %w", err)
	}
	return job, nil
}

// List returns jobs ordered by job_date desc, created_at desc.
func (r *SkipJobRepo) List(ctx context.Context, opts *model.SkipJobListOptions) ([]*model.SkipJobListItem, error) {
	if opts == nil {
		opts = &model.SkipJobListOptions{}
	}
	query, args := buildSkipJobListQuery(opts)
	items, err := pgxutil.QueryAll[model.SkipJobListItem](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skip jobs: %w", err)
	}
	return items, nil
}

const skipJobListFrom = `skip_jobs j
		JOIN customers c ON c.id = j.customer_id
		JOIN drivers d ON d.id = j.driver_id`

var skipJobListColumns = []string{
	"j.id", "j.job_token", "j.docket_no", "j.customer_id", "j.driver_id", "j.truck_reg",
	"to_char(j.job_date, 'YYYY-MM-DD') AS job_date",
	"j.notes", "j.office_action", "j.skip_size", "j.truck_type", "j.status",
	"j.created_at", "j.sent_at", "j.started_at", "j.completed_at",
	"c.name AS customer_name", "d.name AS driver_name",
}

func buildSkipJobListQuery(opts *model.SkipJobListOptions) (string, []any) {
	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	queryOpts := []database.ListQueryOption{
		database.WithColumns(skipJobListColumns...),
		database.WithOrderBy("j.job_date", true),
		database.WithOrderBy("j.created_at", true),
		database.WithLimit(limit),
		database.WithOffset(max(opts.Offset, 0)),
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("j.status", database.Equal, string(*opts.Status))))
	}
	if opts.DriverID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("j.driver_id", database.Equal, *opts.DriverID)))
	}
	if opts.CustomerID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("j.customer_id", database.Equal, *opts.CustomerID)))
	}
	if opts.DocketNo != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("j.docket_no", database.Equal, *opts.DocketNo)))
	}
	if opts.DateFrom != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereRawCond("j.job_date >= $1::date", *opts.DateFrom)))
	}
	if opts.DateTo != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereRawCond("j.job_date <= $1::date", *opts.DateTo)))
	}

	return database.BuildListQuery(database.NewListQueryOptions(skipJobListFrom, queryOpts...))
}

// Transition moves a job to params.To when its status is one of params.From.
// When no row matches, the job is re-read to tell a missing job from a
// status conflict.
func (r *SkipJobRepo) Transition(ctx context.Context, params core.TransitionParams) (*model.SkipJob, error) {
	job, err := pgxutil.QueryOne[model.SkipJob](ctx, r.DB, skipJobTransitionQuery,
		params.JobID, string(params.To), statusStrings(params.From), r.timeProvider.Now())
	if err == nil {
		return job, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) && !isInvalidUUID(err) {
		return nil, fmt.Errorf("failed to transition skip job: %w", err)
	}
	return nil, r.explainNoMatch(ctx, params.JobID)
}

// Update applies a sparse patch to a job that is not completed.
func (r *SkipJobRepo) Update(ctx context.Context, id string, req *model.UpdateJobRequest) (*model.SkipJob, error) {
	if req == nil {
		return nil, errors.New("update skip job request is required")
	}
	setClause, args := buildSkipJobUpdateClause(req)
	if len(setClause) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE skip_jobs SET %s WHERE id = $%d AND status <> 'completed' RETURNING %s`,
		strings.Join(setClause, ", "), len(args), skipJobColumns)

	job, err := pgxutil.QueryOne[model.SkipJob](ctx, r.DB, query, args...)
	if err == nil {
		return job, nil
	}
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return nil, r.explainNoMatch(ctx, id)
	}
	return nil, fmt.Errorf("failed to update skip job: %w", apperrors.MapDBError(err))
}

// patchColumn appends "col = $n" for a present value or "col = NULL" for an explicit null.
func patchColumn[T any](setParts *[]string, args *[]any, column, cast string, o model.Optional[T]) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		*setParts = append(*setParts, column+" = NULL")
		return
	}
	*args = append(*args, *o.Value)
	*setParts = append(*setParts, fmt.Sprintf("%s = $%d%s", column, len(*args), cast))
}

func buildSkipJobUpdateClause(req *model.UpdateJobRequest) ([]string, []any) {
	var setParts []string
	var args []any
	patchColumn(&setParts, &args, "customer_id", "", req.CustomerID)
	patchColumn(&setParts, &args, "driver_id", "", req.DriverID)
	patchColumn(&setParts, &args, "truck_reg", "", req.TruckReg)
	patchColumn(&setParts, &args, "job_date", "::date", req.JobDate)
	patchColumn(&setParts, &args, "notes", "", req.Notes)
	patchColumn(&setParts, &args, "office_action", "", req.OfficeAction)
	patchColumn(&setParts, &args, "skip_size", "", req.SkipSize)
	patchColumn(&setParts, &args, "truck_type", "", req.TruckType)
	return setParts, args
}

// Delete hard-deletes a job that is not completed. It reports false when the
// job does not exist; a completed job yields a Conflict error.
func (r *SkipJobRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, skipJobDeleteQuery, id)
	if err != nil {
		if isInvalidUUID(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete skip job: %w", apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	switch explainErr := r.explainNoMatch(ctx, id); {
	case errors.Is(explainErr, ErrSkipJobNotFound):
		return false, nil
	default:
		return false, explainErr
	}
}

// Complete inserts the completion and marks the job completed in one
// transaction. A unique violation on skip_job_id or a status outside from
// rolls both back and reports a Conflict.
func (r *SkipJobRepo) Complete(
	ctx context.Context,
	completion *model.Completion,
	from []model.JobStatus,
) (*model.Completion, *model.SkipJob, error) {
	if completion == nil {
		return nil, nil, errors.New("completion is required")
	}

	now := r.timeProvider.Now()
	var outCompletion *model.Completion
	var outJob *model.SkipJob

	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			job, txErr := pgxutil.CollectOne[model.SkipJob](ctx, tx, skipJobTransitionQuery,
				completion.SkipJobID, string(model.JobStatusCompleted), statusStrings(from), now)
			if txErr != nil {
				return txErr
			}
			outJob = job

			c, txErr := pgxutil.CollectOne[model.Completion](ctx, tx, completionInsertQuery,
				completion.SkipJobID,
				completion.SkipSize,
				completion.Action,
				completion.PickSize,
				completion.DropSize,
				completion.SiteCompany,
				completion.CustomerSignature,
				completion.DriverNotes,
				completion.PickLat,
				completion.PickLng,
				completion.DropLat,
				completion.DropLng,
				completion.Lat,
				completion.Lng,
				completion.AccuracyM,
				completion.CompletedTime,
				now,
			)
			if txErr != nil {
				return txErr
			}
			outCompletion = c
			return nil
		},
	})
	if err == nil {
		return outCompletion, outJob, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "skip_job_completion_skip_job_id_key" {
		return nil, nil, ErrCompletionExists
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, r.explainNoMatch(ctx, completion.SkipJobID)
	}
	return nil, nil, fmt.Errorf("failed to complete skip job: %w", apperrors.MapDBError(err))
}

// explainNoMatch re-reads a job after a conditional write matched nothing.
func (r *SkipJobRepo) explainNoMatch(ctx context.Context, id string) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == model.JobStatusCompleted {
		return ErrCompletionExists
	}
	return ErrStatusChanged
}

func statusStrings(in []model.JobStatus) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

// isInvalidUUID reports whether Postgres rejected a malformed UUID literal;
// such ids can never match a row.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}
