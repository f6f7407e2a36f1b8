package service

import (
	"context"
	"log/slog"

	"github.com/irishmetals/skipdispatch/internal/core"
	"github.com/irishmetals/skipdispatch/internal/domain/lifecycle"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/observability/metrics"
)

// HistoryRecorderOptions groups dependencies for HistoryRecorder.
type HistoryRecorderOptions struct {
	Repo    core.StatusHistoryRepository // Required
	Metrics metrics.Recorder             // Optional
	Logger  *slog.Logger                 // Optional
}

// HistoryRecorder appends status audit rows. A failed append never blocks or
// reverses the transition that caused it.
type HistoryRecorder struct {
	repo    core.StatusHistoryRepository
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewHistoryRecorder constructs a HistoryRecorder.
func NewHistoryRecorder(opts HistoryRecorderOptions) *HistoryRecorder {
	if opts.Repo == nil {
		panic("StatusHistoryRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := opts.Metrics
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &HistoryRecorder{
		repo:    opts.Repo,
		metrics: rec,
		logger:  logger.With("component", "status_history"),
	}
}

// Record appends the history entry op's transition rule calls for, if any.
// old is nil only for the created entry.
func (r *HistoryRecorder) Record(
	ctx context.Context,
	op lifecycle.Operation,
	job *model.SkipJob,
	old *model.JobStatus,
) {
	rule, ok := lifecycle.RuleFor(op)
	if !ok || !rule.Records || job == nil {
		return
	}
	next, actor := rule.To, rule.Actor
	entry := &model.StatusHistoryEntry{
		SkipJobID: job.ID,
		OldStatus: old,
		NewStatus: next,
		ChangedBy: actor,
	}
	if job.DocketNo != "" {
		docket := job.DocketNo
		entry.DocketNo = &docket
	}

	if err := r.repo.Append(context.WithoutCancel(ctx), entry); err != nil {
		r.metrics.CountHistoryFailure()
		r.logger.ErrorContext(ctx, "failed to record status history",
			"job_id", job.ID,
			"docket_no", job.DocketNo,
			"new_status", next,
			"changed_by", actor,
			"error", err)
	}
}
