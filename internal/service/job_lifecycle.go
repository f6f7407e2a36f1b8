package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/irishmetals/skipdispatch/internal/core"
	"github.com/irishmetals/skipdispatch/internal/docket"
	"github.com/irishmetals/skipdispatch/internal/domain/lifecycle"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
	"github.com/irishmetals/skipdispatch/internal/observability/metrics"
)

// DefaultCompletionLockTTL bounds how long a crashed completion holds its token.
const DefaultCompletionLockTTL = 30 * time.Second

const opUpdateWeight = "update_weight"

// DefaultBaseURL is used for driver links when no base URL is configured.
const DefaultBaseURL = "http://localhost:3000"

var errCompletionInFlight = apperrors.Conflict("Job completion already in progress")

// LifecycleRepositories are the storage ports the lifecycle needs.
type LifecycleRepositories struct {
	Jobs        core.SkipJobRepository       // Required
	Completions core.CompletionRepository    // Required
	History     core.StatusHistoryRepository // Required
	Reference   core.ReferenceRepository     // Required
}

// LifecycleEffects are the side-effect collaborators. All are optional.
type LifecycleEffects struct {
	Notifier *NotificationDispatcher
	Events   core.JobEventPublisher
	Lock     core.CompletionLock
	Metrics  metrics.Recorder
	Logger   *slog.Logger
}

// LifecycleConfig holds settings for the lifecycle.
type LifecycleConfig struct {
	// Yard is where picked skips are returned to.
	Yard model.Point
	// BaseURL prefixes driver links: {BaseURL}/driver/skip/{token}.
	BaseURL string
	LockTTL time.Duration
	// Clock and NewToken are replaceable in tests.
	Clock    func() time.Time
	NewToken func() string
}

// JobLifecycleServiceOptions groups dependencies for JobLifecycleService.
type JobLifecycleServiceOptions struct {
	Repos   LifecycleRepositories
	Effects LifecycleEffects
	Config  LifecycleConfig
}

// JobLifecycleService owns the skip job state machine. Each operation checks
// the transition table, performs the authoritative write, then runs its side
// effects in order: status history, notifications, live events. Side-effect
// failures surface as advisory flags on the result.
type JobLifecycleService struct {
	jobs        core.SkipJobRepository
	completions core.CompletionRepository
	reference   core.ReferenceRepository
	history     *HistoryRecorder
	notifier    *NotificationDispatcher
	events      core.JobEventPublisher
	lock        core.CompletionLock
	metrics     metrics.Recorder
	logger      *slog.Logger
	cfg         LifecycleConfig
}

// NewJobLifecycleService constructs a JobLifecycleService.
func NewJobLifecycleService(opts JobLifecycleServiceOptions) *JobLifecycleService {
	repos := opts.Repos
	switch {
	case repos.Jobs == nil:
		panic("SkipJobRepository is required")
	case repos.Completions == nil:
		panic("CompletionRepository is required")
	case repos.History == nil:
		panic("StatusHistoryRepository is required")
	case repos.Reference == nil:
		panic("ReferenceRepository is required")
	}

	fx := opts.Effects
	logger := fx.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := fx.Metrics
	if rec == nil {
		rec = metrics.Noop{}
	}
	notifier := fx.Notifier
	if notifier == nil {
		notifier = NewNotificationDispatcher(NotificationDispatcherOptions{
			Observers: NotificationObservers{Logger: logger, Metrics: rec},
		})
	}

	cfg := opts.Config
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultCompletionLockTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewToken == nil {
		cfg.NewToken = uuid.NewString
	}

	return &JobLifecycleService{
		jobs:        repos.Jobs,
		completions: repos.Completions,
		reference:   repos.Reference,
		history: NewHistoryRecorder(HistoryRecorderOptions{
			Repo:    repos.History,
			Metrics: rec,
			Logger:  logger,
		}),
		notifier: notifier,
		events:   fx.Events,
		lock:     fx.Lock,
		metrics:  rec,
		logger:   logger.With("component", "job_lifecycle"),
		cfg:      cfg,
	}
}

// DriverLink returns the magic link a driver opens for a job.
func (s *JobLifecycleService) DriverLink(token string) string {
	return s.cfg.BaseURL + "/driver/skip/" + token
}

// CreateJob creates a job in status created, records the initial history
// entry and texts the driver.
func (s *JobLifecycleService) CreateJob(
	ctx context.Context,
	req *model.CreateJobRequest,
) (res *model.CreateJobResult, err error) {
	defer s.observe(lifecycle.OpCreate, s.cfg.Clock(), &err)

	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job, err := s.jobs.Create(ctx, core.CreateSkipJobParams{Request: req, JobToken: s.cfg.NewToken()})
	if err != nil {
		return nil, fmt.Errorf("create skip job: %w", err)
	}

	s.history.Record(ctx, lifecycle.OpCreate, job, nil)

	customer, driver := s.loadParties(ctx, job)
	delivery := s.notifier.NotifyDriver(ctx, DriverNotice{Job: job, Customer: customer, Driver: driver})

	s.publish(ctx, job, model.JobEventStatusChanged, lifecycle.OpCreate)
	s.logger.InfoContext(ctx, "job created",
		"job_id", job.ID,
		"docket_no", job.DocketNo,
		"sms_sent", delivery.Success)

	return &model.CreateJobResult{Job: job, SMSSent: delivery.Success, SMSError: delivery.Error}, nil
}

// SendJob dispatches (or re-dispatches) a job to its driver with the magic link.
func (s *JobLifecycleService) SendJob(ctx context.Context, id string) (res *model.SendJobResult, err error) {
	defer s.observe(lifecycle.OpSend, s.cfg.Clock(), &err)

	job, old, err := s.transition(ctx, lifecycle.OpSend, id)
	if err != nil {
		return nil, err
	}

	link := s.DriverLink(job.JobToken)
	customer, driver := s.loadParties(ctx, job)
	delivery := s.notifier.NotifyDriver(ctx, DriverNotice{
		Job:        job,
		Customer:   customer,
		Driver:     driver,
		DriverLink: link,
	})

	s.logger.InfoContext(ctx, "job sent",
		"job_id", job.ID,
		"from", old,
		"message_sent", delivery.Success)

	return &model.SendJobResult{
		Job:          job,
		MessageSent:  delivery.Success,
		DriverLink:   link,
		MessageError: delivery.Error,
	}, nil
}

// StartJob moves a created or sent job to in_progress.
func (s *JobLifecycleService) StartJob(ctx context.Context, id string) (res *model.JobResult, err error) {
	defer s.observe(lifecycle.OpStart, s.cfg.Clock(), &err)

	job, _, err := s.transition(ctx, lifecycle.OpStart, id)
	if err != nil {
		return nil, err
	}
	return &model.JobResult{Job: job}, nil
}

// StartJobByToken starts the job a driver's magic link resolves to.
func (s *JobLifecycleService) StartJobByToken(ctx context.Context, token string) (*model.JobResult, error) {
	job, err := s.jobs.GetByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	return s.StartJob(ctx, job.ID)
}

// transition runs a status-changing operation against the job with id and
// records history. It returns the updated job and its previous status.
func (s *JobLifecycleService) transition(
	ctx context.Context,
	op lifecycle.Operation,
	id string,
) (*model.SkipJob, model.JobStatus, error) {
	rule, _ := lifecycle.RuleFor(op)

	current, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if err := lifecycle.Check(op, current.Status); err != nil {
		return nil, current.Status, err
	}

	job, err := s.jobs.Transition(ctx, core.TransitionParams{JobID: id, From: rule.From, To: rule.To})
	if err != nil {
		return nil, current.Status, s.explainConflict(ctx, op, id, err)
	}

	old := current.Status
	s.history.Record(ctx, op, job, &old)
	s.publish(ctx, job, model.JobEventStatusChanged, op)
	return job, old, nil
}

// CompleteJob records the driver's completion, marks the job completed and
// emails the docket to the office. Token comes from the magic link.
func (s *JobLifecycleService) CompleteJob(
	ctx context.Context,
	req *model.CompleteJobRequest,
) (res *model.CompleteJobResult, err error) {
	defer s.observe(lifecycle.OpComplete, s.cfg.Clock(), &err)

	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	release, err := s.acquireCompletionLock(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	defer release()

	job, err := s.jobs.GetByToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Check(lifecycle.OpComplete, job.Status); err != nil {
		return nil, err
	}

	customer, driver := s.loadParties(ctx, job)
	completion, err := lifecycle.BuildCompletion(lifecycle.CompletionInput{
		Job:         job,
		Request:     req,
		Customer:    customer,
		Yard:        s.cfg.Yard,
		CompletedAt: s.cfg.Clock().UTC(),
	})
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	saved, completed, err := s.jobs.Complete(ctx, completion, lifecycle.AllowedFrom(lifecycle.OpComplete))
	if err != nil {
		return nil, s.explainConflict(ctx, lifecycle.OpComplete, job.ID, err)
	}

	old := job.Status
	s.history.Record(ctx, lifecycle.OpComplete, completed, &old)

	delivery := s.notifier.SendDocket(ctx, docket.Data{
		Job:        completed,
		Completion: saved,
		Customer:   customer,
		Driver:     driver,
	})

	s.publish(ctx, completed, model.JobEventStatusChanged, lifecycle.OpComplete)
	s.logger.InfoContext(ctx, "job completed",
		"job_id", completed.ID,
		"docket_no", completed.DocketNo,
		"action", saved.Action,
		"email_sent", delivery.Success)

	return &model.CompleteJobResult{
		Success:    true,
		Completion: saved,
		EmailSent:  delivery.Success,
		DocketNo:   completed.DocketNo,
		EmailError: delivery.Error,
	}, nil
}

func (s *JobLifecycleService) acquireCompletionLock(ctx context.Context, token string) (func(), error) {
	noop := func() {}
	if s.lock == nil {
		return noop, nil
	}

	owner, ok, err := s.lock.Acquire(ctx, token, s.cfg.LockTTL)
	if err != nil {
		// The unique completion constraint still guards the write.
		s.logger.WarnContext(ctx, "completion lock unavailable", "error", err)
		return noop, nil
	}
	if !ok {
		return nil, errCompletionInFlight
	}
	return func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), token, owner); err != nil {
			s.logger.WarnContext(ctx, "failed to release completion lock", "error", err)
		}
	}, nil
}

// UpdateJob applies a sparse edit to a job that is not completed. Status and
// history are untouched.
func (s *JobLifecycleService) UpdateJob(
	ctx context.Context,
	id string,
	req *model.UpdateJobRequest,
) (res *model.JobResult, err error) {
	defer s.observe(lifecycle.OpUpdate, s.cfg.Clock(), &err)

	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Check(lifecycle.OpUpdate, current.Status); err != nil {
		return nil, err
	}
	if !req.HasChanges() {
		return &model.JobResult{Job: current}, nil
	}

	job, err := s.jobs.Update(ctx, id, req)
	if err != nil {
		return nil, s.explainConflict(ctx, lifecycle.OpUpdate, id, err)
	}

	s.publish(ctx, job, model.JobEventUpdated, lifecycle.OpUpdate)
	return &model.JobResult{Job: job}, nil
}

// DeleteJob cancels and hard-deletes a job that is not completed. The
// cancelled history entry is written before the row is removed.
func (s *JobLifecycleService) DeleteJob(ctx context.Context, id string) (res *model.DeleteJobResult, err error) {
	defer s.observe(lifecycle.OpDelete, s.cfg.Clock(), &err)

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Check(lifecycle.OpDelete, job.Status); err != nil {
		return nil, err
	}

	old := job.Status
	s.history.Record(ctx, lifecycle.OpDelete, job, &old)

	deleted, err := s.jobs.Delete(ctx, id)
	if err != nil {
		return nil, s.explainConflict(ctx, lifecycle.OpDelete, id, err)
	}
	if !deleted {
		return nil, apperrors.NotFound("Job not found")
	}

	cancelled := *job
	cancelled.Status = model.JobStatusCancelled
	s.publish(ctx, &cancelled, model.JobEventDeleted, lifecycle.OpDelete)
	s.logger.InfoContext(ctx, "job deleted", "job_id", job.ID, "docket_no", job.DocketNo, "from", old)
	return &model.DeleteJobResult{Success: true}, nil
}

// UpdateCompletionWeight records weighbridge data on a completion.
func (s *JobLifecycleService) UpdateCompletionWeight(
	ctx context.Context,
	completionID string,
	req *model.UpdateCompletionWeightRequest,
) (res *model.CompletionResult, err error) {
	defer s.observeNamed(opUpdateWeight, s.cfg.Clock(), &err)

	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	req.Normalize()
	if err := req.Validate(completionID); err != nil {
		return nil, err
	}

	c, err := s.completions.UpdateWeight(ctx, completionID, req)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.publishEvent(ctx, model.JobEvent{
			Type:       model.JobEventWeightUpdated,
			JobID:      c.SkipJobID,
			Status:     model.JobStatusCompleted,
			Operation:  opUpdateWeight,
			Actor:      model.ActorOffice,
			OccurredAt: s.cfg.Clock().UTC(),
		})
	}
	return &model.CompletionResult{Success: true, Completion: c}, nil
}

// explainConflict turns a storage-level conflict into the message the
// transition table gives for the job's current status.
func (s *JobLifecycleService) explainConflict(
	ctx context.Context,
	op lifecycle.Operation,
	id string,
	err error,
) error {
	if !apperrors.IsConflict(err) {
		return fmt.Errorf("%s skip job: %w", op, err)
	}
	current, getErr := s.jobs.GetByID(ctx, id)
	if getErr != nil {
		return err
	}
	if checkErr := lifecycle.Check(op, current.Status); checkErr != nil {
		return checkErr
	}
	return err
}

// loadParties fetches the customer and driver for notifications. Missing
// reference rows are logged and returned as nil.
func (s *JobLifecycleService) loadParties(ctx context.Context, job *model.SkipJob) (*model.Customer, *model.Driver) {
	customer, err := s.reference.GetCustomer(ctx, job.CustomerID)
	if err != nil {
		s.logger.WarnContext(ctx, "customer lookup failed", "job_id", job.ID, "error", err)
		customer = nil
	}
	driver, err := s.reference.GetDriver(ctx, job.DriverID)
	if err != nil {
		s.logger.WarnContext(ctx, "driver lookup failed", "job_id", job.ID, "error", err)
		driver = nil
	}
	return customer, driver
}

func (s *JobLifecycleService) publish(
	ctx context.Context,
	job *model.SkipJob,
	kind model.JobEventType,
	op lifecycle.Operation,
) {
	if s.events == nil || job == nil {
		return
	}
	rule, _ := lifecycle.RuleFor(op)
	s.publishEvent(ctx, model.JobEvent{
		Type:       kind,
		JobID:      job.ID,
		DocketNo:   job.DocketNo,
		Status:     job.Status,
		Operation:  string(op),
		Actor:      rule.Actor,
		OccurredAt: s.cfg.Clock().UTC(),
	})
}

func (s *JobLifecycleService) publishEvent(ctx context.Context, event model.JobEvent) {
	if err := s.events.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish job event",
			"job_id", event.JobID,
			"type", event.Type,
			"error", err)
	}
}

func (s *JobLifecycleService) observe(op lifecycle.Operation, start time.Time, errp *error) {
	s.observeNamed(string(op), start, errp)
}

func (s *JobLifecycleService) observeNamed(op string, start time.Time, errp *error) {
	s.metrics.ObserveTransition(op, resultLabel(*errp), s.cfg.Clock().Sub(start))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case apperrors.IsConflict(err):
		return metrics.ResultConflict
	case apperrors.IsValidation(err), apperrors.IsForeignKey(err):
		return metrics.ResultInvalid
	case apperrors.IsNotFound(err):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}

// GetJobDetail loads a job with its customer, driver, completion and history.
func (s *JobLifecycleService) GetJobDetail(ctx context.Context, id string) (*model.SkipJobDetail, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.SkipJobDetail{Job: job}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.reference.GetCustomer(gctx, job.CustomerID)
		if err != nil && !apperrors.IsNotFound(err) {
			return fmt.Errorf("load customer: %w", err)
		}
		detail.Customer = c
		return nil
	})
	g.Go(func() error {
		d, err := s.reference.GetDriver(gctx, job.DriverID)
		if err != nil && !apperrors.IsNotFound(err) {
			return fmt.Errorf("load driver: %w", err)
		}
		detail.Driver = d
		return nil
	})
	g.Go(func() error {
		c, err := s.completionFor(gctx, job)
		detail.Completion = c
		return err
	})
	g.Go(func() error {
		h, err := s.history.repo.ListByJob(gctx, job.ID)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		detail.History = h
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// GetDriverView resolves a magic-link token to the job the driver sees.
func (s *JobLifecycleService) GetDriverView(ctx context.Context, token string) (*model.DriverJobView, error) {
	job, err := s.jobs.GetByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	customer, driver := s.loadParties(ctx, job)
	completion, err := s.completionFor(ctx, job)
	if err != nil {
		return nil, err
	}
	return &model.DriverJobView{Job: job, Customer: customer, Driver: driver, Completion: completion}, nil
}

func (s *JobLifecycleService) completionFor(ctx context.Context, job *model.SkipJob) (*model.Completion, error) {
	if job.Status != model.JobStatusCompleted {
		return nil, nil
	}
	c, err := s.completions.GetByJobID(ctx, job.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load completion: %w", err)
	}
	return c, nil
}

// ListJobs returns jobs matching opts with customer and driver names.
func (s *JobLifecycleService) ListJobs(
	ctx context.Context,
	opts *model.SkipJobListOptions,
) ([]*model.SkipJobListItem, error) {
	return s.jobs.List(ctx, opts)
}

// ResolveJobRef returns the job id for ref, which is either a job id or a
// docket number such as 250115-0007-IMR.
func (s *JobLifecycleService) ResolveJobRef(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if !lifecycle.IsDocketNo(ref) {
		return ref, nil
	}
	items, err := s.jobs.List(ctx, &model.SkipJobListOptions{DocketNo: &ref, Limit: 1})
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", apperrors.NotFound("Job not found")
	}
	return items[0].ID, nil
}

// ListHistory returns a job's status history in insertion order. History
// outlives the job, so an unknown id yields an empty list.
func (s *JobLifecycleService) ListHistory(ctx context.Context, jobID string) ([]*model.StatusHistoryEntry, error) {
	return s.history.repo.ListByJob(ctx, jobID)
}

// Tracker derives where every tracked skip currently sits.
func (s *JobLifecycleService) Tracker(ctx context.Context, limit int) (model.TrackerSummary, error) {
	rows, err := s.completions.ListForTracker(ctx, limit)
	if err != nil {
		return model.TrackerSummary{}, fmt.Errorf("list tracker rows: %w", err)
	}
	return lifecycle.DeriveSkipLocations(rows), nil
}

// ListCustomers returns every customer by name.
func (s *JobLifecycleService) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	return s.reference.ListCustomers(ctx)
}

// ListActiveDrivers returns drivers who can be assigned jobs.
func (s *JobLifecycleService) ListActiveDrivers(ctx context.Context) ([]*model.Driver, error) {
	return s.reference.ListActiveDrivers(ctx)
}

// RenderDocket re-renders the docket PDF for a completed job.
func (s *JobLifecycleService) RenderDocket(ctx context.Context, jobID string) ([]byte, string, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, "", err
	}
	if job.Status != model.JobStatusCompleted {
		return nil, "", apperrors.Conflictf("Job %s is not completed", job.DocketNo)
	}
	completion, err := s.completions.GetByJobID(ctx, job.ID)
	if err != nil {
		return nil, "", err
	}
	customer, driver := s.loadParties(ctx, job)
	pdf, err := s.notifier.RenderDocket(docket.Data{
		Job:        job,
		Completion: completion,
		Customer:   customer,
		Driver:     driver,
	})
	if err != nil {
		return nil, "", err
	}
	return pdf, job.DocketNo, nil
}
