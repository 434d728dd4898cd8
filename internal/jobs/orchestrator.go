package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/pkg/log"
	"github.com/watchair/watchair/pkg/metrics"
)

// Handler processes a job once it has been created. Implementations end the job
// themselves and never report errors to the creator.
type Handler interface {
	Process(ctx context.Context, job *model.ProcessingJob)
}

type Orchestrator struct {
	store     store.Store
	scheduler Scheduler
	handlers  map[model.JobType]Handler
	logger    *log.StructuredLogger
}

func NewOrchestrator(s store.Store, scheduler Scheduler) *Orchestrator {
	return &Orchestrator{
		store:     s,
		scheduler: scheduler,
		handlers:  make(map[model.JobType]Handler),
		logger:    log.NewDebugLogger("job_orchestrator"),
	}
}

// Register sets the handler scheduled for every new job of jobType.
// Job types without a handler are created and left for the caller to end.
func (o *Orchestrator) Register(jobType model.JobType, handler Handler) {
	o.handlers[jobType] = handler
}

// CreateJob persists a RUNNING job and schedules its handler without waiting for it.
func (o *Orchestrator) CreateJob(ctx context.Context, jobType model.JobType, subtype model.JobSubtype, subject string, domainID uuid.UUID) (*model.ProcessingJob, error) {
	tracer := o.logger.WithContext(ctx).
		Operation("create_job").
		WithString("type", string(jobType)).
		WithString("subtype", string(subtype)).
		WithUUID("domain_id", domainID).
		Build()

	if !jobType.AllowsSubtype(subtype) {
		err := NewErrInvalidJobSubtype(jobType, subtype)
		tracer.Error(err).Log()
		return nil, err
	}

	job, err := o.store.Job().Create(ctx, model.ProcessingJob{
		DomainID: domainID,
		Type:     jobType,
		Subtype:  subtype,
		Subject:  subject,
		Status:   model.JobStatusRunning,
	})
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	tracer.Step("job_created").WithString("job_id", job.ID.String()).Log()

	if handler, found := o.handlers[jobType]; found {
		scheduled := *job
		o.scheduler.Schedule(ctx, fmt.Sprintf("%s/%s", jobType, job.ID), func(taskCtx context.Context) {
			handler.Process(taskCtx, &scheduled)
		})
		metrics.IncreaseJobsScheduledMetric(string(jobType))
		tracer.Step("job_scheduled").Log()
	}

	tracer.Success().Log()
	return job, nil
}

// EndJob moves a running job to a terminal status. Ending a job twice fails with
// ErrJobAlreadyEnded and leaves the first outcome in place.
func (o *Orchestrator) EndJob(ctx context.Context, job *model.ProcessingJob, status model.JobStatus, message string) error {
	tracer := o.logger.WithContext(ctx).
		Operation("end_job").
		WithUUID("job_id", job.ID).
		WithString("status", string(status)).
		Build()

	if !status.IsTerminal() {
		tracer.Error(ErrInvalidJobStatus).Log()
		return fmt.Errorf("%w: %s", ErrInvalidJobStatus, status)
	}

	ended, err := o.store.Job().End(ctx, job.ID, status, message)
	if err != nil {
		tracer.Error(err).Log()
		switch {
		case errors.Is(err, store.ErrJobNotRunning):
			return ErrJobAlreadyEnded
		case errors.Is(err, store.ErrRecordNotFound):
			return NewErrJobNotFound(job.ID)
		}
		return fmt.Errorf("failed to end job: %w", err)
	}

	*job = *ended

	duration := time.Duration(0)
	if ended.EndedAt != nil {
		duration = ended.EndedAt.Sub(ended.CreatedAt)
	}
	metrics.IncreaseJobsTotalMetric(string(ended.Type), string(ended.Subtype), string(ended.Status), duration)

	tracer.Success().WithString("message", message).Log()
	return nil
}

func (o *Orchestrator) GetJob(ctx context.Context, id uuid.UUID) (*model.ProcessingJob, error) {
	job, err := o.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	return job, nil
}

func (o *Orchestrator) ListDomainJobs(ctx context.Context, domainID uuid.UUID) (model.ProcessingJobList, error) {
	return o.store.Job().List(ctx, store.NewJobQueryFilter().ByDomainID(domainID))
}
