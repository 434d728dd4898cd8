package metric

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/watchair/watchair/internal/jobs"
	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/pkg/log"
)

const (
	ReviewsDoneSubject          = "Review assignments finished"
	SubmissionAcceptanceSubject = "Submissions evaluation scores"
	ParticipationSubject        = "Committee participation"

	CompletedMessage = "Job ended successfully."
)

type JobManager interface {
	CreateJob(ctx context.Context, jobType model.JobType, subtype model.JobSubtype, subject string, domainID uuid.UUID) (*model.ProcessingJob, error)
	EndJob(ctx context.Context, job *model.ProcessingJob, status model.JobStatus, message string) error
}

// ComputeFunc derives the headers of one metric. It must not divide by zero:
// undefined entries are left out instead.
type ComputeFunc func(title string, s *Snapshot) []model.MetricHeader

type computation struct {
	subtype model.JobSubtype
	subject string
	// titles lists every header the computation may produce, so stale ones are dropped.
	titles  []string
	compute ComputeFunc
}

type Pipeline struct {
	store        store.Store
	jobs         JobManager
	computations []computation
	log          *zap.SugaredLogger
}

func NewPipeline(s store.Store, manager JobManager) *Pipeline {
	return &Pipeline{
		store: s,
		jobs:  manager,
		computations: []computation{
			{
				subtype: model.JobSubtypeReviewsDone,
				subject: ReviewsDoneSubject,
				titles:  []string{ReviewsDoneSubject, ReviewsDonePerReviewerTitle, LateReviewsTitle},
				compute: ReviewsDone,
			},
			{
				subtype: model.JobSubtypeSubmissionAcceptance,
				subject: SubmissionAcceptanceSubject,
				titles:  []string{SubmissionAcceptanceSubject, AverageScoreTitle, ScoreDeviationTitle, LocalDeviationTitle},
				compute: SubmissionAcceptance,
			},
			{
				subtype: model.JobSubtypeParticipation,
				subject: ParticipationSubject,
				titles:  []string{ParticipationSubject},
				compute: Participation,
			},
		},
		log: zap.S().Named("metric"),
	}
}

// ProcessAll runs every metric of the domain in turn, each as its own METRIC job.
// A failing metric ends its job FAILED and the next one still runs.
func (p *Pipeline) ProcessAll(ctx context.Context, domainID uuid.UUID) {
	for _, c := range p.computations {
		job, err := p.jobs.CreateJob(ctx, model.JobTypeMetric, c.subtype, c.subject, domainID)
		if err != nil {
			p.log.Errorw("failed to create metric job", "domain_id", domainID, "subtype", c.subtype, "error", err)
			continue
		}
		p.process(ctx, job, c)
	}
}

func (p *Pipeline) process(ctx context.Context, job *model.ProcessingJob, c computation) {
	tracer := log.NewDebugLogger("metric").
		WithContext(ctx).
		Operation("process_metric").
		WithUUID("job_id", job.ID).
		WithUUID("domain_id", job.DomainID).
		WithString("subtype", string(job.Subtype)).
		Build()

	if err := p.compute(ctx, job, c); err != nil {
		tracer.Error(err).Log()
		if err := p.jobs.EndJob(ctx, job, model.JobStatusFailed, jobs.FailureMessage(err)); err != nil {
			p.log.Errorw("failed to end metric job", "job_id", job.ID, "error", err)
		}
		return
	}

	if err := p.jobs.EndJob(ctx, job, model.JobStatusCompleted, CompletedMessage); err != nil {
		p.log.Errorw("failed to end metric job", "job_id", job.ID, "error", err)
		return
	}
	tracer.Success().Log()
}

func (p *Pipeline) compute(ctx context.Context, job *model.ProcessingJob, c computation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("metric computation panicked", "job_id", job.ID, "panic", r)
			err = jobs.Recovered(r)
		}
	}()

	snapshot, err := loadSnapshot(ctx, p.store, job.DomainID)
	if err != nil {
		return err
	}

	headers := c.compute(job.Subject, snapshot)
	for i := range headers {
		headers[i].JobID = &job.ID
	}

	if err := p.store.Metric().Replace(ctx, job.DomainID, c.titles, headers); err != nil {
		return fmt.Errorf("failed to store %s metrics: %w", c.subtype, err)
	}
	return nil
}
