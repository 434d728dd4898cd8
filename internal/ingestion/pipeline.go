package ingestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/watchair/watchair/internal/handlers/validator"
	"github.com/watchair/watchair/internal/jobs"
	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/internal/workbook"
	"github.com/watchair/watchair/pkg/log"
	"github.com/watchair/watchair/pkg/metrics"
)

const (
	CommitteeSheet   = "Program committee"
	AuthorsSheet     = "Authors"
	SubmissionsSheet = "Submissions"
	AssignmentsSheet = "Submission assignment"
	ScoresSheet      = "Review field scores"
	ReviewsSheet     = "Reviews"
	CommentsSheet    = "Comments"

	CompletedMessage = "Job has been completed with no errors"
)

type FileReader interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

type JobEnder interface {
	EndJob(ctx context.Context, job *model.ProcessingJob, status model.JobStatus, message string) error
}

// MetricRunner recomputes the metrics of a domain. It owns its own failure handling.
type MetricRunner interface {
	ProcessAll(ctx context.Context, domainID uuid.UUID)
}

// counts holds the number of records written per kind during one run.
type counts map[string]int

type stage struct {
	name   string
	sheets []string
	run    func(ctx context.Context, e *extractor, wb *workbook.Workbook, c counts) error
}

type Pipeline struct {
	store         store.Store
	files         FileReader
	jobs          JobEnder
	metrics       MetricRunner
	validator     *validator.Validator
	transactional bool
	stages        []stage
	log           *zap.SugaredLogger
}

type Option func(*Pipeline)

// WithTransactionalIngestion makes a run all-or-nothing: every stage shares one
// transaction which is rolled back on the first failure.
func WithTransactionalIngestion(enabled bool) Option {
	return func(p *Pipeline) {
		p.transactional = enabled
	}
}

// WithMetricRunner sets the metrics recomputed after every completed ingestion.
func WithMetricRunner(runner MetricRunner) Option {
	return func(p *Pipeline) {
		p.metrics = runner
	}
}

func NewPipeline(s store.Store, files FileReader, ender JobEnder, opts ...Option) *Pipeline {
	v := validator.NewValidator()
	v.Register(validator.NewRecordValidationRules()...)

	p := &Pipeline{
		store:     s,
		files:     files,
		jobs:      ender,
		validator: v,
		log:       zap.S().Named("ingestion"),
	}
	for _, opt := range opts {
		opt(p)
	}

	// order matters: later stages reference records written by earlier ones
	p.stages = []stage{
		{name: "persons", sheets: []string{CommitteeSheet, AuthorsSheet}, run: p.ingestPersons},
		{name: "submissions", sheets: []string{SubmissionsSheet, AuthorsSheet}, run: p.ingestSubmissions},
		{name: "assignments", sheets: []string{AssignmentsSheet}, run: p.ingestAssignments},
		{name: "scores", sheets: []string{ScoresSheet}, run: p.ingestScores},
		{name: "reviews", sheets: []string{ReviewsSheet}, run: p.ingestReviews},
		{name: "comments", sheets: []string{CommentsSheet}, run: p.ingestComments},
	}

	return p
}

// Process ingests the workbook named by job.Subject and ends the job.
// Errors never escape: they end the job FAILED with a classified message.
func (p *Pipeline) Process(ctx context.Context, job *model.ProcessingJob) {
	tracer := log.NewDebugLogger("ingestion").
		WithContext(ctx).
		Operation("process_file").
		WithUUID("job_id", job.ID).
		WithUUID("domain_id", job.DomainID).
		WithString("subject", job.Subject).
		Build()

	written, err := p.run(ctx, job)
	if err != nil {
		tracer.Error(err).Log()
		p.end(ctx, job, model.JobStatusFailed, jobs.FailureMessage(err))
		return
	}

	for kind, n := range written {
		metrics.AddIngestedRecordsMetric(kind, n)
	}

	if !p.end(ctx, job, model.JobStatusCompleted, CompletedMessage) {
		return
	}
	tracer.Success().WithParam("records", written).Log()

	if p.metrics != nil {
		p.metrics.ProcessAll(ctx, job.DomainID)
	}
}

func (p *Pipeline) end(ctx context.Context, job *model.ProcessingJob, status model.JobStatus, message string) bool {
	if err := p.jobs.EndJob(ctx, job, status, message); err != nil {
		p.log.Errorw("failed to end job", "job_id", job.ID, "status", status, "error", err)
		return false
	}
	return true
}

func (p *Pipeline) run(ctx context.Context, job *model.ProcessingJob) (written counts, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("ingestion panicked", "job_id", job.ID, "panic", r)
			err = jobs.Recovered(r)
		}
	}()

	content, err := p.files.Read(ctx, job.Subject)
	if err != nil {
		return nil, err
	}

	wb, err := workbook.Read(content)
	if err != nil {
		return nil, err
	}

	e := newExtractor(job.DomainID, p.validator)

	if !p.transactional {
		return p.runStages(ctx, e, wb)
	}

	txCtx, err := p.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start ingestion transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_, _ = store.Rollback(txCtx)
		}
	}()

	written, err = p.runStages(txCtx, e, wb)
	if err != nil {
		return nil, err
	}

	if _, err := store.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit ingestion: %w", err)
	}
	committed = true

	return written, nil
}

func (p *Pipeline) runStages(ctx context.Context, e *extractor, wb *workbook.Workbook) (counts, error) {
	written := make(counts)
	for _, s := range p.stages {
		if !wb.HasSheets(s.sheets...) {
			p.log.Debugw("skipping stage", "stage", s.name, "sheets", s.sheets)
			continue
		}
		if err := s.run(ctx, e, wb, written); err != nil {
			return nil, err
		}
	}
	return written, nil
}

func (p *Pipeline) ingestPersons(ctx context.Context, e *extractor, wb *workbook.Workbook, c counts) error {
	records, err := e.persons(wb.Sheet(CommitteeSheet), wb.Sheet(AuthorsSheet))
	if err != nil {
		return err
	}

	if err := p.store.Person().Create(ctx, records.persons); err != nil {
		return err
	}
	if err := p.store.Member().Create(ctx, records.members); err != nil {
		return err
	}
	if err := p.store.Author().Create(ctx, records.authors); err != nil {
		return err
	}

	c["person"] += len(records.persons)
	c["committee_member"] += len(records.members)
	c["author"] += len(records.authors)
	return nil
}

func (p *Pipeline) ingestSubmissions(ctx context.Context, e *extractor, wb *workbook.Workbook, c counts) error {
	submissions, err := e.submissions(wb.Sheet(SubmissionsSheet))
	if err != nil {
		return err
	}
	if err := p.store.Submission().Create(ctx, submissions); err != nil {
		return err
	}

	authorships, err := e.authorships(wb.Sheet(AuthorsSheet))
	if err != nil {
		return err
	}
	if err := p.store.Submission().CreateAuthorships(ctx, authorships); err != nil {
		return err
	}

	c["submission"] += len(submissions)
	c["authorship"] += len(authorships)
	return nil
}

func (p *Pipeline) ingestAssignments(ctx context.Context, e *extractor, wb *workbook.Workbook, c counts) error {
	assignments, err := e.assignments(wb.Sheet(AssignmentsSheet))
	if err != nil {
		return err
	}
	if err := p.store.Assignment().Create(ctx, assignments); err != nil {
		return err
	}

	c["assignment"] += len(assignments)
	return nil
}

func (p *Pipeline) ingestScores(ctx context.Context, e *extractor, wb *workbook.Workbook, c counts) error {
	reviewScores, confidences, err := e.scores(wb.Sheet(ScoresSheet))
	if err != nil {
		return err
	}
	if err := p.store.Score().EnsureReviewScores(ctx, reviewScores); err != nil {
		return err
	}
	if err := p.store.Score().EnsureConfidences(ctx, confidences); err != nil {
		return err
	}

	c["review_score"] += len(reviewScores)
	c["confidence"] += len(confidences)
	return nil
}

func (p *Pipeline) ingestReviews(ctx context.Context, e *extractor, wb *workbook.Workbook, c counts) error {
	reviews, err := e.reviews(wb.Sheet(ReviewsSheet))
	if err != nil {
		return err
	}
	if err := p.store.Review().Create(ctx, reviews); err != nil {
		return err
	}

	c["review"] += len(reviews)
	return nil
}

func (p *Pipeline) ingestComments(ctx context.Context, e *extractor, wb *workbook.Workbook, c counts) error {
	comments, err := e.comments(wb.Sheet(CommentsSheet))
	if err != nil {
		return err
	}
	if err := p.store.Comment().Create(ctx, comments); err != nil {
		return err
	}

	c["comment"] += len(comments)
	return nil
}
