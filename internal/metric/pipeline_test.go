package metric_test

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/watchair/watchair/internal/metric"
	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/internal/store/storetest"
)

// recordingJobs persists metric jobs, keeps track of how they ended and can refuse
// to create one subtype.
type recordingJobs struct {
	store    store.Store
	mu       sync.Mutex
	jobs     []*model.ProcessingJob
	refusing model.JobSubtype
}

func (r *recordingJobs) CreateJob(ctx context.Context, jobType model.JobType, subtype model.JobSubtype, subject string, domainID uuid.UUID) (*model.ProcessingJob, error) {
	if subtype == r.refusing {
		return nil, errors.New("jobs table unavailable")
	}
	job, err := r.store.Job().Create(ctx, model.ProcessingJob{
		ID:       uuid.New(),
		DomainID: domainID,
		Type:     jobType,
		Subtype:  subtype,
		Subject:  subject,
		Status:   model.JobStatusRunning,
	})
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	return job, nil
}

func (r *recordingJobs) EndJob(_ context.Context, job *model.ProcessingJob, status model.JobStatus, message string) error {
	job.Status = status
	job.Message = message
	return nil
}

func (r *recordingJobs) bySubtype(subtype model.JobSubtype) *model.ProcessingJob {
	for _, j := range r.jobs {
		if j.Subtype == subtype {
			return j
		}
	}
	return nil
}

// brokenMetrics fails or panics when asked to replace the headers of one metric.
type brokenMetrics struct {
	store.Metric
	title string
	panic bool
}

func (b *brokenMetrics) Replace(ctx context.Context, domainID uuid.UUID, titles []string, headers []model.MetricHeader) error {
	if len(titles) > 0 && titles[0] == b.title {
		if b.panic {
			panic(errors.New("header buffer corrupted"))
		}
		return errors.New("disk full")
	}
	return b.Metric.Replace(ctx, domainID, titles, headers)
}

type brokenStore struct {
	store.Store
	metrics *brokenMetrics
}

func (b *brokenStore) Metric() store.Metric {
	return b.metrics
}

var _ = Describe("Pipeline", Ordered, func() {
	var (
		s      store.Store
		gormDB *gorm.DB
		domain *model.Domain
		jobs   *recordingJobs
	)

	BeforeAll(func() {
		var err error
		s, gormDB, err = storetest.Open()
		Expect(err).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		var err error
		domain, err = s.Domain().Create(context.TODO(), model.Domain{Name: "ICSE"})
		Expect(err).To(BeNil())
		jobs = &recordingJobs{store: s}
	})

	AfterEach(func() {
		gormDB.Exec("DELETE FROM domains;")
	})

	It("completes one METRIC job per computation", func() {
		metric.NewPipeline(s, jobs).ProcessAll(context.TODO(), domain.ID)

		Expect(jobs.jobs).To(HaveLen(3))
		for _, j := range jobs.jobs {
			Expect(j.Type).To(Equal(model.JobTypeMetric))
			Expect(j.Status).To(Equal(model.JobStatusCompleted))
			Expect(j.Message).To(Equal(metric.CompletedMessage))
		}
	})

	It("keeps running the next metrics when one fails to store", func() {
		broken := &brokenStore{Store: s, metrics: &brokenMetrics{Metric: s.Metric(), title: metric.ReviewsDoneSubject}}

		metric.NewPipeline(broken, jobs).ProcessAll(context.TODO(), domain.ID)

		Expect(jobs.jobs).To(HaveLen(3))
		failed := jobs.bySubtype(model.JobSubtypeReviewsDone)
		Expect(failed.Status).To(Equal(model.JobStatusFailed))
		Expect(failed.Message).To(HavePrefix("failed to store"))
		Expect(failed.Message).To(HaveSuffix("disk full"))

		for _, subtype := range []model.JobSubtype{model.JobSubtypeSubmissionAcceptance, model.JobSubtypeParticipation} {
			Expect(jobs.bySubtype(subtype).Status).To(Equal(model.JobStatusCompleted))
		}
	})

	It("ends a panicking metric FAILED with the panic message", func() {
		broken := &brokenStore{Store: s, metrics: &brokenMetrics{Metric: s.Metric(), title: metric.SubmissionAcceptanceSubject, panic: true}}

		metric.NewPipeline(broken, jobs).ProcessAll(context.TODO(), domain.ID)

		failed := jobs.bySubtype(model.JobSubtypeSubmissionAcceptance)
		Expect(failed.Status).To(Equal(model.JobStatusFailed))
		Expect(failed.Message).To(Equal("header buffer corrupted"))
		Expect(jobs.bySubtype(model.JobSubtypeReviewsDone).Status).To(Equal(model.JobStatusCompleted))
		Expect(jobs.bySubtype(model.JobSubtypeParticipation).Status).To(Equal(model.JobStatusCompleted))
	})

	It("skips a metric whose job cannot be created", func() {
		jobs.refusing = model.JobSubtypeReviewsDone

		metric.NewPipeline(s, jobs).ProcessAll(context.TODO(), domain.ID)

		Expect(jobs.jobs).To(HaveLen(2))
		Expect(jobs.bySubtype(model.JobSubtypeReviewsDone)).To(BeNil())
		Expect(jobs.bySubtype(model.JobSubtypeSubmissionAcceptance).Status).To(Equal(model.JobStatusCompleted))
		Expect(jobs.bySubtype(model.JobSubtypeParticipation).Status).To(Equal(model.JobStatusCompleted))
	})
})
