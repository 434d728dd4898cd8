package jobs_test

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/watchair/watchair/internal/jobs"
	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/internal/store/storetest"
)

type recordingHandler struct {
	mu        sync.Mutex
	processed []model.ProcessingJob
}

func (h *recordingHandler) Process(_ context.Context, job *model.ProcessingJob) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.processed = append(h.processed, *job)
}

var _ = Describe("Orchestrator", Ordered, func() {
	var (
		s            store.Store
		gormDB       *gorm.DB
		domain       *model.Domain
		handler      *recordingHandler
		orchestrator *jobs.Orchestrator
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

		handler = &recordingHandler{}
		orchestrator = jobs.NewOrchestrator(s, jobs.SyncScheduler{})
		orchestrator.Register(model.JobTypeFile, handler)
	})

	AfterEach(func() {
		gormDB.Exec("DELETE FROM domains;")
	})

	Context("create", func() {
		It("persists a running job and hands it to the registered handler", func() {
			job, err := orchestrator.CreateJob(context.TODO(), model.JobTypeFile, model.JobSubtypeExcel, "export.xlsx", domain.ID)
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal(model.JobStatusRunning))
			Expect(job.Subject).To(Equal("export.xlsx"))

			Expect(handler.processed).To(HaveLen(1))
			Expect(handler.processed[0].ID).To(Equal(job.ID))

			stored, err := orchestrator.GetJob(context.TODO(), job.ID)
			Expect(err).To(BeNil())
			Expect(stored.Status).To(Equal(model.JobStatusRunning))
		})

		It("does not schedule job types without a handler", func() {
			job, err := orchestrator.CreateJob(context.TODO(), model.JobTypeMetric, model.JobSubtypeReviewsDone, "Review assignments finished", domain.ID)
			Expect(err).To(BeNil())
			Expect(job.Type).To(Equal(model.JobTypeMetric))
			Expect(handler.processed).To(BeEmpty())
		})

		It("rejects a subtype of another job type", func() {
			_, err := orchestrator.CreateJob(context.TODO(), model.JobTypeFile, model.JobSubtypeParticipation, "export.xlsx", domain.ID)
			var subtypeErr *jobs.ErrInvalidJobSubtype
			Expect(errors.As(err, &subtypeErr)).To(BeTrue())

			list, err := orchestrator.ListDomainJobs(context.TODO(), domain.ID)
			Expect(err).To(BeNil())
			Expect(list).To(BeEmpty())
		})

		It("propagates storage errors to the caller", func() {
			_, err := orchestrator.CreateJob(context.TODO(), model.JobTypeFile, model.JobSubtypeExcel, "export.xlsx", uuid.New())
			Expect(err).NotTo(BeNil())
			Expect(handler.processed).To(BeEmpty())
		})
	})

	Context("end", func() {
		var job *model.ProcessingJob

		BeforeEach(func() {
			var err error
			job, err = orchestrator.CreateJob(context.TODO(), model.JobTypeMetric, model.JobSubtypeReviewsDone, "Review assignments finished", domain.ID)
			Expect(err).To(BeNil())
		})

		It("moves the job to its terminal status once", func() {
			Expect(orchestrator.EndJob(context.TODO(), job, model.JobStatusCompleted, "Job ended successfully.")).To(Succeed())
			Expect(job.Status).To(Equal(model.JobStatusCompleted))
			Expect(job.EndedAt).NotTo(BeNil())

			err := orchestrator.EndJob(context.TODO(), job, model.JobStatusFailed, "too late")
			Expect(err).To(MatchError(jobs.ErrJobAlreadyEnded))

			stored, err := orchestrator.GetJob(context.TODO(), job.ID)
			Expect(err).To(BeNil())
			Expect(stored.Status).To(Equal(model.JobStatusCompleted))
			Expect(stored.Message).To(Equal("Job ended successfully."))
		})

		It("refuses a non terminal status", func() {
			err := orchestrator.EndJob(context.TODO(), job, model.JobStatusRunning, "")
			Expect(errors.Is(err, jobs.ErrInvalidJobStatus)).To(BeTrue())
		})

		It("reports unknown jobs", func() {
			err := orchestrator.EndJob(context.TODO(), &model.ProcessingJob{ID: uuid.New()}, model.JobStatusFailed, "boom")
			var notFound *jobs.ErrJobNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})

	Context("query", func() {
		It("lists the jobs of one domain", func() {
			other, err := s.Domain().Create(context.TODO(), model.Domain{Name: "FSE"})
			Expect(err).To(BeNil())

			_, err = orchestrator.CreateJob(context.TODO(), model.JobTypeFile, model.JobSubtypeExcel, "a.xlsx", domain.ID)
			Expect(err).To(BeNil())
			_, err = orchestrator.CreateJob(context.TODO(), model.JobTypeFile, model.JobSubtypeExcel, "b.xlsx", domain.ID)
			Expect(err).To(BeNil())
			_, err = orchestrator.CreateJob(context.TODO(), model.JobTypeFile, model.JobSubtypeExcel, "c.xlsx", other.ID)
			Expect(err).To(BeNil())

			list, err := orchestrator.ListDomainJobs(context.TODO(), domain.ID)
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(2))
		})

		It("reports unknown jobs", func() {
			_, err := orchestrator.GetJob(context.TODO(), uuid.New())
			var notFound *jobs.ErrJobNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})
})
