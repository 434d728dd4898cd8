package store_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	st "github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/internal/store/storetest"
)

var _ = Describe("Store", Ordered, func() {
	var (
		store  st.Store
		gormDB *gorm.DB
		domain *model.Domain
	)

	BeforeAll(func() {
		var err error
		store, gormDB, err = storetest.Open()
		Expect(err).To(BeNil())
	})

	AfterAll(func() {
		store.Close()
	})

	BeforeEach(func() {
		var err error
		domain, err = store.Domain().Create(context.TODO(), model.Domain{Name: "ICSE"})
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		gormDB.Exec("DELETE FROM domains;")
		gormDB.Exec("DELETE FROM review_scores;")
		gormDB.Exec("DELETE FROM confidences;")
	})

	Context("transaction", func() {
		It("commits persons created in a transaction", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			err = store.Person().Create(ctx, []model.Person{{DomainID: domain.ID, ID: 1, FirstName: "Ada"}})
			Expect(err).To(BeNil())

			_, err = st.Commit(ctx)
			Expect(err).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) FROM persons;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rolls back persons created in a transaction", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			err = store.Person().Create(ctx, []model.Person{{DomainID: domain.ID, ID: 1, FirstName: "Ada"}})
			Expect(err).To(BeNil())

			persons, err := store.Person().List(ctx, domain.ID)
			Expect(err).To(BeNil())
			Expect(persons).To(HaveLen(1))

			_, err = st.Rollback(ctx)
			Expect(err).To(BeNil())

			count := -1
			err = gormDB.Raw("SELECT COUNT(*) FROM persons;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})
	})

	Context("constraints", func() {
		It("reports duplicate persons as a unique constraint error", func() {
			persons := []model.Person{{DomainID: domain.ID, ID: 1, FirstName: "Ada"}}
			Expect(store.Person().Create(context.TODO(), persons)).To(Succeed())

			err := store.Person().Create(context.TODO(), persons)
			Expect(err).ToNot(BeNil())

			var constraintErr *st.ConstraintError
			Expect(err).To(BeAssignableToTypeOf(constraintErr))
			constraintErr = err.(*st.ConstraintError)
			Expect(constraintErr.Kind).To(Equal(st.UniqueConstraint))
			Expect(constraintErr.Message).NotTo(BeEmpty())
			Expect(err).To(MatchError(st.ErrDuplicateKey))
		})

		It("reports dangling references as a foreign key error", func() {
			err := store.Assignment().Create(context.TODO(), []model.Assignment{{DomainID: domain.ID, MemberID: 7, SubmissionID: 9}})
			Expect(err).ToNot(BeNil())

			constraintErr, ok := err.(*st.ConstraintError)
			Expect(ok).To(BeTrue())
			Expect(constraintErr.Kind).To(Equal(st.ForeignKeyConstraint))
			Expect(constraintErr.Message).To(ContainSubstring("FOREIGN KEY"))
		})

		It("returns ErrRecordNotFound for an unknown domain", func() {
			_, err := store.Domain().Get(context.TODO(), uuid.New())
			Expect(err).To(Equal(st.ErrRecordNotFound))
		})
	})

	Context("committee members", func() {
		BeforeEach(func() {
			persons := []model.Person{
				{DomainID: domain.ID, ID: 1}, {DomainID: domain.ID, ID: 2}, {DomainID: domain.ID, ID: 3},
			}
			Expect(store.Person().Create(context.TODO(), persons)).To(Succeed())
			members := []model.CommitteeMember{
				{DomainID: domain.ID, ID: 10, PersonID: 1, Role: model.RoleChair},
				{DomainID: domain.ID, ID: 11, PersonID: 2, Role: model.RoleSeniorPCMember},
				{DomainID: domain.ID, ID: 12, PersonID: 3, Role: model.RolePCMember},
			}
			Expect(store.Member().Create(context.TODO(), members)).To(Succeed())
		})

		It("lists every member whose role includes the requested one", func() {
			members, err := store.Member().List(context.TODO(), st.NewMemberQueryFilter().ByDomainID(domain.ID).ByRole(model.RolePCMember))
			Expect(err).To(BeNil())
			Expect(members).To(HaveLen(3))

			members, err = store.Member().List(context.TODO(), st.NewMemberQueryFilter().ByDomainID(domain.ID).ByRole(model.RoleSeniorPCMember))
			Expect(err).To(BeNil())
			Expect(members).To(HaveLen(2))

			members, err = store.Member().List(context.TODO(), st.NewMemberQueryFilter().ByDomainID(domain.ID).ByRole(model.RoleChair))
			Expect(err).To(BeNil())
			Expect(members).To(HaveLen(1))
			Expect(members[0].ID).To(Equal(10))
		})

		It("removes the domain records on domain deletion", func() {
			Expect(store.Domain().Delete(context.TODO(), domain.ID)).To(Succeed())

			count := -1
			err := gormDB.Raw("SELECT COUNT(*) FROM committee_members;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))

			err = gormDB.Raw("SELECT COUNT(*) FROM persons;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})
	})

	Context("scores", func() {
		It("inserts reference values only once", func() {
			scores := []model.ReviewScore{{Value: -1, Explanation: "weak reject"}, {Value: 2, Explanation: "accept"}}
			Expect(store.Score().EnsureReviewScores(context.TODO(), scores)).To(Succeed())
			Expect(store.Score().EnsureReviewScores(context.TODO(), scores)).To(Succeed())

			stored, err := store.Score().ListReviewScores(context.TODO())
			Expect(err).To(BeNil())
			Expect(stored).To(HaveLen(2))
			Expect(stored[0].Value).To(Equal(-1))

			Expect(store.Score().EnsureConfidences(context.TODO(), []model.Confidence{{Value: 3, Explanation: "medium"}})).To(Succeed())
			Expect(store.Score().EnsureConfidences(context.TODO(), []model.Confidence{{Value: 3, Explanation: "medium"}})).To(Succeed())
			confidences, err := store.Score().ListConfidences(context.TODO())
			Expect(err).To(BeNil())
			Expect(confidences).To(HaveLen(1))
		})
	})

	Context("jobs", func() {
		It("ends a running job only once", func() {
			job, err := store.Job().Create(context.TODO(), model.ProcessingJob{
				DomainID: domain.ID,
				Type:     model.JobTypeFile,
				Subtype:  model.JobSubtypeExcel,
				Subject:  "upload.xlsx",
				Status:   model.JobStatusRunning,
			})
			Expect(err).To(BeNil())
			Expect(job.ID).NotTo(Equal(uuid.Nil))

			ended, err := store.Job().End(context.TODO(), job.ID, model.JobStatusFailed, "boom")
			Expect(err).To(BeNil())
			Expect(ended.Status).To(Equal(model.JobStatusFailed))
			Expect(ended.EndedAt).NotTo(BeNil())

			again, err := store.Job().End(context.TODO(), job.ID, model.JobStatusCompleted, "done")
			Expect(err).To(Equal(st.ErrJobNotRunning))
			Expect(again.Status).To(Equal(model.JobStatusFailed))
			Expect(again.Message).To(Equal("boom"))
		})

		It("lists the jobs of a domain", func() {
			for _, subtype := range []model.JobSubtype{model.JobSubtypeReviewsDone, model.JobSubtypeParticipation} {
				_, err := store.Job().Create(context.TODO(), model.ProcessingJob{
					DomainID: domain.ID,
					Type:     model.JobTypeMetric,
					Subtype:  subtype,
					Subject:  string(subtype),
					Status:   model.JobStatusRunning,
				})
				Expect(err).To(BeNil())
			}

			jobs, err := store.Job().List(context.TODO(), st.NewJobQueryFilter().ByDomainID(domain.ID).ByType(model.JobTypeMetric))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(2))

			jobs, err = store.Job().List(context.TODO(), st.NewJobQueryFilter().ByDomainID(uuid.New()))
			Expect(err).To(BeNil())
			Expect(jobs).To(BeEmpty())

			stats, err := store.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.Domains).To(Equal(1))
			Expect(stats.JobsByStatus).To(HaveKeyWithValue("RUNNING", 2))
		})
	})

	Context("metrics", func() {
		It("replaces headers sharing a title", func() {
			header := func(value float64) model.MetricHeader {
				return model.MetricHeader{
					Title:    "Review assignments finished",
					ValueMax: 4,
					Values: []model.MetricValue{
						{Value: value, Label: "Reviews done"},
						{Value: 1, Label: "Other"},
					},
				}
			}

			Expect(store.Metric().Replace(context.TODO(), domain.ID, nil, []model.MetricHeader{header(1)})).To(Succeed())
			time.Sleep(10 * time.Millisecond)
			Expect(store.Metric().Replace(context.TODO(), domain.ID, nil, []model.MetricHeader{header(3)})).To(Succeed())

			headers, err := store.Metric().List(context.TODO(), domain.ID)
			Expect(err).To(BeNil())
			Expect(headers).To(HaveLen(1))
			Expect(headers[0].Values).To(HaveLen(2))
			Expect(headers[0].Values[0].Value).To(Equal(3.0))
			Expect(headers[0].Values[0].Label).To(Equal("Reviews done"))

			count := -1
			err = gormDB.Raw("SELECT COUNT(*) FROM metric_values;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(2))
		})

		It("drops listed titles without new headers", func() {
			Expect(store.Metric().Replace(context.TODO(), domain.ID, nil, []model.MetricHeader{{Title: "Late reviews per reviewer"}})).To(Succeed())
			Expect(store.Metric().Replace(context.TODO(), domain.ID, []string{"Late reviews per reviewer"}, nil)).To(Succeed())

			headers, err := store.Metric().List(context.TODO(), domain.ID)
			Expect(err).To(BeNil())
			Expect(headers).To(BeEmpty())
		})
	})
})
