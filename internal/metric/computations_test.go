package metric_test

import (
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/watchair/watchair/internal/metric"
	"github.com/watchair/watchair/internal/store/model"
)

func assignment(member, submission int) model.Assignment {
	return model.Assignment{ID: uuid.New(), MemberID: member, SubmissionID: submission}
}

func review(id, member, submission int, score *int) model.Review {
	return model.Review{ID: id, MemberID: member, SubmissionID: submission, ReviewScoreValue: score, Confidence: model.DefaultConfidence}
}

func score(v int) *int {
	return &v
}

func findHeader(headers []model.MetricHeader, title string) *model.MetricHeader {
	for i := range headers {
		if headers[i].Title == title {
			return &headers[i]
		}
	}
	return nil
}

func sumValues(values []model.MetricValue) float64 {
	total := 0.0
	for _, v := range values {
		total += v.Value
	}
	return total
}

var _ = Describe("ReviewsDone", func() {
	It("counts reviews against assignments", func() {
		snapshot := &metric.Snapshot{
			Persons: []model.Person{{ID: 10, FirstName: "Ada", LastName: "Lovelace"}},
			Members: []model.CommitteeMember{{ID: 1, PersonID: 10}, {ID: 2, PersonID: 20}},
			Assignments: []model.Assignment{
				assignment(1, 1), assignment(1, 2), assignment(2, 1), assignment(2, 2),
			},
			Reviews: []model.Review{review(1, 1, 1, score(2))},
		}

		headers := metric.ReviewsDone(metric.ReviewsDoneSubject, snapshot)

		global := findHeader(headers, metric.ReviewsDoneSubject)
		Expect(global).NotTo(BeNil())
		Expect(global.ValueMin).To(Equal(0.0))
		Expect(global.ValueMax).To(Equal(4.0))
		Expect(global.ValueStep).To(Equal(1.0))
		Expect(global.ValueUnit).To(Equal("review/reviews"))
		Expect(global.Description).To(Equal("How many submission review assignments have been completed so far"))
		Expect(global.Values).To(HaveLen(1))
		Expect(global.Values[0].Value).To(Equal(1.0))
		Expect(global.Values[0].Label).To(Equal("Reviews done"))
		Expect(global.Values[0].Color).To(Equal("#"))

		individual := findHeader(headers, metric.ReviewsDonePerReviewerTitle)
		Expect(individual).NotTo(BeNil())
		// member 2 has assignments but no review
		Expect(individual.Values).To(HaveLen(1))
		Expect(individual.Values[0].Label).To(Equal("Ada Lovelace"))
		Expect(individual.Values[0].Value).To(Equal(1.0))
		Expect(*individual.Values[0].Max).To(Equal(2.0))

		Expect(findHeader(headers, metric.LateReviewsTitle)).To(BeNil())
	})

	It("keeps the global value when nothing was assigned", func() {
		headers := metric.ReviewsDone(metric.ReviewsDoneSubject, &metric.Snapshot{})
		Expect(headers).To(HaveLen(1))
		Expect(headers[0].ValueMax).To(Equal(0.0))
		Expect(headers[0].Values[0].Value).To(Equal(0.0))
	})

	It("counts late reviews per reviewer when the domain has an end date", func() {
		end := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		before := end.Add(-time.Hour)
		after := end.Add(time.Hour)

		late := review(1, 1, 1, score(1))
		late.Submitted = &after
		onTime := review(2, 2, 1, score(1))
		onTime.Submitted = &before

		snapshot := &metric.Snapshot{
			Domain:      model.Domain{EndDate: &end},
			Assignments: []model.Assignment{assignment(1, 1), assignment(2, 1)},
			Reviews:     []model.Review{late, onTime},
		}

		header := findHeader(metric.ReviewsDone(metric.ReviewsDoneSubject, snapshot), metric.LateReviewsTitle)
		Expect(header).NotTo(BeNil())
		Expect(header.Values).To(HaveLen(1))
		Expect(header.Values[0].Label).To(Equal("Member #1"))
		Expect(header.Values[0].Value).To(Equal(1.0))
	})
})

var _ = Describe("SubmissionAcceptance", func() {
	var snapshot *metric.Snapshot

	BeforeEach(func() {
		snapshot = &metric.Snapshot{
			ReviewScores: []model.ReviewScore{
				{Value: -2, Explanation: "reject"},
				{Value: -1, Explanation: "weak reject"},
				{Value: 1, Explanation: "weak accept"},
				{Value: 2, Explanation: "accept"},
			},
			Assignments: []model.Assignment{
				assignment(1, 1), assignment(2, 1), assignment(1, 2), assignment(2, 2), assignment(3, 2),
			},
			Reviews: []model.Review{
				review(1, 1, 1, score(2)),
				review(2, 2, 1, score(-2)),
				review(3, 1, 2, score(1)),
			},
		}
	})

	It("distributes every assignment over the buckets", func() {
		headers := metric.SubmissionAcceptance(metric.SubmissionAcceptanceSubject, snapshot)

		distribution := findHeader(headers, metric.SubmissionAcceptanceSubject)
		Expect(distribution).NotTo(BeNil())
		Expect(sumValues(distribution.Values)).To(Equal(float64(len(snapshot.Assignments))))

		last := distribution.Values[len(distribution.Values)-1]
		Expect(last.Label).To(Equal("Not reviewed yet"))
		Expect(last.Value).To(Equal(2.0))
		Expect(last.Color).To(Equal("#9e9e9e"))

		Expect(distribution.Values[0].Label).To(Equal("-2 (reject)"))
		Expect(distribution.Values[0].Color).To(Equal("#e53935"))
		Expect(distribution.Values[3].Label).To(Equal("+2 (accept)"))
		Expect(distribution.Values[3].Color).To(Equal("#43a047"))
	})

	It("keeps the buckets summing up with unscored reviews and unknown scores", func() {
		snapshot.Reviews = append(snapshot.Reviews, review(4, 3, 2, nil), review(5, 2, 2, score(5)))

		distribution := findHeader(metric.SubmissionAcceptance(metric.SubmissionAcceptanceSubject, snapshot), metric.SubmissionAcceptanceSubject)
		Expect(sumValues(distribution.Values)).To(Equal(float64(len(snapshot.Assignments))))

		var unknown *model.MetricValue
		for i := range distribution.Values {
			if distribution.Values[i].Label == "+5" {
				unknown = &distribution.Values[i]
			}
		}
		Expect(unknown).NotTo(BeNil())
		Expect(unknown.Color).To(Equal("#"))
	})

	It("computes the average and the deviations", func() {
		headers := metric.SubmissionAcceptance(metric.SubmissionAcceptanceSubject, snapshot)

		average := findHeader(headers, metric.AverageScoreTitle)
		Expect(average).NotTo(BeNil())
		Expect(average.Values[0].Value).To(BeNumerically("~", 1.0/3.0, 1e-9))

		deviation := findHeader(headers, metric.ScoreDeviationTitle)
		Expect(deviation).NotTo(BeNil())
		Expect(deviation.Values).To(HaveLen(2))
		// member 1 averages 1.5, member 2 averages -2
		Expect(deviation.Values[0].Value).To(BeNumerically("~", 1.5-1.0/3.0, 1e-9))
		Expect(deviation.Values[1].Value).To(BeNumerically("~", -2-1.0/3.0, 1e-9))

		local := findHeader(headers, metric.LocalDeviationTitle)
		Expect(local).NotTo(BeNil())
		Expect(local.Values).To(HaveLen(2))
		// submission 1 averages 0: member 1 is +2 on it and 0 on submission 2, member 2 is -2
		Expect(local.Values[0].Value).To(BeNumerically("~", 1.0, 1e-9))
		Expect(local.Values[1].Value).To(BeNumerically("~", -2.0, 1e-9))
	})

	It("averages over the scored reviews only", func() {
		snapshot.Reviews = append(snapshot.Reviews, review(4, 3, 2, nil))

		average := findHeader(metric.SubmissionAcceptance(metric.SubmissionAcceptanceSubject, snapshot), metric.AverageScoreTitle)
		Expect(average).NotTo(BeNil())
		Expect(average.Values[0].Value).To(BeNumerically("~", 1.0/3.0, 1e-9))
	})

	It("leaves out averages when no review is scored", func() {
		snapshot.Reviews = []model.Review{review(1, 1, 1, nil)}

		headers := metric.SubmissionAcceptance(metric.SubmissionAcceptanceSubject, snapshot)
		Expect(headers).To(HaveLen(1))
		Expect(findHeader(headers, metric.AverageScoreTitle)).To(BeNil())
		Expect(sumValues(headers[0].Values)).To(Equal(float64(len(snapshot.Assignments))))
	})
})

var _ = Describe("Participation", func() {
	It("sums reviews and comments per member", func() {
		snapshot := &metric.Snapshot{
			Members: []model.CommitteeMember{{ID: 1}, {ID: 2}, {ID: 3}},
			Reviews: []model.Review{review(1, 1, 1, nil), review(2, 1, 2, nil)},
			Comments: []model.Comment{
				{ID: 1, MemberID: 1, SubmissionID: 1},
				{ID: 2, MemberID: 2, SubmissionID: 1},
			},
		}

		headers := metric.Participation(metric.ParticipationSubject, snapshot)
		Expect(headers).To(HaveLen(1))
		Expect(headers[0].Values).To(HaveLen(2))
		Expect(headers[0].Values[0].Label).To(Equal("Member #1"))
		Expect(headers[0].Values[0].Value).To(Equal(3.0))
		Expect(headers[0].Values[1].Value).To(Equal(1.0))
		Expect(headers[0].ValueMax).To(Equal(3.0))
	})

	It("produces nothing without contributions", func() {
		Expect(metric.Participation(metric.ParticipationSubject, &metric.Snapshot{})).To(BeEmpty())
	})
})
