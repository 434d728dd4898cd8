package metric

import (
	"github.com/watchair/watchair/internal/store/model"
)

const (
	reviewsDoneDescription = "How many submission review assignments have been completed so far"
	reviewUnit             = "review/reviews"

	ReviewsDonePerReviewerTitle = "Review assignments finished per reviewer"
	LateReviewsTitle            = "Late reviews per reviewer"
)

// ReviewsDone compares the reviews written with the reviews assigned, for the whole
// domain and per reviewer. Reviewers without any review are left out.
func ReviewsDone(title string, s *Snapshot) []model.MetricHeader {
	headers := []model.MetricHeader{
		{
			Title:       title,
			Description: reviewsDoneDescription,
			ValueMin:    0,
			ValueMax:    float64(len(s.Assignments)),
			ValueStep:   1,
			ValueUnit:   reviewUnit,
			Values: []model.MetricValue{
				{Value: float64(len(s.Reviews)), Label: "Reviews done", Color: neutralColor},
			},
		},
	}

	assigned := countBy(s.Assignments, func(a model.Assignment) int { return a.MemberID })
	reviewed := countBy(s.Reviews, func(r model.Review) int { return r.MemberID })

	if len(reviewed) > 0 {
		individual := model.MetricHeader{
			Title:       ReviewsDonePerReviewerTitle,
			Description: "How many of their assigned reviews each reviewer has completed",
			ValueMin:    0,
			ValueStep:   1,
			ValueUnit:   reviewUnit,
		}
		for _, memberID := range sortedKeys(reviewed) {
			maxValue := float64(assigned[memberID])
			individual.ValueMax = max(individual.ValueMax, maxValue, float64(reviewed[memberID]))
			individual.Values = append(individual.Values, model.MetricValue{
				Value: float64(reviewed[memberID]),
				Min:   ptr(0.0),
				Max:   ptr(maxValue),
				Step:  ptr(1.0),
				Label: s.memberLabel(memberID),
				Color: neutralColor,
			})
		}
		headers = append(headers, individual)
	}

	if late := lateReviews(s); late != nil {
		headers = append(headers, *late)
	}

	return headers
}

// lateReviews counts per reviewer the reviews submitted after the domain end date.
func lateReviews(s *Snapshot) *model.MetricHeader {
	if s.Domain.EndDate == nil {
		return nil
	}

	late := make(map[int]int)
	for _, r := range s.Reviews {
		if r.Submitted != nil && r.Submitted.After(*s.Domain.EndDate) {
			late[r.MemberID]++
		}
	}
	if len(late) == 0 {
		return nil
	}

	header := &model.MetricHeader{
		Title:       LateReviewsTitle,
		Description: "How many reviews each reviewer submitted after the conference end date",
		ValueMin:    0,
		ValueStep:   1,
		ValueUnit:   reviewUnit,
	}
	for _, memberID := range sortedKeys(late) {
		header.ValueMax = max(header.ValueMax, float64(late[memberID]))
		header.Values = append(header.Values, model.MetricValue{
			Value: float64(late[memberID]),
			Label: s.memberLabel(memberID),
			Color: neutralColor,
		})
	}
	return header
}
