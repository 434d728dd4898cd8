package metric

import (
	"github.com/watchair/watchair/internal/store/model"
)

const participationUnit = "contribution/contributions"

// Participation sums the reviews and comments written by each committee member.
// Members who wrote neither are left out.
func Participation(title string, s *Snapshot) []model.MetricHeader {
	totals := countBy(s.Reviews, func(r model.Review) int { return r.MemberID })
	for _, c := range s.Comments {
		totals[c.MemberID]++
	}
	if len(totals) == 0 {
		return nil
	}

	header := model.MetricHeader{
		Title:       title,
		Description: "How many reviews and comments each committee member has written",
		ValueMin:    0,
		ValueStep:   1,
		ValueUnit:   participationUnit,
	}
	for _, memberID := range sortedKeys(totals) {
		header.ValueMax = max(header.ValueMax, float64(totals[memberID]))
		header.Values = append(header.Values, model.MetricValue{
			Value: float64(totals[memberID]),
			Label: s.memberLabel(memberID),
			Color: neutralColor,
		})
	}
	return []model.MetricHeader{header}
}
