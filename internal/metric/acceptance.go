package metric

import (
	"strconv"

	"github.com/watchair/watchair/internal/store/model"
)

const (
	AverageScoreTitle     = "Average evaluation score"
	ScoreDeviationTitle   = "Reviewer score deviation"
	LocalDeviationTitle   = "Reviewer score deviation within submissions"
	notReviewedYetLabel   = "Not reviewed yet"
	unscoredLabel         = "Unscored"
	scoreUnit             = "point/points"
	acceptanceDescription = "How the review assignments are distributed over the overall evaluation scores"
)

// scoreStats accumulates scored reviews.
type scoreStats struct {
	sum   float64
	count int
}

func (s *scoreStats) add(v int) {
	s.sum += float64(v)
	s.count++
}

func (s scoreStats) average() (float64, bool) {
	if s.count == 0 {
		return 0, false
	}
	return s.sum / float64(s.count), true
}

// SubmissionAcceptance distributes the assignments over the evaluation scores and
// derives the domain average and per reviewer deviations from it.
func SubmissionAcceptance(title string, s *Snapshot) []model.MetricHeader {
	explanations := make(map[int]string, len(s.ReviewScores))
	for _, rs := range s.ReviewScores {
		explanations[rs.Value] = rs.Explanation
	}

	perScore := make(map[int]int)
	for value := range explanations {
		perScore[value] = 0
	}

	var (
		domain   scoreStats
		unscored int
	)
	for _, r := range s.Reviews {
		if r.ReviewScoreValue == nil {
			unscored++
			continue
		}
		perScore[*r.ReviewScoreValue]++
		domain.add(*r.ReviewScoreValue)
	}

	distribution := model.MetricHeader{
		Title:       title,
		Description: acceptanceDescription,
		ValueMin:    0,
		ValueMax:    float64(len(s.Assignments)),
		ValueStep:   1,
		ValueUnit:   reviewUnit,
	}
	for _, value := range sortedKeys(perScore) {
		distribution.Values = append(distribution.Values, model.MetricValue{
			Value: float64(perScore[value]),
			Label: scoreLabel(value, explanations[value]),
			Color: scoreColor(float64(value)),
		})
	}
	distribution.Values = append(distribution.Values, model.MetricValue{
		Value: float64(max(0, len(s.Assignments)-len(s.Reviews))),
		Label: notReviewedYetLabel,
		Color: notReviewedColor,
	})
	if unscored > 0 {
		distribution.Values = append(distribution.Values, model.MetricValue{
			Value: float64(unscored),
			Label: unscoredLabel,
			Color: neutralColor,
		})
	}

	headers := []model.MetricHeader{distribution}

	// unscored reviews sit in their own bucket and stay out of the denominator
	average, ok := domain.average()
	if !ok {
		return headers
	}

	low, high := scoreRange(perScore)
	headers = append(headers, model.MetricHeader{
		Title:       AverageScoreTitle,
		Description: "Average overall evaluation over every scored review",
		ValueMin:    low,
		ValueMax:    high,
		ValueUnit:   scoreUnit,
		Values: []model.MetricValue{
			{Value: average, Label: "Average score", Color: scoreColor(average)},
		},
	})

	spread := high - low
	if deviation := reviewerDeviation(s, average, spread); deviation != nil {
		headers = append(headers, *deviation)
	}
	if local := localDeviation(s, spread); local != nil {
		headers = append(headers, *local)
	}

	return headers
}

// reviewerDeviation is each reviewer's average score minus the domain average.
func reviewerDeviation(s *Snapshot, domainAverage, spread float64) *model.MetricHeader {
	perReviewer := make(map[int]*scoreStats)
	for _, r := range s.Reviews {
		if r.ReviewScoreValue == nil {
			continue
		}
		if perReviewer[r.MemberID] == nil {
			perReviewer[r.MemberID] = &scoreStats{}
		}
		perReviewer[r.MemberID].add(*r.ReviewScoreValue)
	}
	if len(perReviewer) == 0 {
		return nil
	}

	header := &model.MetricHeader{
		Title:       ScoreDeviationTitle,
		Description: "Difference between the average score of each reviewer and the domain average",
		ValueMin:    -spread,
		ValueMax:    spread,
		ValueUnit:   scoreUnit,
	}
	for _, memberID := range sortedKeys(perReviewer) {
		avg, ok := perReviewer[memberID].average()
		if !ok {
			continue
		}
		header.Values = append(header.Values, model.MetricValue{
			Value: avg - domainAverage,
			Label: s.memberLabel(memberID),
			Color: neutralColor,
		})
	}
	return header
}

// localDeviation compares every reviewer with the other reviewers of the same
// submissions: the mean over their submissions of their score minus the submission average.
func localDeviation(s *Snapshot, spread float64) *model.MetricHeader {
	perSubmission := make(map[int]*scoreStats)
	perReviewerSubmission := make(map[int]map[int]*scoreStats)
	for _, r := range s.Reviews {
		if r.ReviewScoreValue == nil {
			continue
		}
		if perSubmission[r.SubmissionID] == nil {
			perSubmission[r.SubmissionID] = &scoreStats{}
		}
		perSubmission[r.SubmissionID].add(*r.ReviewScoreValue)

		if perReviewerSubmission[r.MemberID] == nil {
			perReviewerSubmission[r.MemberID] = make(map[int]*scoreStats)
		}
		if perReviewerSubmission[r.MemberID][r.SubmissionID] == nil {
			perReviewerSubmission[r.MemberID][r.SubmissionID] = &scoreStats{}
		}
		perReviewerSubmission[r.MemberID][r.SubmissionID].add(*r.ReviewScoreValue)
	}
	if len(perReviewerSubmission) == 0 {
		return nil
	}

	header := &model.MetricHeader{
		Title:       LocalDeviationTitle,
		Description: "Average difference between the score of each reviewer and the average score of the same submissions",
		ValueMin:    -spread,
		ValueMax:    spread,
		ValueUnit:   scoreUnit,
	}
	for _, memberID := range sortedKeys(perReviewerSubmission) {
		var deviation scoreStats
		for submissionID, own := range perReviewerSubmission[memberID] {
			ownAverage, ok := own.average()
			if !ok {
				continue
			}
			submissionAverage, ok := perSubmission[submissionID].average()
			if !ok {
				continue
			}
			deviation.sum += ownAverage - submissionAverage
			deviation.count++
		}
		avg, ok := deviation.average()
		if !ok {
			continue
		}
		header.Values = append(header.Values, model.MetricValue{
			Value: avg,
			Label: s.memberLabel(memberID),
			Color: neutralColor,
		})
	}
	if len(header.Values) == 0 {
		return nil
	}
	return header
}

func scoreLabel(value int, explanation string) string {
	label := strconv.Itoa(value)
	if value > 0 {
		label = "+" + label
	}
	if explanation != "" {
		label += " (" + explanation + ")"
	}
	return label
}

func scoreRange(perScore map[int]int) (float64, float64) {
	values := sortedKeys(perScore)
	if len(values) == 0 {
		return 0, 0
	}
	return float64(values[0]), float64(values[len(values)-1])
}
