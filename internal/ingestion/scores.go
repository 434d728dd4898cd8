package ingestion

import (
	"regexp"
	"strconv"

	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/internal/workbook"
)

const (
	overallEvaluationField = "Overall evaluation"
	confidenceField        = "Reviewer's confidence"
)

var (
	overallEvaluationRegex = regexp.MustCompile(`Overall evaluation:[ \t]*(-?\d+)`)
	confidenceRegex        = regexp.MustCompile(`Reviewer's confidence:[ \t]*(-?\d+)`)
)

// scores splits "Review field scores" rows into the two reference tables by field title.
// The first row seen for a value wins.
func (e *extractor) scores(rows []workbook.Row) ([]model.ReviewScore, []model.Confidence, error) {
	var (
		reviewScores []model.ReviewScore
		confidences  []model.Confidence
	)
	seenScores := make(map[int]bool)
	seenConfidences := make(map[int]bool)

	for _, row := range rows {
		field := row.String("field title")
		if field != overallEvaluationField && field != confidenceField {
			continue
		}

		value, err := row.Int("value")
		if err != nil {
			return nil, nil, newRowError(row, err)
		}
		explanation := row.String("explanation")

		switch field {
		case overallEvaluationField:
			if !seenScores[value] {
				seenScores[value] = true
				reviewScores = append(reviewScores, model.ReviewScore{Value: value, Explanation: explanation})
			}
		case confidenceField:
			if !seenConfidences[value] {
				seenConfidences[value] = true
				confidences = append(confidences, model.Confidence{Value: value, Explanation: explanation})
			}
		}
	}
	return reviewScores, confidences, nil
}

// parseScores reads the free-text "scores" column of a review, e.g.
//
//	Overall evaluation: 2\r\nReviewer's confidence: 4
//
// A missing confidence yields model.DefaultConfidence.
func parseScores(text string) (overall *int, confidence int) {
	confidence = model.DefaultConfidence

	if m := overallEvaluationRegex.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			overall = &v
		}
	}

	if m := confidenceRegex.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			confidence = v
		}
	}
	return overall, confidence
}
