package ingestion

import (
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/internal/workbook"
)

func (e *extractor) reviews(rows []workbook.Row) ([]model.Review, error) {
	reviews := make([]model.Review, 0, len(rows))
	for _, row := range rows {
		id, err := row.Int("#")
		if err != nil {
			return nil, newRowError(row, err)
		}

		memberID, err := row.Int("member #")
		if err != nil {
			return nil, newRowError(row, err)
		}

		submissionID, err := row.Int("submission #")
		if err != nil {
			return nil, newRowError(row, err)
		}

		submitted, err := row.DateTime("date", "time")
		if err != nil {
			return nil, newRowError(row, err)
		}

		overall, confidence := parseScores(row.String("scores"))
		if row.Has("total score") {
			total, err := row.Int("total score")
			if err != nil {
				return nil, newRowError(row, err)
			}
			overall = &total
		}

		review := model.Review{
			DomainID:         e.domainID,
			ID:               id,
			Submitted:        submitted,
			MemberID:         memberID,
			SubmissionID:     submissionID,
			Content:          row.String("text"),
			ReviewScoreValue: overall,
			Confidence:       confidence,
		}
		if err := e.check(row, review); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}
