package ingestion

import (
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/internal/workbook"
)

func (e *extractor) comments(rows []workbook.Row) ([]model.Comment, error) {
	comments := make([]model.Comment, 0, len(rows))
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

		comment := model.Comment{
			DomainID:     e.domainID,
			ID:           id,
			Submitted:    submitted,
			MemberID:     memberID,
			SubmissionID: submissionID,
			Content:      row.String("text"),
		}
		if err := e.check(row, comment); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}
