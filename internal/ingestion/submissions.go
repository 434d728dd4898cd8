package ingestion

import (
	"github.com/google/uuid"

	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/internal/workbook"
)

func (e *extractor) submissions(rows []workbook.Row) ([]model.Submission, error) {
	submissions := make([]model.Submission, 0, len(rows))
	for _, row := range rows {
		id, err := row.Int("#")
		if err != nil {
			return nil, newRowError(row, err)
		}

		submitted, err := row.Time("submitted")
		if err != nil {
			return nil, newRowError(row, err)
		}

		lastUpdated, err := row.Time("last updated")
		if err != nil {
			return nil, newRowError(row, err)
		}

		submission := model.Submission{
			DomainID:    e.domainID,
			ID:          id,
			Title:       row.String("title"),
			Submitted:   submitted,
			LastUpdated: lastUpdated,
		}
		if err := e.check(row, submission); err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}
	return submissions, nil
}

// authorships links every "Authors" row to its submission. Rows have no natural key.
func (e *extractor) authorships(rows []workbook.Row) ([]model.SubmissionAuthorship, error) {
	authorships := make([]model.SubmissionAuthorship, 0, len(rows))
	for _, row := range rows {
		authorID, err := row.Int("person #")
		if err != nil {
			return nil, newRowError(row, err)
		}

		submissionID, err := row.Int("submission #")
		if err != nil {
			return nil, newRowError(row, err)
		}

		authorship := model.SubmissionAuthorship{
			ID:           uuid.New(),
			DomainID:     e.domainID,
			AuthorID:     authorID,
			SubmissionID: submissionID,
		}
		if err := e.check(row, authorship); err != nil {
			return nil, err
		}
		authorships = append(authorships, authorship)
	}
	return authorships, nil
}
