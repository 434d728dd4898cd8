package ingestion

import (
	"github.com/google/uuid"

	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/internal/workbook"
)

func (e *extractor) assignments(rows []workbook.Row) ([]model.Assignment, error) {
	assignments := make([]model.Assignment, 0, len(rows))
	for _, row := range rows {
		memberID, err := row.Int("member #")
		if err != nil {
			return nil, newRowError(row, err)
		}

		submissionID, err := row.Int("submission #")
		if err != nil {
			return nil, newRowError(row, err)
		}

		assignment := model.Assignment{
			ID:           uuid.New(),
			DomainID:     e.domainID,
			MemberID:     memberID,
			SubmissionID: submissionID,
		}
		if err := e.check(row, assignment); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}
