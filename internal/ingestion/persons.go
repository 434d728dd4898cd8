package ingestion

import (
	"github.com/thoas/go-funk"

	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/internal/workbook"
)

type personRecords struct {
	persons []model.Person
	members []model.CommitteeMember
	authors []model.Author
}

// persons collects committee members first, so a person listed on both sheets keeps
// the committee entry.
func (e *extractor) persons(committee, authors []workbook.Row) (*personRecords, error) {
	records := &personRecords{}
	seen := make(map[int]bool)

	for _, row := range committee {
		role, err := model.ParseRole(row.String("role"))
		if err != nil {
			// external reviewers and other roles are not committee members
			continue
		}

		person, err := e.person(row)
		if err != nil {
			return nil, err
		}

		memberID, err := memberNumber(row)
		if err != nil {
			return nil, newRowError(row, err)
		}

		member := model.CommitteeMember{
			DomainID: e.domainID,
			ID:       memberID,
			PersonID: person.ID,
			Role:     role,
		}
		if err := e.check(row, member); err != nil {
			return nil, err
		}

		if !seen[person.ID] {
			seen[person.ID] = true
			records.persons = append(records.persons, *person)
		}
		records.members = append(records.members, member)
	}

	authorIDs := make([]int, 0, len(authors))
	for _, row := range authors {
		person, err := e.person(row)
		if err != nil {
			return nil, err
		}

		if !seen[person.ID] {
			seen[person.ID] = true
			records.persons = append(records.persons, *person)
		}
		authorIDs = append(authorIDs, person.ID)
	}

	for _, id := range funk.UniqInt(authorIDs) {
		records.authors = append(records.authors, model.Author{DomainID: e.domainID, PersonID: id})
	}

	return records, nil
}

func (e *extractor) person(row workbook.Row) (*model.Person, error) {
	id, err := row.Int("person #")
	if err != nil {
		return nil, newRowError(row, err)
	}

	person := model.Person{
		DomainID:  e.domainID,
		ID:        id,
		FirstName: row.String("first name"),
		LastName:  row.String("last name"),
	}
	if err := e.check(row, person); err != nil {
		return nil, err
	}
	return &person, nil
}
