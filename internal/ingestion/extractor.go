package ingestion

import (
	"github.com/google/uuid"

	"github.com/watchair/watchair/internal/handlers/validator"
	"github.com/watchair/watchair/internal/workbook"
)

// extractor turns sheet rows into domain records. It performs no I/O.
type extractor struct {
	domainID  uuid.UUID
	validator *validator.Validator
}

func newExtractor(domainID uuid.UUID, v *validator.Validator) *extractor {
	return &extractor{domainID: domainID, validator: v}
}

func (e *extractor) check(row workbook.Row, record any) error {
	if err := e.validator.Struct(record); err != nil {
		return newRowError(row, err)
	}
	return nil
}

// memberNumber reads the committee member id, "#" on the committee sheet and "member #" elsewhere.
func memberNumber(row workbook.Row) (int, error) {
	if row.Has("#") {
		return row.Int("#")
	}
	return row.Int("member #")
}
