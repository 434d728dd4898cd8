package ingestion

import (
	"fmt"

	"github.com/watchair/watchair/internal/workbook"
)

// RowError locates a record that could not be extracted from a sheet.
type RowError struct {
	Sheet string
	Row   int
	Cause error
}

func newRowError(row workbook.Row, cause error) *RowError {
	return &RowError{Sheet: row.Sheet, Row: row.Number, Cause: cause}
}

func (e *RowError) Error() string {
	return fmt.Sprintf("sheet %q row %d: %v", e.Sheet, e.Row, e.Cause)
}

func (e *RowError) Unwrap() error {
	return e.Cause
}
