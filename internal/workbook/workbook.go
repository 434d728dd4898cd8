package workbook

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ParseError reports content that is not a readable xlsx workbook.
type ParseError struct {
	err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to read workbook: %v", e.err)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

type Workbook struct {
	sheets []string
	rows   map[string][]Row
}

// Read loads every sheet of the workbook. The first row of a sheet is its header.
func Read(content []byte) (*Workbook, error) {
	if len(content) == 0 {
		return nil, &ParseError{err: fmt.Errorf("empty content")}
	}

	excelFile, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, &ParseError{err: err}
	}
	defer excelFile.Close()

	wb := &Workbook{
		sheets: excelFile.GetSheetList(),
		rows:   make(map[string][]Row),
	}

	for _, sheet := range wb.sheets {
		raw, err := excelFile.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, &ParseError{err: fmt.Errorf("sheet %q: %w", sheet, err)}
		}
		wb.rows[sheet] = toRows(sheet, raw)
	}

	zap.S().Named("workbook").Debugw("workbook read", "sheets", wb.sheets)

	return wb, nil
}

func (w *Workbook) SheetNames() []string {
	return slices.Clone(w.sheets)
}

// HasSheets reports whether every named sheet is present.
func (w *Workbook) HasSheets(names ...string) bool {
	for _, name := range names {
		if !slices.Contains(w.sheets, name) {
			return false
		}
	}
	return true
}

// Sheet returns the data rows of the named sheet, or nil when the sheet is absent.
func (w *Workbook) Sheet(name string) []Row {
	return w.rows[name]
}

func toRows(sheet string, raw [][]string) []Row {
	if len(raw) == 0 {
		return nil
	}

	colMap := buildColumnMap(raw[0])
	rows := make([]Row, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		if isEmpty(cells) {
			continue
		}
		values := make(map[string]string, len(colMap))
		for key, idx := range colMap {
			if idx < len(cells) {
				values[key] = strings.TrimSpace(cells[idx])
			}
		}
		// header is spreadsheet row 1
		rows = append(rows, Row{Sheet: sheet, Number: i + 2, values: values})
	}
	return rows
}

func buildColumnMap(headers []string) map[string]int {
	colMap := make(map[string]int)
	for i, header := range headers {
		key := normalize(header)
		if key == "" {
			continue
		}
		if _, found := colMap[key]; !found {
			colMap[key] = i
		}
	}
	return colMap
}

func isEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
