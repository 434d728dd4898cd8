package workbook

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	dateLayouts = []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"02/01/2006",
	}
	clockLayouts = []string{
		"15:04:05",
		"15:04",
	}
)

// Row is one data row of a sheet, addressed by lower-cased header name.
type Row struct {
	Sheet  string
	Number int
	values map[string]string
}

func NewRow(sheet string, number int, values map[string]string) Row {
	normalized := make(map[string]string, len(values))
	for k, v := range values {
		normalized[normalize(k)] = strings.TrimSpace(v)
	}
	return Row{Sheet: sheet, Number: number, values: normalized}
}

// Has reports whether the column exists and holds a value.
func (r Row) Has(key string) bool {
	return r.values[normalize(key)] != ""
}

func (r Row) String(key string) string {
	return r.values[normalize(key)]
}

// Int parses an integer cell. Numeric cells stored as floats are accepted when integral.
func (r Row) Int(key string) (int, error) {
	raw := r.String(key)
	if raw == "" {
		return 0, fmt.Errorf("column %q is empty", key)
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("column %q: %q is not an integer", key, raw)
	}
	return int(f), nil
}

func (r Row) Float(key string) (float64, error) {
	raw := r.String(key)
	if raw == "" {
		return 0, fmt.Errorf("column %q is empty", key)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %q is not a number", key, raw)
	}
	return f, nil
}

// Time parses a date cell given either as text or as an Excel serial number.
// An empty cell yields nil.
func (r Row) Time(key string) (*time.Time, error) {
	raw := r.String(key)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", key, err)
	}
	return &t, nil
}

// DateTime combines a date column with a time-of-day column. A missing time keeps
// midnight.
func (r Row) DateTime(dateKey, clockKey string) (*time.Time, error) {
	date, err := r.Time(dateKey)
	if err != nil || date == nil {
		return date, err
	}

	raw := r.String(clockKey)
	if raw == "" {
		return date, nil
	}
	offset, err := parseClock(raw)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", clockKey, err)
	}

	y, m, d := date.Date()
	combined := time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(offset)
	return &combined, nil
}

func parseDate(raw string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a date", raw)
}

func parseClock(raw string) (time.Duration, error) {
	if fraction, err := strconv.ParseFloat(raw, 64); err == nil {
		// Excel stores a time of day as a fraction of a day
		_, frac := math.Modf(fraction)
		return time.Duration(math.Round(frac * 24 * float64(time.Hour/time.Second))) * time.Second, nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("%q is not a time of day", raw)
}
