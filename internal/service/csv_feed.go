package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/timeparse"
)

var csvColumns = []string{"date", "zone_name", "postal_code", "indicator_type", "value", "unit"}

// csvRecord is one parsed pollution measurement.
type csvRecord struct {
	Line       int
	Timestamp  time.Time
	ZoneName   string
	PostalCode *string
	Type       string
	Value      float64
	Unit       string
}

// RowError describes a CSV row that could not be imported.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// readCSV parses every row up front. With skipInvalid unset the first bad row fails the read;
// otherwise bad rows are returned as RowErrors and the rest are kept.
func readCSV(r io.Reader, skipInvalid bool) ([]csvRecord, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read csv header: %v", apperrors.ErrValidation, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		index[name] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("%w: csv column %q missing", apperrors.ErrValidation, col)
		}
	}

	var (
		records []csvRecord
		skipped []RowError
	)
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The reader cannot resync after a syntax error.
			return nil, nil, fmt.Errorf("%w: read csv: %v", apperrors.ErrValidation, err)
		}
		line, _ := reader.FieldPos(0)

		record, rowErr := parseCSVRow(fields, index, line)
		if rowErr != nil {
			if !skipInvalid {
				return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, rowErr)
			}
			skipped = append(skipped, *rowErr)
			continue
		}
		records = append(records, record)
	}
	return records, skipped, nil
}

func parseCSVRow(fields []string, index map[string]int, line int) (csvRecord, *RowError) {
	get := func(col string) string {
		i := index[col]
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}
	fail := func(format string, args ...interface{}) (csvRecord, *RowError) {
		return csvRecord{}, &RowError{Line: line, Reason: fmt.Sprintf(format, args...)}
	}

	ts, err := timeparse.Parse(get("date"))
	if err != nil {
		return fail("date: %v", err)
	}
	zoneName := get("zone_name")
	if zoneName == "" {
		return fail("zone_name is empty")
	}
	indicatorType := get("indicator_type")
	if indicatorType == "" {
		return fail("indicator_type is empty")
	}
	value, err := strconv.ParseFloat(get("value"), 64)
	if err != nil {
		return fail("value %q is not a number", get("value"))
	}
	if !isFinite(value) {
		return fail("value %q is not a finite number", get("value"))
	}
	unit := get("unit")
	if unit == "" {
		return fail("unit is empty")
	}

	postalCode := get("postal_code")
	return csvRecord{
		Line:       line,
		Timestamp:  ts,
		ZoneName:   zoneName,
		PostalCode: &postalCode,
		Type:       indicatorType,
		Value:      value,
		Unit:       unit,
	}, nil
}
