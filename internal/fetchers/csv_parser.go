package fetchers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"marketdash/internal/date"
	"marketdash/internal/models"
)

// CSVParser converts a market spreadsheet export into a Dataset
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// ErrEmptyCSV is returned when the input has no header row.
var ErrEmptyCSV = errors.New("CSV has no header row")

// Parse reads the header, locates the Date column and coerces every other
// column to optional floats. Rows with a blank date are dropped; a date that
// does not parse fails the whole load.
func (p *CSVParser) Parse(r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	names := headerNames(header)
	dateIdx := -1
	for i, name := range names {
		if strings.EqualFold(name, models.DateColumn) {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return nil, &models.DataFormatError{Reason: fmt.Sprintf("no %q column in header %v", models.DateColumn, names)}
	}

	ds := &models.Dataset{}
	for i, name := range names {
		if i != dateIdx {
			ds.Series = append(ds.Series, name)
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if dateIdx >= len(record) || strings.TrimSpace(record[dateIdx]) == "" {
			continue
		}
		on, err := date.Parse(record[dateIdx])
		if err != nil {
			return nil, &models.DataFormatError{Reason: err.Error(), Line: line}
		}

		obs := models.Observation{Date: on, Values: make(map[string]*float64, len(ds.Series))}
		for i, name := range names {
			if i == dateIdx {
				continue
			}
			var cell string
			if i < len(record) {
				cell = record[i]
			}
			obs.Values[name] = parseValue(cell)
		}
		ds.Rows = append(ds.Rows, obs)
	}

	ds.SortByDate()
	return ds, nil
}

// headerNames trims names, strips a UTF-8 BOM and makes blank or repeated
// names unique ("Unnamed: 3", "Close.1").
func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

// parseValue returns nil for blank, non-numeric or non-finite cells
func parseValue(cell string) *float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
