package mocks

import (
	"bytes"
	_ "embed"
	"fmt"

	"marketdash/internal/fetchers"
	"marketdash/internal/models"
)

// SampleFile is the name of the bundled sample export.
const SampleFile = "market_sample.csv"

//go:embed data/market_sample.csv
var sampleCSV []byte

// MockService serves the bundled sample dataset for mockup mode and tests
type MockService struct {
	parser *fetchers.CSVParser
}

// NewMockService creates a new mock service
func NewMockService() *MockService {
	return &MockService{parser: fetchers.NewCSVParser()}
}

// LoadDataset parses the bundled sample export. It has the same columns as
// the live spreadsheet, with monthly rows from 2000 through 2023.
func (m *MockService) LoadDataset() (*models.Dataset, error) {
	ds, err := m.parser.Parse(bytes.NewReader(sampleCSV))
	if err != nil {
		return nil, fmt.Errorf("failed to parse mock dataset: %w", err)
	}
	return ds, nil
}

// RawCSV returns a copy of the bundled sample export
func (m *MockService) RawCSV() []byte {
	return bytes.Clone(sampleCSV)
}
