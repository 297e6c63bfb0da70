package mocks

import (
	"testing"

	"marketdash/internal/config"
	"marketdash/internal/dataset"
)

func TestLoadDataset(t *testing.T) {
	ds, err := NewMockService().LoadDataset()
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}

	minYear, maxYear, ok := ds.YearBounds()
	if !ok || minYear != 2000 || maxYear != 2023 {
		t.Errorf("Expected years 2000-2023, got %d-%d (ok=%v)", minYear, maxYear, ok)
	}

	if ds.Len() != 24*12 {
		t.Errorf("Expected %d monthly rows, got %d", 24*12, ds.Len())
	}
}

func TestSampleMatchesDefaultProfile(t *testing.T) {
	ds, err := NewMockService().LoadDataset()
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}

	profile := config.DefaultProfile()
	universe, err := dataset.DeriveUniverse(ds, profile.Exclusions)
	if err != nil {
		t.Fatalf("Default exclusions do not match the sample: %v", err)
	}
	if len(universe) == 0 {
		t.Error("Expected selectable series after exclusions")
	}

	if err := dataset.RequireColumns(ds, profile.AuxColumns()...); err != nil {
		t.Errorf("Aux chart columns missing from the sample: %v", err)
	}
	if !ds.HasSeries(profile.SentinelSeries) || !ds.HasSeries(profile.DefaultSeries) {
		t.Error("Sample is missing the default or sentinel series")
	}
}

func TestSampleHasNonPositiveYields(t *testing.T) {
	ds, err := NewMockService().LoadDataset()
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}

	found := false
	for _, v := range ds.Column("Treasury Bill 13 Week (^IRX)") {
		if v != nil && *v <= 0 {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected at least one non-positive 13 week bill yield for log scale coverage")
	}
}

func TestRawCSVIsCopy(t *testing.T) {
	m := NewMockService()
	raw := m.RawCSV()
	raw[0] = 'X'
	if m.RawCSV()[0] != 'D' {
		t.Error("RawCSV must not expose the embedded bytes")
	}
}
