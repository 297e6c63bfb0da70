package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"marketdash/internal/date"
)

func f(v float64) *float64 { return &v }

func TestParseChartKind(t *testing.T) {
	tests := []struct {
		in   string
		want ChartKind
	}{
		{"line", ChartLine},
		{"scatter", ChartScatter},
		{"bar", ChartBar},
		{" BAR ", ChartBar},
		{"", ChartLine},
		{"unrecognized-value", ChartLine},
		{"pie", ChartLine},
	}
	for _, tt := range tests {
		if got := ParseChartKind(tt.in); got != tt.want {
			t.Errorf("ParseChartKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDatasetHelpers(t *testing.T) {
	ds := &Dataset{
		Series: []string{"A", "B"},
		Rows: []Observation{
			{Date: date.New(2003, time.May, 1), Values: map[string]*float64{"A": f(1), "B": nil}},
			{Date: date.New(2001, time.May, 1), Values: map[string]*float64{"A": f(2), "B": f(3)}},
		},
	}
	ds.SortByDate()
	if ds.Rows[0].Date.Year() != 2001 {
		t.Fatalf("SortByDate did not sort rows: %v", ds.Dates())
	}
	minY, maxY, ok := ds.YearBounds()
	if !ok || minY != 2001 || maxY != 2003 {
		t.Errorf("YearBounds = %d, %d, %v", minY, maxY, ok)
	}
	col := ds.Column("B")
	if *col[0] != 3 || col[1] != nil {
		t.Errorf("Column(B) = %v", col)
	}
	if !ds.HasSeries("A") || ds.HasSeries("Date") {
		t.Error("HasSeries mismatch")
	}

	var empty *Dataset
	if empty.Len() != 0 {
		t.Error("nil dataset should have zero length")
	}
	if _, _, ok := empty.YearBounds(); ok {
		t.Error("nil dataset should have no year bounds")
	}
}

func TestErrorsAs(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("startup: %w", &DataLoadError{URL: "http://x", Err: cause})

	var loadErr *DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatal("expected DataLoadError")
	}
	if !errors.Is(err, cause) {
		t.Error("DataLoadError should unwrap to its cause")
	}

	fmtErr := &DataFormatError{Reason: "no Date column"}
	if fmtErr.Error() != "invalid dataset format: no Date column" {
		t.Errorf("unexpected message %q", fmtErr.Error())
	}
	colErr := &UnknownColumnError{Columns: []string{"X", "Y"}}
	if colErr.Error() != "unknown dataset columns: X, Y" {
		t.Errorf("unexpected message %q", colErr.Error())
	}
}
