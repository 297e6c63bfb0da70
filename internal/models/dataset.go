package models

import (
	"sort"

	"marketdash/internal/date"
)

// DateColumn is the name of the CSV column holding the observation date.
const DateColumn = "Date"

// Observation is one trading day: a date and one optional value per series.
// A nil value means the series has no value on that day.
type Observation struct {
	Date   date.Date           `json:"date"`
	Values map[string]*float64 `json:"values"`
}

// Value returns the value of series on this day, or nil when absent.
func (o Observation) Value(series string) *float64 {
	return o.Values[series]
}

// Dataset is an ordered table of observations sharing one fixed series set.
// It is never mutated once published; filters return new datasets.
type Dataset struct {
	Series []string      `json:"series"`
	Rows   []Observation `json:"rows"`
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.Rows)
}

// SeriesNames returns a copy of the series names in column order.
func (ds *Dataset) SeriesNames() []string {
	if ds == nil {
		return nil
	}
	return append([]string(nil), ds.Series...)
}

// HasSeries reports whether name is one of the dataset columns.
func (ds *Dataset) HasSeries(name string) bool {
	if ds == nil {
		return false
	}
	for _, s := range ds.Series {
		if s == name {
			return true
		}
	}
	return false
}

// Dates returns the row dates in order.
func (ds *Dataset) Dates() []date.Date {
	dates := make([]date.Date, ds.Len())
	for i := range dates {
		dates[i] = ds.Rows[i].Date
	}
	return dates
}

// Column returns the values of one series, aligned with Dates.
func (ds *Dataset) Column(name string) []*float64 {
	values := make([]*float64, ds.Len())
	for i := range values {
		values[i] = ds.Rows[i].Values[name]
	}
	return values
}

// YearBounds returns the first and last calendar year in the dataset.
func (ds *Dataset) YearBounds() (minYear, maxYear int, ok bool) {
	if ds.Len() == 0 {
		return 0, 0, false
	}
	minYear, maxYear = ds.Rows[0].Date.Year(), ds.Rows[0].Date.Year()
	for _, row := range ds.Rows[1:] {
		y := row.Date.Year()
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	return minYear, maxYear, true
}

// SortByDate orders rows ascending by date, keeping the relative order of equal dates.
func (ds *Dataset) SortByDate() {
	sort.SliceStable(ds.Rows, func(i, j int) bool {
		return ds.Rows[i].Date.Before(ds.Rows[j].Date)
	})
}
