package models

import (
	"strings"

	"marketdash/internal/date"
)

// ChartKind is the rendering style of a chart.
type ChartKind string

const (
	ChartLine    ChartKind = "line"
	ChartScatter ChartKind = "scatter"
	ChartBar     ChartKind = "bar"
)

// ChartKinds lists the selectable kinds in display order.
var ChartKinds = []ChartKind{ChartLine, ChartScatter, ChartBar}

// ParseChartKind maps a widget value to a kind. Unknown values become ChartLine.
func ParseChartKind(s string) ChartKind {
	return ChartKind(strings.ToLower(strings.TrimSpace(s))).Normalize()
}

// Normalize returns k when it is a known kind and ChartLine otherwise.
func (k ChartKind) Normalize() ChartKind {
	switch k {
	case ChartLine, ChartScatter, ChartBar:
		return k
	default:
		return ChartLine
	}
}

// Label returns the widget label for the kind.
func (k ChartKind) Label() string {
	switch k.Normalize() {
	case ChartScatter:
		return "Scatter Plot"
	case ChartBar:
		return "Bar Chart"
	default:
		return "Line Chart"
	}
}

// ChartRequest carries everything needed to build the primary chart.
type ChartRequest struct {
	Series   string
	Rows     *Dataset
	Kind     ChartKind
	LogScale bool
}

// SeriesData is one plotted series. Values[i] is nil when point i cannot be rendered.
type SeriesData struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

// ChartResult is a renderer-independent chart descriptor.
type ChartResult struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Kind   ChartKind    `json:"kind"`
	LogY   bool         `json:"log_y"`
	XLabel string       `json:"x_label"`
	YLabel string       `json:"y_label"`
	X      []date.Date  `json:"x"`
	Series []SeriesData `json:"series"`
}

// Points counts the renderable points across all series.
func (c ChartResult) Points() int {
	n := 0
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v != nil {
				n++
			}
		}
	}
	return n
}
