package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"marketdash/internal/models"
)

// DefaultTheme is used when no chart theme is configured
const DefaultTheme = types.ThemeWesteros

// renderable is what both single charts and pages need from a go-echarts chart
type renderable interface {
	components.Charter
	Render(w io.Writer) error
}

// NewEChart converts a chart result into a go-echarts chart of the matching kind
func NewEChart(result models.ChartResult, theme string) renderable {
	if theme == "" {
		theme = DefaultTheme
	}

	xdata := make([]string, len(result.X))
	for i, d := range result.X {
		xdata[i] = d.String()
	}

	yAxis := opts.YAxis{
		Name:         result.YLabel,
		NameLocation: "middle",
		NameGap:      60,
		Scale:        opts.Bool(true),
	}
	if result.LogY {
		yAxis.Type = "log"
		yAxis.Scale = nil
	}

	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     theme,
			Width:     "1100px",
			Height:    "480px",
			PageTitle: result.Title,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: result.Title,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:         result.XLabel,
			NameLocation: "middle",
			NameGap:      30,
		}),
		charts.WithYAxisOpts(yAxis),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(len(result.Series) > 1),
			Bottom: "0",
		}),
	}

	switch result.Kind.Normalize() {
	case models.ChartScatter:
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(global...)
		scatter.SetXAxis(xdata)
		for _, s := range result.Series {
			data := make([]opts.ScatterData, len(s.Values))
			for i, v := range s.Values {
				data[i] = opts.ScatterData{Value: pointValue(v), SymbolSize: 4}
			}
			scatter.AddSeries(s.Name, data)
		}
		return scatter

	case models.ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(xdata)
		for _, s := range result.Series {
			data := make([]opts.BarData, len(s.Values))
			for i, v := range s.Values {
				data[i] = opts.BarData{Value: pointValue(v)}
			}
			bar.AddSeries(s.Name, data)
		}
		return bar

	default:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(xdata)
		for _, s := range result.Series {
			data := make([]opts.LineData, len(s.Values))
			for i, v := range s.Values {
				data[i] = opts.LineData{Value: pointValue(v)}
			}
			line.AddSeries(s.Name, data)
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
		return line
	}
}

// RenderChartPage writes a standalone HTML page for one chart
func RenderChartPage(w io.Writer, result models.ChartResult, theme string) error {
	if err := NewEChart(result, theme).Render(w); err != nil {
		return fmt.Errorf("failed to render chart %s: %w", result.ID, err)
	}
	return nil
}

// RenderPage writes every chart onto one go-echarts page
func RenderPage(w io.Writer, title, theme string, results ...models.ChartResult) error {
	page := components.NewPage()
	page.PageTitle = title
	for _, r := range results {
		page.AddCharts(NewEChart(r, theme))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// pointValue unwraps a point; nil leaves a gap in the series
func pointValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
