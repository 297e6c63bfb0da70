package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"marketdash/internal/date"
	"marketdash/internal/models"
)

// ErrTooFewPoints is returned when a chart has fewer than two drawable points
var ErrTooFewPoints = errors.New("chart needs at least two points to render")

var seriesColors = []drawing.Color{
	drawing.ColorFromHex("516b91"),
	drawing.ColorFromHex("c23531"),
	drawing.ColorFromHex("93b7e3"),
	drawing.ColorFromHex("a5e7f0"),
}

// RenderPNG draws a static image of the chart. Bar charts are drawn as a
// filled area and log charts plot log10 of each value with decade labels.
func RenderPNG(w io.Writer, result models.ChartResult) error {
	if result.Points() < 2 {
		return ErrTooFewPoints
	}

	var series []chart.Series
	for i, s := range result.Series {
		xs, ys := pngPoints(result.X, s.Values, result.LogY)
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.TimeSeries{
			Name:    s.Name,
			Style:   pngStyle(result.Kind, seriesColors[i%len(seriesColors)]),
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title: result.Title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Height: 400,
		Width:  900,
		XAxis: chart.XAxis{
			Name: result.XLabel,
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("2006-01")
				}
				if f, ok := v.(float64); ok {
					return time.Unix(0, int64(f)).UTC().Format("2006-01")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: result.YLabel,
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: yFormatter(result.LogY),
		},
		Series: series,
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart %s: %w", result.ID, err)
	}
	return nil
}

// pngPoints drops missing values and applies the log transform
func pngPoints(x []date.Date, values []*float64, logY bool) ([]time.Time, []float64) {
	var xs []time.Time
	var ys []float64
	for i, v := range values {
		if v == nil || i >= len(x) {
			continue
		}
		y := *v
		if logY {
			if y <= 0 {
				continue
			}
			y = math.Log10(y)
		}
		xs = append(xs, x[i].Time())
		ys = append(ys, y)
	}
	return xs, ys
}

func pngStyle(kind models.ChartKind, color drawing.Color) chart.Style {
	switch kind.Normalize() {
	case models.ChartScatter:
		return chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    2,
			DotColor:    color,
		}
	case models.ChartBar:
		return chart.Style{
			StrokeColor: color,
			StrokeWidth: 1,
			FillColor:   color.WithAlpha(96),
		}
	default:
		return chart.Style{
			StrokeColor: color,
			StrokeWidth: 1.5,
		}
	}
}

func yFormatter(logY bool) chart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		if logY {
			f = math.Pow(10, f)
		}
		return strconv.FormatFloat(f, 'g', 4, 64)
	}
}
