package charts

import (
	"encoding/json"
	"fmt"
	"html/template"

	"marketdash/internal/models"
)

// EChartsCDN is the script the page must load once before any snippet runs.
const EChartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ThemeURL returns the script location of a named go-echarts theme
func ThemeURL(theme string) string {
	return fmt.Sprintf("https://go-echarts.github.io/go-echarts-assets/assets/themes/%s.js", theme)
}

// ChartSnippet represents an embeddable ECharts fragment.
// Div holds a single root <div id="..."></div>, Script the <script> block that
// initializes the chart in that div, HTML both wrapped in a titled container.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    template.HTML
	Script template.HTML
	HTML   template.HTML
}

// SnippetOptions controls the size and theme of generated snippets
type SnippetOptions struct {
	Height string
	Theme  string
}

// DefaultSnippetOptions returns the options used by the dashboard page
func DefaultSnippetOptions() SnippetOptions {
	return SnippetOptions{Height: "420px"}
}

// Snippet builds the ECharts snippet for a chart result
func Snippet(result models.ChartResult, so SnippetOptions) (ChartSnippet, error) {
	if result.ID == "" {
		return ChartSnippet{}, fmt.Errorf("chart result has no id")
	}
	if so.Height == "" {
		so.Height = DefaultSnippetOptions().Height
	}

	optJSON, err := json.Marshal(echartsOption(result))
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to marshal chart option: %w", err)
	}
	themeJSON, _ := json.Marshal(so.Theme)

	id := "chart-" + result.ID
	div := fmt.Sprintf(`<div id="%s" class="chart" style="width:100%%;height:%s;"></div>`,
		id, template.HTMLEscapeString(so.Height))
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el,%s||null);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`,
		id, string(themeJSON), string(optJSON))

	completeHTML := fmt.Sprintf(`<div class="chart-container">
	<h3>%s</h3>
	%s
</div>
%s`, template.HTMLEscapeString(result.Title), div, script)

	return ChartSnippet{
		ID:     result.ID,
		Title:  result.Title,
		Div:    template.HTML(div),
		Script: template.HTML(script),
		HTML:   template.HTML(completeHTML),
	}, nil
}

// Snippets builds snippets for every result, keeping their order
func Snippets(results []models.ChartResult, so SnippetOptions) ([]ChartSnippet, error) {
	snippets := make([]ChartSnippet, 0, len(results))
	for _, r := range results {
		s, err := Snippet(r, so)
		if err != nil {
			return nil, fmt.Errorf("failed to build snippet %s: %w", r.ID, err)
		}
		snippets = append(snippets, s)
	}
	return snippets, nil
}

// echartsOption converts a chart result into an ECharts option object
func echartsOption(result models.ChartResult) map[string]interface{} {
	xdata := make([]string, len(result.X))
	for i, d := range result.X {
		xdata[i] = d.String()
	}

	yAxis := map[string]interface{}{
		"type":         "value",
		"name":         result.YLabel,
		"nameLocation": "middle",
		"nameGap":      60,
		"scale":        true,
	}
	if result.LogY {
		yAxis["type"] = "log"
		yAxis["logBase"] = 10
		delete(yAxis, "scale")
	}

	var series []interface{}
	var legend []string
	for _, s := range result.Series {
		entry := map[string]interface{}{
			"name":       s.Name,
			"type":       string(result.Kind.Normalize()),
			"data":       s.Values,
			"showSymbol": false,
		}
		switch result.Kind.Normalize() {
		case models.ChartScatter:
			entry["symbolSize"] = 4
			delete(entry, "showSymbol")
		case models.ChartBar:
			entry["barCategoryGap"] = "0%"
			entry["large"] = true
			delete(entry, "showSymbol")
		default:
			entry["connectNulls"] = false
			entry["lineStyle"] = map[string]interface{}{"width": 1.5}
		}
		series = append(series, entry)
		legend = append(legend, s.Name)
	}

	option := map[string]interface{}{
		"title": map[string]interface{}{"text": result.Title, "left": "center"},
		"tooltip": map[string]interface{}{
			"trigger":     "axis",
			"axisPointer": map[string]interface{}{"type": "cross"},
		},
		"grid": map[string]interface{}{"left": "8%", "right": "4%", "bottom": "15%", "containLabel": true},
		"xAxis": map[string]interface{}{
			"type":         "category",
			"name":         result.XLabel,
			"nameLocation": "middle",
			"nameGap":      30,
			"data":         xdata,
		},
		"yAxis":    yAxis,
		"series":   series,
		"dataZoom": []interface{}{map[string]interface{}{"type": "inside"}},
	}
	if len(legend) > 1 {
		option["legend"] = map[string]interface{}{"data": legend, "bottom": 0}
	}
	return option
}
