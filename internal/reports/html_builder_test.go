package reports

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"marketdash/internal/charts"
	"marketdash/internal/config"
	"marketdash/internal/dashboard"
	"marketdash/internal/dataset"
	"marketdash/internal/mocks"
	"marketdash/internal/models"
)

func newTestController(t *testing.T) *dashboard.Controller {
	t.Helper()
	ds, err := mocks.NewMockService().LoadDataset()
	if err != nil {
		t.Fatalf("Failed to load mock dataset: %v", err)
	}
	profile := config.DefaultProfile()
	universe, err := dataset.DeriveUniverse(ds, profile.Exclusions)
	if err != nil {
		t.Fatalf("Failed to derive universe: %v", err)
	}
	store := dataset.NewStore()
	if err := store.Publish(ds, universe); err != nil {
		t.Fatalf("Failed to publish dataset: %v", err)
	}
	return dashboard.NewController(store, charts.NewBuilder(profile), profile)
}

func TestConvertMarkdownToHTML(t *testing.T) {
	builder := NewHTMLBuilder(nil, "")

	out, err := builder.ConvertMarkdownToHTML("Pick a **series**")
	if err != nil {
		t.Fatalf("ConvertMarkdownToHTML failed: %v", err)
	}
	if !strings.Contains(out, "<strong>series</strong>") {
		t.Errorf("Expected bold markup, got %s", out)
	}
}

func TestBuildDashboardHTML(t *testing.T) {
	c := newTestController(t)
	builder := NewHTMLBuilder(config.DefaultProfile(), "westeros")

	out := c.Dispatch(dashboard.State{Series: "Nikkei 225 (^N225)", MinYear: 2010, MaxYear: 2015, Kind: models.ChartBar})
	page, err := builder.BuildDashboardHTML(out, c.Options())
	if err != nil {
		t.Fatalf("BuildDashboardHTML failed: %v", err)
	}

	expected := []string{
		"<title>Stock Market Dashboard</title>",
		"By Grant Cates",
		"<strong>year range</strong>",
		`<option value="Nikkei 225 (^N225)" selected>`,
		`<option value="Euro Stoxx 50 (^STOXX50E)">`,
		`<option value="S&amp;P500 (^GSPC)">`,
		`name="from" value="2010"`,
		`name="to" value="2015"`,
		`value="bar" checked`,
		`id="chart-primary"`,
		`id="chart-aux-1"`,
		`id="chart-aux-2"`,
		`id="chart-aux-3"`,
		"echarts.min.js",
		"themes/westeros.js",
		"/charts/primary.png?from=2010",
		`class="summary"`,
	}
	for _, want := range expected {
		if !strings.Contains(page, want) {
			t.Errorf("Page does not contain %q", want)
		}
	}

	if strings.Contains(page, `class="advisory"`) {
		t.Error("Expected no advisory banner")
	}
	if strings.Contains(page, `name="log" value="on" checked`) {
		t.Error("Expected log scale unchecked")
	}
}

func TestBuildDashboardHTMLAdvisory(t *testing.T) {
	c := newTestController(t)
	builder := NewHTMLBuilder(config.DefaultProfile(), "")

	out := c.Dispatch(dashboard.State{Series: "S&P500 (^GSPC)", LogScale: true})
	page, err := builder.BuildDashboardHTML(out, c.Options())
	if err != nil {
		t.Fatalf("BuildDashboardHTML failed: %v", err)
	}

	if !strings.Contains(page, "Surprise! You chose the stock that you should buy like RIGHT NOW!") {
		t.Error("Expected advisory banner")
	}
	// the sentinel is offered outside the universe and selected when chosen
	if !strings.Contains(page, `<option value="S&amp;P500 (^GSPC)" selected>`) {
		t.Error("Expected requested series to be selected")
	}
	if !strings.Contains(page, `name="log" value="on" checked`) {
		t.Error("Expected log scale checked")
	}
	if strings.Contains(page, "themes/") {
		t.Error("Expected no theme script without a theme")
	}
}

func TestSeriesOptions(t *testing.T) {
	options := seriesOptions([]string{"A", "B"}, "B")
	if len(options) != 2 || !options[1].Selected || options[0].Selected {
		t.Errorf("Unexpected options %+v", options)
	}

	options = seriesOptions([]string{"A", "B"}, "Z")
	if len(options) != 3 || options[0].Value != "Z" || !options[0].Selected {
		t.Errorf("Unexpected options %+v", options)
	}

	options = seriesOptions([]string{"A", "B"}, "A", "S", "B", "")
	if len(options) != 3 || options[2].Value != "S" || options[2].Selected || !options[0].Selected {
		t.Errorf("Expected sentinel appended once and unselected, got %+v", options)
	}

	options = seriesOptions([]string{"A", "B"}, "S", "S")
	if len(options) != 3 || options[0].Value != "S" || !options[0].Selected {
		t.Errorf("Expected requested sentinel listed once and selected, got %+v", options)
	}
}

func TestNewSummaryView(t *testing.T) {
	ds := &models.Dataset{Series: []string{"X"}}
	if view := NewSummaryView(dataset.Summarize(ds, "X")); view.Count != 0 || view.Change != "" {
		t.Errorf("Expected empty view, got %+v", view)
	}

	tests := []struct {
		change, pct string
		expected    string
		trend       string
	}{
		{"12.5", "3.1", "+12.50 (+3.10%)", "up"},
		{"-4", "-0.25", "-4.00 (-0.25%)", "down"},
		{"0", "0", "0.00 (0.00%)", ""},
	}
	for _, tt := range tests {
		change := decimal.RequireFromString(tt.change)
		pct := decimal.RequireFromString(tt.pct)
		if got := FormatChange(change, pct); got != tt.expected {
			t.Errorf("FormatChange(%s, %s): expected %q, got %q", tt.change, tt.pct, tt.expected, got)
		}
		if got := trend(change); got != tt.trend {
			t.Errorf("trend(%s): expected %q, got %q", tt.change, tt.trend, got)
		}
	}
}
