package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AuxChart describes one of the fixed auxiliary charts.
type AuxChart struct {
	Title         string   `yaml:"title"`
	Series        []string `yaml:"series"`
	HonorLogScale bool     `yaml:"honor_log_scale"`
}

// Profile is the presentation and column layout of the dashboard.
type Profile struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"` // markdown

	DefaultSeries   string `yaml:"default_series"`
	SentinelSeries  string `yaml:"sentinel_series"`
	AdvisoryMessage string `yaml:"advisory_message"`

	// Exclusions are columns hidden from the series picker.
	Exclusions []string   `yaml:"exclusions"`
	AuxCharts  []AuxChart `yaml:"aux_charts"`

	YearMarkStep int `yaml:"year_mark_step"`
}

// DefaultProfile reproduces the original stock market dashboard.
func DefaultProfile() *Profile {
	return &Profile{
		Title:  "Stock Market Dashboard",
		Author: "Grant Cates",
		Description: "Daily closing levels of the major equity indices and US treasury yields. " +
			"Pick a series, narrow the **year range**, and switch between line, scatter and bar views.",
		DefaultSeries:   "Dow Jones (^DJI)",
		SentinelSeries:  "S&P500 (^GSPC)",
		AdvisoryMessage: "Surprise! You chose the stock that you should buy like RIGHT NOW!",
		Exclusions: []string{
			"Dow Jones (^DJI)",
			"Nasdaq (^IXIC)",
			"S&P500 (^GSPC)",
			"NYSE Composite (^NYA)",
			"Russell 2000 (^RUT)",
			"DAX Index (^GDAXI)",
			"FTSE 100 (^FTSE)",
			"Hang Seng Index (^HSI)",
			"Treasury Yield 5 Years (^FVX)",
			"Treasury Bill 13 Week (^IRX)",
			"Treasury Yield 10 Years (^TNX)",
			"Treasury Yield 30 Years (^TYX)",
		},
		AuxCharts: []AuxChart{
			{Title: "Treasury Bill 13 Week (^IRX)", Series: []string{"Treasury Bill 13 Week (^IRX)"}, HonorLogScale: true},
			{Title: "Treasury Yield 5 Years (^FVX)", Series: []string{"Treasury Yield 5 Years (^FVX)"}, HonorLogScale: true},
			{
				Title:  "Combined Treasury Yield (10 Years and 30 Years)",
				Series: []string{"Treasury Yield 10 Years (^TNX)", "Treasury Yield 30 Years (^TYX)"},
				// the overlay has always ignored the log toggle
				HonorLogScale: false,
			},
		},
		YearMarkStep: 5,
	}
}

// LoadProfile reads a YAML profile from path. Fields missing from the file keep
// their DefaultProfile values; an empty path returns the defaults.
func LoadProfile(path string) (*Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the profile for settings the dashboard cannot render.
func (p *Profile) Validate() error {
	for i, aux := range p.AuxCharts {
		if len(aux.Series) == 0 {
			return fmt.Errorf("aux chart %d (%q) has no series", i+1, aux.Title)
		}
	}
	if p.YearMarkStep < 0 {
		return fmt.Errorf("year_mark_step must not be negative")
	}
	return nil
}

// AuxColumns returns every column referenced by the auxiliary charts.
func (p *Profile) AuxColumns() []string {
	var cols []string
	for _, aux := range p.AuxCharts {
		cols = append(cols, aux.Series...)
	}
	return cols
}
