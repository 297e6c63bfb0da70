package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"slices"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"marketdash/internal/charts"
	"marketdash/internal/config"
	"marketdash/internal/dashboard"
	"marketdash/internal/logger"
	"marketdash/internal/models"
)

// HTMLBuilder renders the dashboard page with goldmark and html/template
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown
	profile        *config.Profile
	snippetOpts    charts.SnippetOptions
	log            *logger.Logger

	once    sync.Once
	tmpl    *template.Template
	css     template.CSS
	intro   template.HTML
	loadErr error
}

// NewHTMLBuilder creates an HTML builder for the profile and chart theme
func NewHTMLBuilder(profile *config.Profile, theme string) *HTMLBuilder {
	if profile == nil {
		profile = config.DefaultProfile()
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	so := charts.DefaultSnippetOptions()
	so.Theme = theme

	return &HTMLBuilder{
		templateLoader: NewTemplateLoader(),
		goldmark:       md,
		profile:        profile,
		snippetOpts:    so,
		log:            logger.Component("reports"),
	}
}

// PageData is the data handed to the dashboard template
type PageData struct {
	Title       string
	Author      string
	Intro       template.HTML
	CSS         template.CSS
	EChartsURL  string
	ThemeURL    string
	Version     string
	GeneratedAt string

	State         dashboard.State
	Options       dashboard.Options
	Query         template.URL
	SeriesOptions []SelectOption
	KindOptions   []KindOption

	Advisory  string
	Primary   charts.ChartSnippet
	Auxiliary []charts.ChartSnippet
	Summary   SummaryView
}

// SelectOption is one entry of the series dropdown
type SelectOption struct {
	Value    string
	Selected bool
}

// KindOption is one chart type radio button
type KindOption struct {
	Value   string
	Label   string
	Checked bool
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// load parses the template, stylesheet and profile intro once
func (h *HTMLBuilder) load() error {
	h.once.Do(func() {
		htmlTemplate, err := h.templateLoader.LoadHTMLTemplate()
		if err != nil {
			h.loadErr = err
			return
		}
		h.tmpl, err = template.New("dashboard").Parse(htmlTemplate)
		if err != nil {
			h.loadErr = fmt.Errorf("failed to parse template: %w", err)
			return
		}

		css, err := h.templateLoader.LoadCSSStyles()
		if err != nil {
			h.loadErr = err
			return
		}
		h.css = template.CSS(css)

		intro, err := h.ConvertMarkdownToHTML(h.profile.Description)
		if err != nil {
			h.loadErr = err
			return
		}
		h.intro = template.HTML(intro)
	})
	return h.loadErr
}

// BuildDashboardHTML renders the full page for one dispatch result
func (h *HTMLBuilder) BuildDashboardHTML(out dashboard.Outputs, options dashboard.Options) (string, error) {
	if err := h.load(); err != nil {
		return "", err
	}

	primary, err := charts.Snippet(out.Primary, h.snippetOpts)
	if err != nil {
		return "", fmt.Errorf("failed to build primary chart: %w", err)
	}
	aux, err := charts.Snippets(out.Auxiliary, h.snippetOpts)
	if err != nil {
		return "", fmt.Errorf("failed to build auxiliary charts: %w", err)
	}

	data := PageData{
		Title:         h.profile.Title,
		Author:        h.profile.Author,
		Intro:         h.intro,
		CSS:           h.css,
		EChartsURL:    charts.EChartsCDN,
		Version:       config.GetVersion(),
		GeneratedAt:   time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		State:         out.State,
		Options:       options,
		Query:         template.URL(out.State.Query().Encode()),
		SeriesOptions: seriesOptions(options.Universe, out.State.Series, h.profile.SentinelSeries),
		KindOptions:   kindOptions(out.State.Kind),
		Advisory:      out.Advisory,
		Primary:       primary,
		Auxiliary:     aux,
		Summary:       NewSummaryView(out.Summary),
	}
	if h.snippetOpts.Theme != "" {
		data.ThemeURL = charts.ThemeURL(h.snippetOpts.Theme)
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	h.log.Debug("Dashboard page built", logger.Fields{"bytes": buf.Len(), "series": out.State.Series})
	return buf.String(), nil
}

// seriesOptions lists the universe, plus the current series when it was
// requested directly and is not part of it, plus the always-offered extras
// such as the advisory sentinel
func seriesOptions(universe []string, current string, extras ...string) []SelectOption {
	options := make([]SelectOption, 0, len(universe)+len(extras)+1)
	listed := make(map[string]bool, cap(options))
	add := func(name string) {
		if name == "" || listed[name] {
			return
		}
		listed[name] = true
		options = append(options, SelectOption{Value: name, Selected: name == current})
	}

	if !slices.Contains(universe, current) {
		add(current)
	}
	for _, name := range universe {
		add(name)
	}
	for _, name := range extras {
		add(name)
	}
	return options
}

func kindOptions(current models.ChartKind) []KindOption {
	options := make([]KindOption, len(models.ChartKinds))
	for i, k := range models.ChartKinds {
		options[i] = KindOption{Value: string(k), Label: k.Label(), Checked: k == current.Normalize()}
	}
	return options
}
