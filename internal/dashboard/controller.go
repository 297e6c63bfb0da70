package dashboard

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"marketdash/internal/charts"
	"marketdash/internal/config"
	"marketdash/internal/dataset"
	"marketdash/internal/logger"
	"marketdash/internal/models"
)

// State is the full widget state of one interaction
type State struct {
	Series   string           `json:"series"`
	MinYear  int              `json:"min_year"`
	MaxYear  int              `json:"max_year"`
	Kind     models.ChartKind `json:"kind"`
	LogScale bool             `json:"log_scale"`
}

// Outputs is everything the page shows for one State
type Outputs struct {
	State     State                `json:"state"`
	Primary   models.ChartResult   `json:"primary"`
	Advisory  string               `json:"advisory"`
	Auxiliary []models.ChartResult `json:"auxiliary"`
	Summary   dataset.Summary      `json:"summary"`
}

// Options describes the widget choices available for the loaded dataset
type Options struct {
	Universe   []string           `json:"universe"`
	MinYear    int                `json:"min_year"`
	MaxYear    int                `json:"max_year"`
	YearMarks  []int              `json:"year_marks"`
	ChartKinds []models.ChartKind `json:"chart_kinds"`
	Defaults   State              `json:"defaults"`
}

// Controller recomputes every dashboard output from the widget state
type Controller struct {
	store   *dataset.Store
	builder *charts.Builder
	profile *config.Profile
	log     *logger.Logger
}

// NewController creates a controller over a published dataset store
func NewController(store *dataset.Store, builder *charts.Builder, profile *config.Profile) *Controller {
	if profile == nil {
		profile = config.DefaultProfile()
	}
	if builder == nil {
		builder = charts.NewBuilder(profile)
	}
	return &Controller{
		store:   store,
		builder: builder,
		profile: profile,
		log:     logger.Component("dashboard"),
	}
}

// Profile returns the dashboard profile
func (c *Controller) Profile() *config.Profile {
	return c.profile
}

// Dispatch filters the dataset to the selected years and rebuilds the
// primary chart, the advisory, the auxiliary charts and the summary.
// Nothing is cached between calls.
func (c *Controller) Dispatch(state State) Outputs {
	start := time.Now()
	state = c.Resolve(state)
	full := c.store.Dataset()

	filtered := dataset.FilterByYearRange(full, state.MinYear, state.MaxYear)

	out := Outputs{
		State:     state,
		Primary:   c.builder.Build(filtered, state.Series, state.Kind, state.LogScale),
		Advisory:  c.builder.Advisory(state.Series),
		Auxiliary: c.builder.BuildAuxiliary(full, state.LogScale),
		Summary:   dataset.Summarize(filtered, state.Series),
	}

	c.log.Debug("Dispatched", logger.Fields{
		"series":      state.Series,
		"min_year":    state.MinYear,
		"max_year":    state.MaxYear,
		"kind":        string(state.Kind),
		"log_scale":   state.LogScale,
		"rows":        filtered.Len(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return out
}

// Defaults returns the state shown before any interaction
func (c *Controller) Defaults() State {
	return c.Resolve(State{})
}

// Resolve fills unset fields with defaults, orders the years and clamps them
// to the dataset when the range overlaps it. A range entirely outside the
// dataset is kept as requested and filters to nothing. A series outside the
// universe is kept so that every loaded column can still be charted.
func (c *Controller) Resolve(state State) State {
	if strings.TrimSpace(state.Series) == "" {
		state.Series = c.defaultSeries()
	}
	state.Kind = state.Kind.Normalize()

	minYear, maxYear, ok := c.store.Dataset().YearBounds()
	if !ok {
		return state
	}
	switch {
	case state.MinYear == 0 && state.MaxYear == 0:
		state.MinYear, state.MaxYear = minYear, maxYear
	case state.MinYear == 0:
		state.MinYear = min(minYear, state.MaxYear)
	case state.MaxYear == 0:
		state.MaxYear = max(maxYear, state.MinYear)
	}
	if state.MinYear > state.MaxYear {
		state.MinYear, state.MaxYear = state.MaxYear, state.MinYear
	}
	if state.MaxYear < minYear || state.MinYear > maxYear {
		return state
	}
	state.MinYear = clamp(state.MinYear, minYear, maxYear)
	state.MaxYear = clamp(state.MaxYear, minYear, maxYear)
	return state
}

// Options returns the selectable universe and year bounds
func (c *Controller) Options() Options {
	minYear, maxYear, _ := c.store.Dataset().YearBounds()
	return Options{
		Universe:   c.store.Universe(),
		MinYear:    minYear,
		MaxYear:    maxYear,
		YearMarks:  dataset.YearMarks(minYear, maxYear, c.profile.YearMarkStep),
		ChartKinds: models.ChartKinds,
		Defaults:   c.Defaults(),
	}
}

func (c *Controller) defaultSeries() string {
	ds := c.store.Dataset()
	if c.profile.DefaultSeries != "" && ds.HasSeries(c.profile.DefaultSeries) {
		return c.profile.DefaultSeries
	}
	if universe := c.store.Universe(); len(universe) > 0 {
		return universe[0]
	}
	if names := ds.SeriesNames(); len(names) > 0 {
		return names[0]
	}
	return c.profile.DefaultSeries
}

// ParseState reads widget values from a query string. Missing or malformed
// values are left unset for Resolve to fill.
func ParseState(values url.Values) State {
	return State{
		Series:   strings.TrimSpace(values.Get("series")),
		MinYear:  parseYear(values.Get("from")),
		MaxYear:  parseYear(values.Get("to")),
		Kind:     models.ParseChartKind(values.Get("kind")),
		LogScale: parseBool(values.Get("log")),
	}
}

// Query encodes the state as the query string ParseState reads
func (s State) Query() url.Values {
	values := url.Values{}
	values.Set("series", s.Series)
	if s.MinYear != 0 {
		values.Set("from", strconv.Itoa(s.MinYear))
	}
	if s.MaxYear != 0 {
		values.Set("to", strconv.Itoa(s.MaxYear))
	}
	values.Set("kind", string(s.Kind.Normalize()))
	if s.LogScale {
		values.Set("log", "on")
	}
	return values
}

func parseYear(s string) int {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < 0 {
		return 0
	}
	return y
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "on", "true", "yes", "log":
		return true
	default:
		return false
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
