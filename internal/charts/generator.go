package charts

import (
	"fmt"
	"math"

	"marketdash/internal/config"
	"marketdash/internal/logger"
	"marketdash/internal/models"
)

// Chart ids used by the page, the API and the standalone chart routes.
const (
	PrimaryID = "primary"
	auxPrefix = "aux-"
)

// AuxID returns the id of the auxiliary chart at index i (zero based)
func AuxID(i int) string {
	return fmt.Sprintf("%s%d", auxPrefix, i+1)
}

// Builder turns dataset slices into renderer-independent chart descriptors
type Builder struct {
	profile *config.Profile
	log     *logger.Logger
}

// NewBuilder creates a chart builder for the given dashboard profile
func NewBuilder(profile *config.Profile) *Builder {
	if profile == nil {
		profile = config.DefaultProfile()
	}
	return &Builder{
		profile: profile,
		log:     logger.Component("charts"),
	}
}

// Build creates the primary chart of one series over the given rows. Unknown
// kinds render as line charts. Under log scale non-positive values are dropped.
func (b *Builder) Build(rows *models.Dataset, series string, kind models.ChartKind, logScale bool) models.ChartResult {
	return b.BuildRequest(models.ChartRequest{Series: series, Rows: rows, Kind: kind, LogScale: logScale})
}

// BuildRequest is Build taking a ChartRequest
func (b *Builder) BuildRequest(req models.ChartRequest) models.ChartResult {
	if req.Rows.Len() > 0 && !req.Rows.HasSeries(req.Series) {
		b.log.Warn("Unknown series requested", logger.Fields{"series": req.Series})
	}

	return models.ChartResult{
		ID:     PrimaryID,
		Title:  fmt.Sprintf("%s over Time", req.Series),
		Kind:   req.Kind.Normalize(),
		LogY:   req.LogScale,
		XLabel: models.DateColumn,
		YLabel: req.Series,
		X:      req.Rows.Dates(),
		Series: []models.SeriesData{
			{Name: req.Series, Values: plotValues(req.Rows.Column(req.Series), req.LogScale)},
		},
	}
}

// BuildAuxiliary creates the fixed auxiliary charts from the unfiltered
// dataset. Charts whose profile entry does not honor the log toggle are
// always drawn on a linear axis.
func (b *Builder) BuildAuxiliary(full *models.Dataset, logScale bool) []models.ChartResult {
	dates := full.Dates()
	results := make([]models.ChartResult, 0, len(b.profile.AuxCharts))

	for i, aux := range b.profile.AuxCharts {
		logY := logScale && aux.HonorLogScale

		yLabel := "Value"
		if len(aux.Series) == 1 {
			yLabel = aux.Series[0]
		}

		result := models.ChartResult{
			ID:     AuxID(i),
			Title:  aux.Title,
			Kind:   models.ChartLine,
			LogY:   logY,
			XLabel: models.DateColumn,
			YLabel: yLabel,
			X:      dates,
		}
		for _, name := range aux.Series {
			result.Series = append(result.Series, models.SeriesData{
				Name:   name,
				Values: plotValues(full.Column(name), logY),
			})
		}
		results = append(results, result)
	}

	return results
}

// Advisory returns the banner message for series, or "" when there is none
func (b *Builder) Advisory(series string) string {
	if b.profile.SentinelSeries != "" && series == b.profile.SentinelSeries {
		return b.profile.AdvisoryMessage
	}
	return ""
}

// plotValues copies a column, dropping points a log axis cannot show
func plotValues(column []*float64, logScale bool) []*float64 {
	values := make([]*float64, len(column))
	for i, v := range column {
		if v == nil || math.IsNaN(*v) {
			continue
		}
		if logScale && *v <= 0 {
			continue
		}
		val := *v
		values[i] = &val
	}
	return values
}
