package reports

import (
	"github.com/shopspring/decimal"

	"marketdash/internal/dataset"
)

// SummaryView is the display form of a series summary
type SummaryView struct {
	Count  int
	From   string
	To     string
	First  string
	Last   string
	Min    string
	Max    string
	Change string
	Trend  string // "up", "down" or ""
}

// NewSummaryView formats a summary for the page
func NewSummaryView(s dataset.Summary) SummaryView {
	if s.Count == 0 {
		return SummaryView{}
	}
	return SummaryView{
		Count:  s.Count,
		From:   s.From.String(),
		To:     s.To.String(),
		First:  s.First.StringFixed(2),
		Last:   s.Last.StringFixed(2),
		Min:    s.Min.StringFixed(2),
		Max:    s.Max.StringFixed(2),
		Change: FormatChange(s.Change, s.ChangePct),
		Trend:  trend(s.Change),
	}
}

// FormatChange renders an absolute and relative change as "+12.50 (+3.10%)"
func FormatChange(change, pct decimal.Decimal) string {
	return signed(change) + " (" + signed(pct) + "%)"
}

func signed(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if d.IsPositive() {
		return "+" + s
	}
	return s
}

func trend(change decimal.Decimal) string {
	switch {
	case change.IsPositive():
		return "up"
	case change.IsNegative():
		return "down"
	default:
		return ""
	}
}
