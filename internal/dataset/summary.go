package dataset

import (
	"github.com/shopspring/decimal"

	"marketdash/internal/date"
	"marketdash/internal/models"
)

// Summary describes one series over a filtered range.
type Summary struct {
	Series    string          `json:"series"`
	Count     int             `json:"count"`
	From      date.Date       `json:"from"`
	To        date.Date       `json:"to"`
	First     decimal.Decimal `json:"first"`
	Last      decimal.Decimal `json:"last"`
	Min       decimal.Decimal `json:"min"`
	Max       decimal.Decimal `json:"max"`
	Change    decimal.Decimal `json:"change"`
	ChangePct decimal.Decimal `json:"change_pct"`
}

const summaryPlaces = 2

// Summarize computes the summary of series over ds. Rows without a value are skipped;
// a series with no values yields a zero summary with Count 0.
func Summarize(ds *models.Dataset, series string) Summary {
	s := Summary{Series: series}
	for i := 0; i < ds.Len(); i++ {
		v := ds.Rows[i].Values[series]
		if v == nil {
			continue
		}
		d := decimal.NewFromFloat(*v)
		if s.Count == 0 {
			s.From, s.First, s.Min, s.Max = ds.Rows[i].Date, d, d, d
		}
		s.Count++
		s.To, s.Last = ds.Rows[i].Date, d
		if d.LessThan(s.Min) {
			s.Min = d
		}
		if d.GreaterThan(s.Max) {
			s.Max = d
		}
	}
	if s.Count == 0 {
		return s
	}
	s.Change = s.Last.Sub(s.First).Round(summaryPlaces)
	if !s.First.IsZero() {
		s.ChangePct = s.Last.Sub(s.First).Div(s.First.Abs()).Mul(decimal.NewFromInt(100)).Round(summaryPlaces)
	}
	s.First = s.First.Round(summaryPlaces)
	s.Last = s.Last.Round(summaryPlaces)
	s.Min = s.Min.Round(summaryPlaces)
	s.Max = s.Max.Round(summaryPlaces)
	return s
}
