// Package dataset holds the loaded market table and the pure views derived from it.
package dataset

import "marketdash/internal/models"

// FilterByYearRange returns the rows whose year lies in [minYear, maxYear],
// in their original order. The result shares rows with ds but never the slice.
func FilterByYearRange(ds *models.Dataset, minYear, maxYear int) *models.Dataset {
	out := &models.Dataset{Series: ds.SeriesNames(), Rows: []models.Observation{}}
	for i := 0; i < ds.Len(); i++ {
		y := ds.Rows[i].Date.Year()
		if y >= minYear && y <= maxYear {
			out.Rows = append(out.Rows, ds.Rows[i])
		}
	}
	return out
}

// YearMarks returns slider marks from minYear to maxYear every step years.
func YearMarks(minYear, maxYear, step int) []int {
	if step <= 0 {
		step = 1
	}
	var marks []int
	for y := minYear; y <= maxYear; y += step {
		marks = append(marks, y)
	}
	return marks
}
