package dataset

import "marketdash/internal/models"

// DeriveUniverse returns the series names of ds minus exclusions, in column order.
// Every exclusion must name an existing column.
func DeriveUniverse(ds *models.Dataset, exclusions []string) ([]string, error) {
	excluded := make(map[string]bool, len(exclusions))
	var missing []string
	for _, name := range exclusions {
		if !ds.HasSeries(name) {
			missing = append(missing, name)
			continue
		}
		excluded[name] = true
	}
	if len(missing) > 0 {
		return nil, &models.UnknownColumnError{Columns: missing}
	}

	universe := make([]string, 0, len(ds.Series))
	for _, name := range ds.Series {
		if !excluded[name] {
			universe = append(universe, name)
		}
	}
	return universe, nil
}

// RequireColumns checks that every name is a column of ds.
func RequireColumns(ds *models.Dataset, names ...string) error {
	var missing []string
	for _, name := range names {
		if !ds.HasSeries(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &models.UnknownColumnError{Columns: missing}
	}
	return nil
}
