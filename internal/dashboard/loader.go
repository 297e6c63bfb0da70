package dashboard

import (
	"context"
	"fmt"

	"marketdash/internal/config"
	"marketdash/internal/dataset"
	"marketdash/internal/fetchers"
	"marketdash/internal/logger"
	"marketdash/internal/mocks"
	"marketdash/internal/models"
)

// DatasetLoader loads the market table from a data URL
type DatasetLoader interface {
	Load(ctx context.Context, rawURL string) (*models.Dataset, error)
}

// LoadStore loads the dataset once, derives the selectable universe and
// publishes both. Exclusions and auxiliary chart columns must exist in the
// dataset. In mockup mode the bundled sample replaces DATA_URL.
func LoadStore(ctx context.Context, cfg *config.Config, profile *config.Profile, loader DatasetLoader) (*dataset.Store, error) {
	log := logger.Component("loader")

	var ds *models.Dataset
	var err error
	if cfg.MockupMode {
		log.Info("Mockup mode enabled - using bundled sample dataset", logger.Fields{"file": mocks.SampleFile})
		ds, err = mocks.NewMockService().LoadDataset()
	} else {
		if loader == nil {
			loader = fetchers.NewDataFetcher(cfg.HTTPTimeout)
		}
		ds, err = loader.Load(ctx, cfg.DataURL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	universe, err := dataset.DeriveUniverse(ds, profile.Exclusions)
	if err != nil {
		return nil, fmt.Errorf("failed to derive series universe: %w", err)
	}
	if err := dataset.RequireColumns(ds, profile.AuxColumns()...); err != nil {
		return nil, fmt.Errorf("auxiliary charts reference missing columns: %w", err)
	}

	store := dataset.NewStore()
	if err := store.Publish(ds, universe); err != nil {
		return nil, err
	}

	log.Info("Dataset published", logger.Fields{"rows": ds.Len(), "series": len(ds.Series), "selectable": len(universe)})
	return store, nil
}
