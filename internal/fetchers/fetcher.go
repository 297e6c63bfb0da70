package fetchers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"marketdash/internal/logger"
	"marketdash/internal/models"
	"marketdash/internal/storage"
)

// ErrObjectNotFound is returned when a file or bucket location names nothing
var ErrObjectNotFound = errors.New("object not found")

// maxSuggestions caps the sibling CSV names listed with ErrObjectNotFound
const maxSuggestions = 5

// StorageOpener creates the storage client for a non-HTTP location
type StorageOpener func(ctx context.Context, loc storage.Location) (storage.StorageClient, error)

// DataFetcher loads the market dataset from HTTP, GCS or the local filesystem
type DataFetcher struct {
	client      *resty.Client
	parser      *CSVParser
	openStorage StorageOpener
	log         *logger.Logger
}

// NewDataFetcher creates a new data fetcher. The dataset is fetched once per
// session, so the HTTP client never retries.
func NewDataFetcher(timeout time.Duration) *DataFetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetHeader("User-Agent", "marketdash")

	return &DataFetcher{
		client:      client,
		parser:      NewCSVParser(),
		openStorage: storage.NewStorageClient,
		log:         logger.Component("fetcher"),
	}
}

// Load fetches the CSV at rawURL and parses it into a date-sorted dataset.
// Transport and tabular failures are *models.DataLoadError; a missing or
// broken date column is *models.DataFormatError.
func (f *DataFetcher) Load(ctx context.Context, rawURL string) (*models.Dataset, error) {
	loc, err := storage.ParseLocation(rawURL)
	if err != nil {
		return nil, &models.DataLoadError{URL: rawURL, Err: err}
	}

	start := time.Now()
	f.log.Info("Fetching dataset", logger.Fields{"url": rawURL, "scheme": string(loc.Scheme)})

	var body []byte
	switch loc.Scheme {
	case storage.SchemeHTTP:
		body, err = f.fetchHTTP(ctx, loc.Raw)
	default:
		body, err = f.fetchStorage(ctx, loc)
	}
	if err != nil {
		return nil, &models.DataLoadError{URL: rawURL, Err: err}
	}

	ds, err := f.parser.Parse(bytes.NewReader(body))
	if err != nil {
		var formatErr *models.DataFormatError
		if errors.As(err, &formatErr) {
			return nil, err
		}
		return nil, &models.DataLoadError{URL: rawURL, Err: err}
	}

	minYear, maxYear, _ := ds.YearBounds()
	f.log.Info("Dataset loaded", logger.Fields{
		"rows":        ds.Len(),
		"series":      len(ds.Series),
		"min_year":    minYear,
		"max_year":    maxYear,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return ds, nil
}

// fetchHTTP performs one GET and returns the body of a successful CSV response
func (f *DataFetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch CSV: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("CSV endpoint returned status %d", resp.StatusCode())
	}

	// Sheets answers private or missing documents with an HTML sign-in page
	if mediaType, _, err := mime.ParseMediaType(resp.Header().Get("Content-Type")); err == nil &&
		(mediaType == "text/html" || strings.HasSuffix(mediaType, "+xml")) {
		return nil, fmt.Errorf("CSV endpoint returned %s instead of CSV", mediaType)
	}

	return resp.Body(), nil
}

// fetchStorage reads the object named by loc from its storage backend
func (f *DataFetcher) fetchStorage(ctx context.Context, loc storage.Location) ([]byte, error) {
	client, err := f.openStorage(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	exists, err := client.FileExists(ctx, loc.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", loc.Raw, err)
	}
	if !exists {
		return nil, f.notFound(ctx, client, loc)
	}

	data, err := client.GetFile(ctx, loc.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", loc.Raw, err)
	}
	return data, nil
}

// notFound builds the error for a missing object, naming the CSV files that
// do exist next to it
func (f *DataFetcher) notFound(ctx context.Context, client storage.StorageClient, loc storage.Location) error {
	siblings, err := client.ListDir(ctx, path.Dir(loc.Path))
	if err != nil {
		f.log.Debug("Could not list location", logger.Fields{"url": loc.Raw, "error": err.Error()})
		return fmt.Errorf("%w: %s", ErrObjectNotFound, loc.Raw)
	}

	var csvs []string
	for _, name := range siblings {
		if strings.EqualFold(path.Ext(name), ".csv") {
			csvs = append(csvs, name)
		}
	}
	if len(csvs) == 0 {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, loc.Raw)
	}
	if len(csvs) > maxSuggestions {
		csvs = append(csvs[:maxSuggestions], "...")
	}
	return fmt.Errorf("%w: %s (available: %s)", ErrObjectNotFound, loc.Raw, strings.Join(csvs, ", "))
}
