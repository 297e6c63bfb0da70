package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"marketdash/internal/logger"
)

// GCSClient reads objects from one Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client using application default credentials
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.Component("storage").With(logger.Fields{"bucket": bucketName}),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// GetFile retrieves an object from GCS
func (g *GCSClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	g.log.Debug("Reading object", logger.Fields{"object": filePath})

	reader, err := g.client.Bucket(g.bucket).Object(filePath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for gs://%s/%s: %w", g.bucket, filePath, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", g.bucket, filePath, err)
	}
	return data, nil
}

// ListDir lists the objects directly below a prefix, sorted
func (g *GCSClient) ListDir(ctx context.Context, dirPath string) ([]string, error) {
	prefix := strings.TrimPrefix(dirPath, "/")
	if prefix == "." {
		prefix = ""
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix, Delimiter: "/"})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		// synthetic prefix entries carry no object name
		if attrs.Name == "" || strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		names = append(names, attrs.Name)
	}

	sort.Strings(names)
	return names, nil
}

// FileExists checks whether an object exists
func (g *GCSClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	_, err := g.client.Bucket(g.bucket).Object(filePath).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat gs://%s/%s: %w", g.bucket, filePath, err)
	}
	return true, nil
}
