package storage

import (
	"context"
	"fmt"
)

// NewStorageClient creates the client able to read loc
func NewStorageClient(ctx context.Context, loc Location) (StorageClient, error) {
	switch loc.Scheme {
	case SchemeLocal:
		localClient, err := NewLocalStorageClient(loc.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case SchemeGCS:
		gcsClient, err := NewGCSClient(ctx, loc.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("no storage client for scheme %q", loc.Scheme)
	}
}
