package storage

import (
	"context"
)

// StorageClient is a read-only view over a file store that can hold dataset snapshots
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// GetFile retrieves a file from the specified path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListDir lists the file paths directly inside a directory prefix
	ListDir(ctx context.Context, dirPath string) ([]string, error)

	// FileExists checks if a file exists at the specified path
	FileExists(ctx context.Context, filePath string) (bool, error)
}
