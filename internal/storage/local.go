package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStorageClient reads files below a base directory
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if baseDir == "" {
		baseDir = "."
	}
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open base directory %s: %w", baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base path %s is not a directory", baseDir)
	}
	return &LocalStorageClient{baseDir: baseDir}, nil
}

// Close is a no-op for local storage (implements same interface as GCSClient)
func (l *LocalStorageClient) Close() error {
	return nil
}

// resolve joins filePath onto the base directory and rejects escapes
func (l *LocalStorageClient) resolve(filePath string) (string, error) {
	full := filepath.Join(l.baseDir, filepath.FromSlash(filePath))
	rel, err := filepath.Rel(l.baseDir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s escapes %s", filePath, l.baseDir)
	}
	return full, nil
}

// GetFile retrieves a file from local storage
func (l *LocalStorageClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	full, err := l.resolve(filePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", full, err)
	}
	return data, nil
}

// ListDir lists the regular files directly inside dirPath, relative to the
// base directory, sorted
func (l *LocalStorageClient) ListDir(ctx context.Context, dirPath string) ([]string, error) {
	root, err := l.resolve(dirPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		rel, _ := filepath.Rel(l.baseDir, filepath.Join(root, e.Name()))
		files = append(files, filepath.ToSlash(rel))
	}

	sort.Strings(files)
	return files, nil
}

// FileExists checks if a regular file exists at the specified path
func (l *LocalStorageClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	full, err := l.resolve(filePath)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", full, err)
	}
	return !info.IsDir(), nil
}
