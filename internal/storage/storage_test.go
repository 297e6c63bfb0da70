package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw     string
		want    Location
		wantErr bool
	}{
		{raw: "https://example.com/export?format=csv", want: Location{Scheme: SchemeHTTP, Raw: "https://example.com/export?format=csv"}},
		{raw: "http://localhost:8080/data.csv", want: Location{Scheme: SchemeHTTP, Raw: "http://localhost:8080/data.csv"}},
		{raw: "gs://market-data/daily/indices.csv", want: Location{Scheme: SchemeGCS, Root: "market-data", Path: "daily/indices.csv", Raw: "gs://market-data/daily/indices.csv"}},
		{raw: "file:///srv/data/indices.csv", want: Location{Scheme: SchemeLocal, Root: "/srv/data", Path: "indices.csv", Raw: "file:///srv/data/indices.csv"}},
		{raw: "file://localhost/srv/data/indices.csv", want: Location{Scheme: SchemeLocal, Root: "/srv/data", Path: "indices.csv", Raw: "file://localhost/srv/data/indices.csv"}},
		{raw: "file://tmp/pd/x.csv", wantErr: true},
		{raw: "file://", wantErr: true},
		{raw: "/srv/data/indices.csv", want: Location{Scheme: SchemeLocal, Root: "/srv/data", Path: "indices.csv", Raw: "/srv/data/indices.csv"}},
		{raw: "indices.csv", want: Location{Scheme: SchemeLocal, Root: ".", Path: "indices.csv", Raw: "indices.csv"}},
		{raw: "gs://bucket-only", wantErr: true},
		{raw: "ftp://example.com/data.csv", wantErr: true},
		{raw: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLocation(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalStorageClient(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "snapshots", "2023"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshots", "2023", "b.csv"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshots", "a.csv"), []byte("Date,X\n"), 0644))

	client, err := NewLocalStorageClient(dir)
	require.NoError(t, err)
	defer client.Close()
	ctx := context.Background()

	data, err := client.GetFile(ctx, "snapshots/a.csv")
	require.NoError(t, err)
	assert.Equal(t, "Date,X\n", string(data))

	_, err = client.GetFile(ctx, "snapshots/missing.csv")
	assert.Error(t, err)

	_, err = client.GetFile(ctx, "../outside.csv")
	assert.ErrorContains(t, err, "escapes")

	files, err := client.ListDir(ctx, "snapshots")
	require.NoError(t, err)
	assert.Equal(t, []string{"snapshots/a.csv"}, files, "subdirectories are not listed")

	exists, err := client.FileExists(ctx, "snapshots/a.csv")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.FileExists(ctx, "snapshots")
	require.NoError(t, err)
	assert.False(t, exists, "directories are not files")

	exists, err = client.FileExists(ctx, "nope.csv")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageClientCancelledContext(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x"), 0644))
	client, err := NewLocalStorageClient(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.GetFile(ctx, "a.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocalStorageClientMissingDir(t *testing.T) {
	_, err := NewLocalStorageClient(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNewStorageClient(t *testing.T) {
	dir := t.TempDir()

	client, err := NewStorageClient(context.Background(), Location{Scheme: SchemeLocal, Root: dir, Path: "x.csv"})
	require.NoError(t, err)
	defer client.Close()
	assert.IsType(t, &LocalStorageClient{}, client)

	_, err = NewStorageClient(context.Background(), Location{Scheme: SchemeHTTP})
	assert.Error(t, err)
}
