package storage

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Scheme identifies the backend a data location points at
type Scheme string

const (
	SchemeHTTP  Scheme = "http"
	SchemeGCS   Scheme = "gs"
	SchemeLocal Scheme = "file"
)

// Location is a parsed data source address.
// For gs:// Root is the bucket; for local files Root is the directory.
type Location struct {
	Scheme Scheme
	Root   string
	Path   string
	Raw    string
}

// ParseLocation classifies a data URL. Plain paths are local files.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("empty data location")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 { // C:\ paths parse with a one letter scheme
		return localLocation(raw, raw), nil
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return Location{Scheme: SchemeHTTP, Raw: raw}, nil
	case "gs":
		object := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || object == "" {
			return Location{}, fmt.Errorf("gs location %q must be gs://bucket/object", raw)
		}
		return Location{Scheme: SchemeGCS, Root: u.Host, Path: object, Raw: raw}, nil
	case "file":
		if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
			return Location{}, fmt.Errorf("file location %q names host %q; use file:///absolute/path", raw, u.Host)
		}
		if u.Path == "" {
			return Location{}, fmt.Errorf("file location %q has no path", raw)
		}
		return localLocation(u.Path, raw), nil
	default:
		return Location{}, fmt.Errorf("unsupported data location scheme %q", u.Scheme)
	}
}

func localLocation(path, raw string) Location {
	return Location{Scheme: SchemeLocal, Root: filepath.Dir(path), Path: filepath.Base(path), Raw: raw}
}
