package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns the version from APP_VERSION, the VERSION file or build info
func GetVersion() string {
	// CI/CD sets APP_VERSION
	if envVersion := strings.TrimSpace(os.Getenv("APP_VERSION")); envVersion != "" {
		return envVersion
	}

	for _, path := range []string{"VERSION", filepath.Join("..", "VERSION")} {
		if content, err := os.ReadFile(path); err == nil {
			if v := strings.TrimSpace(string(content)); v != "" {
				return v
			}
		}
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return strings.TrimPrefix(info.Main.Version, "v")
	}

	return fallbackVersion
}
