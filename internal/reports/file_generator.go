package reports

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"marketdash/internal/charts"
	"marketdash/internal/dashboard"
	"marketdash/internal/logger"
	"marketdash/internal/models"
)

// File names of a snapshot directory
const (
	DashboardFile = "index.html"
	ChartsFile    = "charts.html"
	OutputsFile   = "outputs.json"
)

// GeneratedFiles contains all files of one dashboard snapshot
type GeneratedFiles struct {
	HTMLContent string            // dashboard page
	ChartsPage  string            // every chart on one go-echarts page
	ImageFiles  map[string][]byte // <chart id>.png
	JSONFiles   map[string][]byte
}

// Names returns every file name in the snapshot, sorted
func (g *GeneratedFiles) Names() []string {
	names := []string{DashboardFile, ChartsFile}
	for name := range g.ImageFiles {
		names = append(names, name)
	}
	for name := range g.JSONFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileGenerator renders a dispatch result into static files
type FileGenerator struct {
	htmlBuilder *HTMLBuilder
	theme       string
	log         *logger.Logger
}

// NewFileGenerator creates a new file generator
func NewFileGenerator(htmlBuilder *HTMLBuilder, theme string) *FileGenerator {
	return &FileGenerator{
		htmlBuilder: htmlBuilder,
		theme:       theme,
		log:         logger.Component("snapshot"),
	}
}

// GenerateAllFiles creates the dashboard page, the chart page, one PNG per
// drawable chart and the raw outputs as JSON
func (fg *FileGenerator) GenerateAllFiles(out dashboard.Outputs, options dashboard.Options) (*GeneratedFiles, error) {
	files := &GeneratedFiles{
		ImageFiles: make(map[string][]byte),
		JSONFiles:  make(map[string][]byte),
	}

	// 1. Dashboard page
	page, err := fg.htmlBuilder.BuildDashboardHTML(out, options)
	if err != nil {
		return nil, fmt.Errorf("failed to generate dashboard page: %w", err)
	}
	files.HTMLContent = page

	// 2. All charts on one go-echarts page
	results := append([]models.ChartResult{out.Primary}, out.Auxiliary...)
	var buf bytes.Buffer
	if err := charts.RenderPage(&buf, fg.htmlBuilder.profile.Title, fg.theme, results...); err != nil {
		return nil, fmt.Errorf("failed to generate chart page: %w", err)
	}
	files.ChartsPage = buf.String()

	// 3. PNG per chart
	for _, r := range results {
		var img bytes.Buffer
		if err := charts.RenderPNG(&img, r); err != nil {
			if errors.Is(err, charts.ErrTooFewPoints) {
				fg.log.Warn("Skipping chart image", logger.Fields{"chart": r.ID, "points": r.Points()})
				continue
			}
			return nil, fmt.Errorf("failed to generate chart image: %w", err)
		}
		files.ImageFiles[r.ID+".png"] = img.Bytes()
	}

	// 4. Outputs JSON
	outputs, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outputs: %w", err)
	}
	files.JSONFiles[OutputsFile] = outputs

	fg.log.Debug("Generated snapshot", logger.Fields{"images": len(files.ImageFiles), "series": out.State.Series})
	return files, nil
}

// WriteToDir stores the snapshot in dir. Files are written to a temporary
// directory first and moved into place once all of them succeeded.
func (fg *FileGenerator) WriteToDir(dir string, files *GeneratedFiles) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tempDir, err := os.MkdirTemp(dir, ".snapshot-")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	contents := map[string][]byte{
		DashboardFile: []byte(files.HTMLContent),
		ChartsFile:    []byte(files.ChartsPage),
	}
	for name, data := range files.ImageFiles {
		contents[name] = data
	}
	for name, data := range files.JSONFiles {
		contents[name] = data
	}

	for name, data := range contents {
		if err := os.WriteFile(filepath.Join(tempDir, name), data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	for name := range contents {
		if err := os.Rename(filepath.Join(tempDir, name), filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("failed to move %s into place: %w", name, err)
		}
	}

	fg.log.Info("Snapshot written", logger.Fields{"dir": dir, "files": len(contents)})
	return nil
}
