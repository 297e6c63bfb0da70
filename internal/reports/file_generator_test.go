package reports

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marketdash/internal/config"
	"marketdash/internal/dashboard"
	"marketdash/internal/models"
)

func TestGenerateAllFiles(t *testing.T) {
	c := newTestController(t)
	fg := NewFileGenerator(NewHTMLBuilder(config.DefaultProfile(), "westeros"), "westeros")

	out := c.Dispatch(dashboard.State{Series: "Dow Jones (^DJI)", MinYear: 2008, MaxYear: 2012, Kind: models.ChartScatter})
	files, err := fg.GenerateAllFiles(out, c.Options())
	if err != nil {
		t.Fatalf("GenerateAllFiles failed: %v", err)
	}

	if !strings.Contains(files.HTMLContent, "Stock Market Dashboard") {
		t.Error("Dashboard page missing title")
	}
	if !strings.Contains(files.ChartsPage, "echarts") {
		t.Error("Chart page missing echarts")
	}

	for _, name := range []string{"primary.png", "aux-1.png", "aux-2.png", "aux-3.png"} {
		if len(files.ImageFiles[name]) == 0 {
			t.Errorf("Missing image %s", name)
		}
	}

	var decoded dashboard.Outputs
	if err := json.Unmarshal(files.JSONFiles[OutputsFile], &decoded); err != nil {
		t.Fatalf("outputs.json does not decode: %v", err)
	}
	if decoded.State.Series != "Dow Jones (^DJI)" || decoded.Primary.Kind != models.ChartScatter {
		t.Errorf("Unexpected outputs %+v", decoded.State)
	}

	expected := []string{"aux-1.png", "aux-2.png", "aux-3.png", "charts.html", "index.html", "outputs.json", "primary.png"}
	names := files.Names()
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected files %v, got %v", expected, names)
	}
}

func TestGenerateAllFilesSkipsEmptyChart(t *testing.T) {
	c := newTestController(t)
	fg := NewFileGenerator(NewHTMLBuilder(nil, ""), "")

	out := c.Dispatch(dashboard.State{Series: "Not A Column"})
	files, err := fg.GenerateAllFiles(out, c.Options())
	if err != nil {
		t.Fatalf("GenerateAllFiles failed: %v", err)
	}
	if _, ok := files.ImageFiles["primary.png"]; ok {
		t.Error("Expected no image for an empty chart")
	}
	if len(files.ImageFiles) != 3 {
		t.Errorf("Expected 3 auxiliary images, got %d", len(files.ImageFiles))
	}
}

func TestWriteToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snap")
	fg := NewFileGenerator(NewHTMLBuilder(nil, ""), "")

	files := &GeneratedFiles{
		HTMLContent: "<html>dash</html>",
		ChartsPage:  "<html>charts</html>",
		ImageFiles:  map[string][]byte{"primary.png": []byte("png")},
		JSONFiles:   map[string][]byte{OutputsFile: []byte("{}")},
	}
	if err := fg.WriteToDir(dir, files); err != nil {
		t.Fatalf("WriteToDir failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read output dir: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("Expected 4 files and no leftovers, got %d", len(entries))
	}

	content, err := os.ReadFile(filepath.Join(dir, DashboardFile))
	if err != nil || string(content) != "<html>dash</html>" {
		t.Errorf("Unexpected index.html: %q (%v)", content, err)
	}
}
