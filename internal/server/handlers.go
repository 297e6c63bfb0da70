package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"marketdash/internal/charts"
	"marketdash/internal/config"
	"marketdash/internal/dashboard"
	"marketdash/internal/logger"
	"marketdash/internal/models"
)

// HandleRoot serves the dashboard page for the widget state in the query string
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	out := s.Controller.Dispatch(dashboard.ParseState(r.URL.Query()))
	page, err := s.Pages.BuildDashboardHTML(out, s.Controller.Options())
	if err != nil {
		s.log.Error("Failed to build dashboard page", err)
		http.Error(w, "Failed to build dashboard page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", GetContentType(".html"))
	w.Write([]byte(page))
}

// HandleDashboardAPI returns every dashboard output for the widget state as JSON
func (s *Server) HandleDashboardAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	out := s.Controller.Dispatch(dashboard.ParseState(r.URL.Query()))
	s.writeJSON(w, http.StatusOK, out)
}

// HandleSeries returns the selectable universe, year bounds and defaults
func (s *Server) HandleSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, http.StatusOK, s.Controller.Options())
}

// HandleChart serves one chart as a standalone page (/charts/{id}) or as a
// PNG image (/charts/{id}.png)
func (s *Server) HandleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/charts/")
	id, asPNG := strings.CutSuffix(name, ".png")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	out := s.Controller.Dispatch(dashboard.ParseState(r.URL.Query()))
	result, ok := findChart(out, id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if asPNG {
		s.HandleChartPNG(w, result)
		return
	}

	var buf bytes.Buffer
	if err := charts.RenderChartPage(&buf, result, s.Config.ChartTheme); err != nil {
		s.log.Error("Failed to render chart page", err, logger.Fields{"chart": id})
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", GetContentType(".html"))
	w.Write(buf.Bytes())
}

// HandleChartPNG writes a chart as a PNG image
func (s *Server) HandleChartPNG(w http.ResponseWriter, result models.ChartResult) {
	var buf bytes.Buffer
	if err := charts.RenderPNG(&buf, result); err != nil {
		if errors.Is(err, charts.ErrTooFewPoints) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.log.Error("Failed to render chart image", err, logger.Fields{"chart": result.ID})
		http.Error(w, "Failed to render chart image", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", GetContentType(".png"))
	w.Write(buf.Bytes())
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := http.StatusOK
	datasetCheck := "ok"
	if !s.Store.Ready() {
		status = http.StatusServiceUnavailable
		datasetCheck = "not loaded"
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"rows":      s.Store.Dataset().Len(),
		"checks": map[string]string{
			"dataset": datasetCheck,
			"config":  "ok",
		},
	}
	if status != http.StatusOK {
		health["status"] = "unavailable"
	}

	s.writeJSON(w, status, health)
}

// findChart picks the chart with the given id from a dispatch result
func findChart(out dashboard.Outputs, id string) (models.ChartResult, bool) {
	if id == out.Primary.ID {
		return out.Primary, true
	}
	for _, aux := range out.Auxiliary {
		if aux.ID == id {
			return aux, true
		}
	}
	return models.ChartResult{}, false
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", GetContentType(".json"))
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("Failed to encode response", err)
	}
}
