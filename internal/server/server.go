package server

import (
	"net/http"

	"marketdash/internal/config"
	"marketdash/internal/dashboard"
	"marketdash/internal/dataset"
	"marketdash/internal/logger"
	"marketdash/internal/reports"
)

// Server represents the dashboard HTTP server
type Server struct {
	Config     *config.Config
	Store      *dataset.Store
	Controller *dashboard.Controller
	Pages      *reports.HTMLBuilder
	log        *logger.Logger
}

// NewServer creates a new server over a published dataset
func NewServer(cfg *config.Config, store *dataset.Store, controller *dashboard.Controller) *Server {
	return &Server{
		Config:     cfg,
		Store:      store,
		Controller: controller,
		Pages:      reports.NewHTMLBuilder(controller.Profile(), cfg.ChartTheme),
		log:        logger.Component("server"),
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Handle specific API routes first
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/api/dashboard", s.HandleDashboardAPI)
	mux.HandleFunc("/api/series", s.HandleSeries)
	mux.HandleFunc("/charts/", s.HandleChart)

	// Handle root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Handler wraps the routes with request logging
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.SetupRoutes())
}
