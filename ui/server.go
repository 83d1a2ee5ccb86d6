// Package ui exposes the merge and analysis operations over HTTP. Every
// response is a JSON document (the report endpoint also offers Markdown and
// HTML); rendering charts and maps from the returned specs is the client's
// job.
package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"climatelab/app"
	"climatelab/internal"
	"climatelab/ports"
)

// Config holds UI application configuration
type Config struct {
	Port    string
	DataDir string
	Reports app.ReportParams
}

// App represents the HTTP application
type App struct {
	router  *chi.Mux
	cfg     Config
	reports *app.ReportService
	repo    ports.ObservationRepository // nil when no database is configured
	log     *internal.Logger
}

// NewApp creates the HTTP application. repo may be nil; the dataset
// endpoints then answer 503 while file-based analysis keeps working.
func NewApp(cfg Config, repo ports.ObservationRepository, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	a := &App{
		router:  chi.NewRouter(),
		cfg:     cfg,
		reports: app.NewReportService(logger),
		repo:    repo,
		log:     logger.With("http"),
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the route tree
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/datasets", func(r chi.Router) {
		r.Post("/merge", a.handleMerge)
		r.Post("/", a.handleImport)
		r.Get("/", a.handleListDatasets)
		r.Delete("/{id}", a.handleDeleteDataset)
	})

	a.router.Route("/analysis", func(r chi.Router) {
		r.Get("/ranges", a.handleRanges)
		r.Get("/ideal-days", a.handleIdealDays)
		r.Get("/non-ideal-days", a.handleNonIdealDays)
		r.Get("/hardiness", a.handleHardiness)
	})

	a.router.Get("/map", a.handleMap)

	a.router.Route("/report", func(r chi.Router) {
		r.Get("/", a.handleReport)
		r.Get("/markdown", a.handleReportMarkdown)
		r.Get("/html", a.handleReportHTML)
	})
}

// Router returns the HTTP handler for tests and embedding.
func (a *App) Router() http.Handler {
	return a.router
}

// Run starts the server and blocks.
func (a *App) Run() error {
	addr := fmt.Sprintf(":%s", a.cfg.Port)
	a.log.Info("listening on %s (data dir %s)", addr, a.cfg.DataDir)
	return http.ListenAndServe(addr, a.router)
}
