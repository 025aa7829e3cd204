package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rejectconsole/app"
	"rejectconsole/internal/session"
	"rejectconsole/models"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App is the console web application: chi router, embedded templates,
// session-gated pages and JSON API.
type App struct {
	router    *chi.Mux
	templates *template.Template
	sessions  *session.Store

	metrics   *app.MetricsService
	reports   *app.ReportService
	cars      *app.CARService
	analytics *app.AnalyticsService

	username string
	password string
}

// Config holds the UI wiring.
type Config struct {
	Metrics   *app.MetricsService
	Reports   *app.ReportService
	CARs      *app.CARService
	Analytics *app.AnalyticsService
	Sessions  *session.Store
	Username  string
	Password  string
}

// NewApp builds the console application.
func NewApp(cfg Config) (*App, error) {
	funcMap := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
		"qty": func(v float64) string { return fmt.Sprintf("%.0f", v) },
		"statusClass": func(status string) string {
			return "status-" + strings.ToLower(strings.ReplaceAll(status, " ", "-"))
		},
		"stageParam": func(t models.InspectionType) string {
			return string(t)
		},
		"today": func() string { return time.Now().Format(app.DateFormat) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		templates: templates,
		sessions:  cfg.Sessions,
		metrics:   cfg.Metrics,
		reports:   cfg.Reports,
		cars:      cfg.CARs,
		analytics: cfg.Analytics,
		username:  cfg.Username,
		password:  cfg.Password,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

func (a *App) setupRoutes() {
	a.router.Get("/login", a.handleLoginPage)
	a.router.Post("/login", a.handleLogin)
	a.router.Post("/logout", a.handleLogout)

	// Pages
	a.router.Group(func(r chi.Router) {
		r.Use(a.requirePageAuth)
		r.Get("/", a.handleDashboard)
		r.Get("/reports/lot", a.handleLotReportPage)
		r.Get("/reports/incoming", a.handleIncomingReportPage)
		r.Get("/reports/final", a.handleFinalReportPage)
		r.Get("/reports/saved", a.handleSavedReportsPage)
		r.Get("/cars", a.handleCARsPage)
	})

	// JSON API
	a.router.Route("/api", func(r chi.Router) {
		r.Use(a.requireAPIAuth)

		r.Get("/metrics", a.handleMetrics)
		r.Get("/reports/lot", a.handleLotReport)
		r.Get("/reports/incoming", a.handleIncomingReport)
		r.Get("/reports/final", a.handleFinalReport)
		r.Get("/rejection-detail/{entry}", a.handleRejectionDetail)

		r.Get("/reports/lot/export", a.handleExportLotReport)
		r.Get("/reports/incoming/export", a.handleExportIncomingReport)
		r.Get("/reports/final/export", a.handleExportFinalReport)

		r.Post("/daily-reports", a.handleSaveDailyReport)
		r.Get("/daily-reports", a.handleListDailyReports)
		r.Get("/daily-reports/{name}", a.handleGetDailyReport)
		r.Get("/daily-reports/{name}/export", a.handleExportDailyReport)

		r.Get("/cars", a.handleListCARs)
		r.Get("/cars/pending", a.handlePendingCARs)
		r.Post("/cars", a.handleRaiseCAR)
		r.Get("/cars/inspection/{entry}", a.handleCARByInspection)
		r.Patch("/cars/{name}", a.handleUpdateCAR)
		r.Post("/cars/{name}/five-why", a.handleSaveFiveWhy)

		r.Get("/charts/defects", a.handleDefectDistribution)
		r.Get("/charts/trend", a.handleRejectionTrend)
		r.Get("/charts/stages", a.handleStageRejection)
		r.Get("/charts/operators", a.handleOperatorPerformance)
		r.Get("/charts/machines", a.handleMachinePerformance)
		r.Get("/charts/distribution", a.handleLotDistribution)
		r.Get("/charts/lot-families", a.handleLotFamilies)
	})
}

// Router exposes the handler for serving and tests.
func (a *App) Router() http.Handler {
	return a.router
}
