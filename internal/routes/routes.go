package routes

import (
	"net/http"

	"github.com/templui/screentime/internal/app"
	"github.com/templui/screentime/internal/handler"
	"github.com/templui/screentime/internal/markdown"
	"github.com/templui/screentime/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.Pinger())
	dashboard := handler.NewDashboardHandler(app.StatsService, markdown.NewParser())
	entry := handler.NewEntryHandler(app.EntryService)
	goal := handler.NewGoalHandler(app.GoalService, app.StatsService)
	stats := handler.NewStatsHandler(app.StatsService)
	snapshot := handler.NewSnapshotHandler(app.SnapshotService)

	mux := http.NewServeMux()

	// ============================================================================
	// PAGES
	// ============================================================================

	mux.HandleFunc("GET /{$}", dashboard.DashboardPage)
	mux.HandleFunc("GET /healthz", home.Healthz)

	// ============================================================================
	// API
	// ============================================================================

	// Entries
	mux.HandleFunc("GET /api/entries", entry.List)
	mux.HandleFunc("POST /api/entries", entry.Create)
	mux.HandleFunc("POST /api/entries/restore", entry.Restore)
	mux.HandleFunc("GET /api/entries/{id}", entry.Get)
	mux.HandleFunc("PUT /api/entries/{id}", entry.Update)
	mux.HandleFunc("DELETE /api/entries/{id}", entry.Delete)

	// Goals
	mux.HandleFunc("GET /api/goals", goal.List)
	mux.HandleFunc("POST /api/goals", goal.Create)
	mux.HandleFunc("GET /api/goals/progress", goal.Progress)
	mux.HandleFunc("GET /api/goals/{id}", goal.Get)
	mux.HandleFunc("PUT /api/goals/{id}", goal.Update)
	mux.HandleFunc("DELETE /api/goals/{id}", goal.Delete)

	// Stats
	mux.HandleFunc("GET /api/stats/today", stats.Today)
	mux.HandleFunc("GET /api/stats/breakdown", stats.Breakdown)
	mux.HandleFunc("GET /api/stats/weekly", stats.Weekly)
	mux.HandleFunc("GET /api/stats/daily", stats.Daily)
	mux.HandleFunc("GET /api/stats/summary", stats.Summary)

	// Snapshots (import is rate limited)
	mux.HandleFunc("GET /api/export", snapshot.Export)
	mux.Handle("POST /api/import", app.ImportLimiter.Middleware(http.HandlerFunc(snapshot.Import)))
	mux.HandleFunc("POST /api/backup", snapshot.Backup)
	mux.HandleFunc("GET /api/backups", snapshot.Backups)

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/api/", home.NotFoundJSON)
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.Recover,
		middleware.CrossOriginProtection(app.Cfg.AppURL),
		middleware.Config(app.Cfg),
		middleware.NonceMiddleware, // before SecurityHeaders, which reads the nonce
		middleware.SecurityHeaders,
		middleware.WithURLPath,
	)
}
