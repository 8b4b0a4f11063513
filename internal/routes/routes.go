package routes

import (
	"net/http"

	"github.com/lifetrackhq/lifetrack/internal/app"
	"github.com/lifetrackhq/lifetrack/internal/handler"
	"github.com/lifetrackhq/lifetrack/internal/middleware"
)

// Init wires all HTTP routes and returns the root handler with the
// application middleware chain applied.
func Init(a *app.App) http.Handler {
	mux := http.NewServeMux()

	healthHandler := handler.NewHealthHandler(a.DB)
	authHandler := handler.NewAuthHandler(a.AuthService)
	goalHandler := handler.NewGoalHandler(a.GoalService)
	templateHandler := handler.NewTemplateHandler(a.TemplateService)
	backupHandler := handler.NewBackupHandler(a.BackupService)

	requireAuth := middleware.RequireAuth(a.AuthService)
	rateLimitAuth := middleware.RateLimitAuth()

	// Public
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /auth/token", rateLimitAuth(authHandler.Token))

	// Goals
	mux.HandleFunc("POST /api/goals", requireAuth(goalHandler.Create))
	mux.HandleFunc("GET /api/goals", requireAuth(goalHandler.List))
	mux.HandleFunc("GET /api/goals/stats", requireAuth(goalHandler.Stats))
	mux.HandleFunc("GET /api/goals/export", requireAuth(goalHandler.Export))
	mux.HandleFunc("GET /api/goals/{id}", requireAuth(goalHandler.Detail))
	mux.HandleFunc("DELETE /api/goals/{id}", requireAuth(goalHandler.Delete))
	mux.HandleFunc("GET /api/goals/{id}/children", requireAuth(goalHandler.Children))
	mux.HandleFunc("GET /api/goals/{id}/report", requireAuth(goalHandler.Report))
	mux.HandleFunc("POST /api/goals/{id}/progress", requireAuth(goalHandler.RecordProgress))
	mux.HandleFunc("POST /api/goals/{id}/complete", requireAuth(goalHandler.Complete))
	mux.HandleFunc("POST /api/goals/{id}/abandon", requireAuth(goalHandler.Abandon))

	// Templates
	mux.HandleFunc("GET /api/templates", requireAuth(templateHandler.List))
	mux.HandleFunc("POST /api/templates/goals", requireAuth(templateHandler.CreateGoal))

	// Backup
	mux.HandleFunc("POST /api/backup", requireAuth(backupHandler.Run))

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}
