package routes

import (
	"net/http"

	"github.com/habitkit/habitkit/internal/app"
	"github.com/habitkit/habitkit/internal/handler"
	"github.com/habitkit/habitkit/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	habit := handler.NewHabitHandler(app.HabitService, app.CompletionService)
	history := handler.NewHistoryHandler(app.HistoryService)

	mux := http.NewServeMux()

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/v1/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/v1/login", rateLimiter(auth.Login))
	mux.HandleFunc("GET /api/v1/me", middleware.RequireAuth(auth.Me))

	// Habits
	mux.HandleFunc("POST /api/v1/habits", middleware.RequireAuth(habit.Create))
	mux.HandleFunc("GET /api/v1/habits", middleware.RequireAuth(habit.List))
	mux.HandleFunc("POST /api/v1/habits/{habitId}/complete", middleware.RequireAuth(habit.Complete))
	mux.HandleFunc("DELETE /api/v1/habits/{habitId}/complete", middleware.RequireAuth(habit.Undo))

	// History
	mux.HandleFunc("GET /api/v1/history", middleware.RequireAuth(history.List))

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Auth(app.AuthService, app.UserRepository),
	)
}
