package routes

import (
	"net/http"

	"github.com/greencycle/greencycle/backend/internal/api/handlers"
	"github.com/greencycle/greencycle/backend/internal/api/middleware"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler         *handlers.AuthHandler
	reportHandler       *handlers.ReportHandler
	taskHandler         *handlers.TaskHandler
	rewardHandler       *handlers.RewardHandler
	notificationHandler *handlers.NotificationHandler
	geolocationHandler  *handlers.GeolocationHandler
	eventStreamHandler  *handlers.EventStreamHandler

	verifier middleware.TokenVerifier
	metrics  *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	taskHandler *handlers.TaskHandler,
	rewardHandler *handlers.RewardHandler,
	notificationHandler *handlers.NotificationHandler,
	geolocationHandler *handlers.GeolocationHandler,
	eventStreamHandler *handlers.EventStreamHandler,
	verifier middleware.TokenVerifier,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		authHandler:         authHandler,
		reportHandler:       reportHandler,
		taskHandler:         taskHandler,
		rewardHandler:       rewardHandler,
		notificationHandler: notificationHandler,
		geolocationHandler:  geolocationHandler,
		eventStreamHandler:  eventStreamHandler,
		verifier:            verifier,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	auth := middleware.AuthMiddleware(r.verifier)
	protect := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.Handle("GET /api/auth/me", protect(r.authHandler.CurrentUser))

	// Report endpoints
	r.mux.Handle("POST /api/reports", protect(r.reportHandler.CreateReport))
	r.mux.Handle("GET /api/reports", protect(r.reportHandler.ListReports))
	r.mux.HandleFunc("GET /api/reports/recent", r.reportHandler.ListRecentReports)
	r.mux.Handle("POST /api/verify-waste", protect(r.reportHandler.VerifyWaste))

	// Task endpoints
	r.mux.HandleFunc("GET /api/tasks", r.taskHandler.ListTasks)
	r.mux.HandleFunc("GET /api/tasks/search", r.taskHandler.SearchTasks)
	r.mux.Handle("POST /api/tasks/{id}/claim", protect(r.taskHandler.ClaimTask))
	r.mux.Handle("POST /api/tasks/{id}/verify", protect(r.taskHandler.VerifyTask))
	r.mux.Handle("PATCH /api/tasks/{id}/status", protect(r.taskHandler.UpdateTaskStatus))
	r.mux.Handle("GET /api/collected", protect(r.taskHandler.ListCollected))

	// Reward endpoints
	r.mux.Handle("GET /api/rewards/balance", protect(r.rewardHandler.GetBalance))
	r.mux.Handle("GET /api/rewards/transactions", protect(r.rewardHandler.ListTransactions))
	r.mux.Handle("GET /api/rewards/catalog", protect(r.rewardHandler.GetCatalog))
	r.mux.Handle("POST /api/rewards/redeem", protect(r.rewardHandler.Redeem))
	r.mux.HandleFunc("GET /api/leaderboard", r.rewardHandler.GetLeaderboard)

	// Notification endpoints
	r.mux.Handle("GET /api/notifications", protect(r.notificationHandler.ListNotifications))
	r.mux.Handle("POST /api/notifications/{id}/read", protect(r.notificationHandler.MarkNotificationRead))

	// Geolocation endpoints
	r.mux.HandleFunc("GET /api/reverse-geocode", r.geolocationHandler.ReverseGeocode)
	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)

	// Event stream
	r.mux.Handle("GET /api/events", protect(r.eventStreamHandler.StreamEvents))

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so every response carries the headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
