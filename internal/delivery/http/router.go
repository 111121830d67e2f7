package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"ticketcheckin/internal/delivery/http/controllers"
	"ticketcheckin/internal/delivery/http/middleware"
	"ticketcheckin/internal/domain"
)

// RouterDeps holds what NewRouter wires into the routes.
type RouterDeps struct {
	Logger           *slog.Logger
	TokenVerifier    domain.TokenVerifier
	RateLimiter      domain.RateLimiter
	TicketController *controllers.TicketValidationController
	HealthController *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(deps.TokenVerifier, deps.Logger)
	requireStaff := middleware.RequireRole(domain.RoleOrganizer, domain.RoleAdmin)
	limitScans := middleware.RateLimit(deps.RateLimiter, middleware.ScanKey, deps.Logger)
	scan := func(next http.HandlerFunc) http.HandlerFunc {
		return requireAuth(requireStaff(limitScans(next)))
	}

	// Check-in
	mux.HandleFunc("POST /validate", scan(deps.TicketController.Validate))
	mux.HandleFunc("POST /organizers/{organizerID}/qr-code/validate", scan(deps.TicketController.ValidateForOrganizer))

	mux.HandleFunc("GET /health", deps.HealthController.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
