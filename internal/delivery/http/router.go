package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventcatalog/internal/delivery/http/controllers"
	"eventcatalog/internal/delivery/http/middleware"
	"eventcatalog/internal/domain"
	"eventcatalog/internal/metrics"
)

// APIPrefix is the base path of every catalog endpoint.
const APIPrefix = "/api/v1"

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Logger         *slog.Logger
	Venues         *controllers.VenueController
	Events         *controllers.EventController
	Auth           *controllers.AuthController
	Health         *controllers.HealthController
	Verifier       domain.TokenVerifier
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and wraps it in
// CORS, trace id, request logging and metrics middleware. Reads are public; every
// mutation requires an ADMIN token.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	admin := middleware.RequireRole(cfg.Verifier, domain.RoleAdmin, cfg.Logger)

	// Venues
	mux.HandleFunc("GET "+APIPrefix+"/venues", cfg.Venues.ListVenues)
	mux.HandleFunc("GET "+APIPrefix+"/venues/{id}", cfg.Venues.GetVenue)
	mux.HandleFunc("GET "+APIPrefix+"/venues/{id}/events", cfg.Events.ListVenueEvents)
	mux.HandleFunc("POST "+APIPrefix+"/venues", admin(cfg.Venues.CreateVenue))
	mux.HandleFunc("PUT "+APIPrefix+"/venues/{id}", admin(cfg.Venues.UpdateVenue))
	mux.HandleFunc("DELETE "+APIPrefix+"/venues/{id}", admin(cfg.Venues.DeleteVenue))
	mux.HandleFunc("POST "+APIPrefix+"/venues/{id}/status", admin(cfg.Venues.ChangeVenueStatus))

	// Events
	mux.HandleFunc("GET "+APIPrefix+"/events", cfg.Events.ListEvents)
	mux.HandleFunc("GET "+APIPrefix+"/events/{id}", cfg.Events.GetEvent)
	mux.HandleFunc("POST "+APIPrefix+"/events", admin(cfg.Events.CreateEvent))
	mux.HandleFunc("PUT "+APIPrefix+"/events/{id}", admin(cfg.Events.UpdateEvent))
	mux.HandleFunc("DELETE "+APIPrefix+"/events/{id}", admin(cfg.Events.DeleteEvent))
	mux.HandleFunc("POST "+APIPrefix+"/events/{id}/status", admin(cfg.Events.ChangeEventStatus))
	mux.HandleFunc("POST "+APIPrefix+"/events/{id}/cancel", admin(cfg.Events.CancelEvent))
	mux.HandleFunc("POST "+APIPrefix+"/events/{id}/complete", admin(cfg.Events.CompleteEvent))

	// Auth
	mux.HandleFunc("POST "+APIPrefix+"/auth/login", cfg.Auth.Login)

	// Operations
	mux.HandleFunc("GET /healthz", cfg.Health.Health)
	mux.Handle("GET /metrics", cfg.Metrics.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = cfg.Metrics.Middleware(mux)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.TraceID(handler)
	return middleware.CORS(cfg.AllowedOrigins, handler)
}
