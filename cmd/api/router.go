package main

import (
	"database/sql"
	"net/http"

	"github.com/crucial707/travel-tracker/internal/auth"
	"github.com/crucial707/travel-tracker/internal/config"
	"github.com/crucial707/travel-tracker/internal/handlers"
	"github.com/crucial707/travel-tracker/internal/middleware"
	"github.com/crucial707/travel-tracker/internal/repo"
	"github.com/crucial707/travel-tracker/internal/services"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repositories, services and handlers over db.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	// ==========================
	// Repos and services
	// ==========================
	userRepo := repo.NewUserRepo(db)
	destinationRepo := repo.NewDestinationRepo(db)
	auditRepo := repo.NewAuditRepo(db)

	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL())
	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), tokens)
	destinationService := services.NewDestinationService(destinationRepo, auditRepo)

	authHandler := &handlers.AuthHandler{Service: authService}
	destinationHandler := &handlers.DestinationHandler{Service: destinationService}
	auditHandler := &handlers.AuditHandler{Repo: auditRepo}
	healthHandler := &handlers.HealthHandler{DB: db}

	// ==========================
	// Router
	// ==========================
	r := chi.NewRouter()
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := middleware.AuthRateLimiter()
	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

		r.Route("/destinations", func(r chi.Router) {
			r.Post("/", destinationHandler.Create)
			r.Get("/", destinationHandler.List)
			r.Get("/{id}", destinationHandler.Get)
			r.Patch("/{id}", destinationHandler.Update)
			r.Delete("/{id}", destinationHandler.Delete)
		})
		r.Get("/audit", auditHandler.ListAudit)
	})

	return r
}
