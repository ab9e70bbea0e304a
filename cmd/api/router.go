package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds the HTTP surface: import upload, learning, catalog
// search, health, and metrics when enabled.
func NewRouter(deps *Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{deps.Config.Server.BaseURL},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	r.Use(corsMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	limiter := rate.NewLimiter(
		rate.Limit(deps.Config.Server.RateLimitPerSecond),
		deps.Config.Server.RateLimitBurst,
	)

	r.Route("/api/v1", func(api chi.Router) {
		// Uploads are expensive to parse; hold them behind the limiter.
		api.Group(func(limited chi.Router) {
			limited.Use(rateLimit(limiter))
			deps.ImportHandler.RegisterRoutes(limited)
		})

		deps.LearningHandler.RegisterRoutes(api)
		deps.CatalogHandler.RegisterRoutes(api)
	})

	return r
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
