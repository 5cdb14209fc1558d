package web

import (
	"net/http"
	"time"

	"github.com/ccontarino/apluz-backend/internal/app"
	"github.com/ccontarino/apluz-backend/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux creates and configures the HTTP router / Crée et configure le routeur HTTP
func NewMux(h *Handler, conf *config.Config, container *app.Container) http.Handler {
	mux := http.NewServeMux()
	mw := NewMiddleware(conf, container.Metrics)

	// Health check endpoints (no rate limiting for load balancers)
	// These endpoints are typically called frequently by monitoring systems
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /readiness", h.ReadinessCheck)

	// Prometheus metrics endpoint.
	// If this should not be public, run it on a separate internal port
	// or whitelist scraper IPs at infrastructure level.
	mux.Handle("GET /metrics", promhttp.Handler())

	// Catalog read endpoints
	mux.Handle("GET /api/properties", chain(h.ListProperties, mw))
	mux.Handle("GET /api/properties/{id}", chain(h.GetProperty, mw))

	// Catalog write endpoints - stricter rate limit
	mux.Handle("POST /api/properties", chain(h.CreateProperty, mw, mw.RateLimitStrict))
	mux.Handle("PUT /api/properties/{id}", chain(h.UpdateProperty, mw, mw.RateLimitStrict))
	mux.Handle("PATCH /api/properties/{id}/status", chain(h.UpdatePropertyStatus, mw, mw.RateLimitStrict))
	mux.Handle("DELETE /api/properties/{id}", chain(h.DeleteProperty, mw, mw.RateLimitStrict))

	// Global middlewares - applied in reverse order / Middlewares globaux appliqués en ordre inverse
	var handler http.Handler = mux
	handler = mw.MetricsMiddleware(handler) // Metrics first to capture everything
	handler = mw.RateLimit(handler)
	handler = mw.SecurityHeaders(handler)
	handler = mw.Cors(handler)
	handler = Timeout(30 * time.Second)(handler) // 30s timeout for all requests / Timeout de 30s pour toutes les requêtes
	handler = Logging(handler)                   // Logging includes request ID
	handler = RequestID(handler)                 // RequestID first - generates ID for all middleware

	return handler
}

// chain applies middleware to HTTP handler / Applique les middlewares au gestionnaire HTTP
func chain(f http.HandlerFunc, mw *Middleware, middlewares ...func(http.Handler) http.Handler) http.Handler {
	var handler http.Handler = f

	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}
