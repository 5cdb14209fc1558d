package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ccontarino/apluz-backend/internal/config"
	"github.com/ccontarino/apluz-backend/internal/metrics"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
)

type contextKey string

const requestIDContextKey contextKey = "request_id"

// RequestID generates unique request ID / Génère un ID unique pour la requête
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		r = r.WithContext(ctx)

		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r)
	})
}

// GetRequestID extracts request ID from context / Extrait l'ID de la requête du contexte
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDContextKey).(string); ok {
		return requestID
	}
	return ""
}

// Logging logs HTTP requests / Enregistre les requêtes HTTP
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		requestID := GetRequestID(r.Context())
		slog.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

// MetricsMiddleware tracks HTTP request metrics / Suit les métriques des requêtes HTTP
func (m *Middleware) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		m.metrics.IncrementActiveConnections()
		defer m.metrics.DecrementActiveConnections()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		m.metrics.RecordHTTPRequest(r.Method, r.URL.Path, rw.statusCode)
		m.metrics.RecordHTTPDuration(r.Method, r.URL.Path, duration)
	})
}

// Timeout adds request timeout / Ajoute un timeout aux requêtes
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			r = r.WithContext(ctx)

			done := make(chan struct{})
			go func() {
				next.ServeHTTP(w, r)
				close(done)
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					slog.Warn("request timeout", "path", r.URL.Path, "timeout", duration)
					http.Error(w, `{"error":"request timeout"}`, http.StatusGatewayTimeout)
				}
			}
		})
	}
}

// Middleware holds middleware configuration and dependencies / Contient la configuration middleware
type Middleware struct {
	conf          *config.Config
	globalLimiter *RateLimiter
	strictLimiter *RateLimiter
	metrics       *metrics.Metrics
}

// responseWriter wraps ResponseWriter to capture status / Encapsule ResponseWriter pour capturer le statut
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures status code / Capture le code de statut
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// NewMiddleware creates middleware with rate limiters / Crée le middleware avec limiteurs
func NewMiddleware(conf *config.Config, metrics *metrics.Metrics) *Middleware {
	mw := &Middleware{
		conf:    conf,
		metrics: metrics,
	}

	if conf.RateLimiter.Enabled {
		ctx := context.Background()

		mw.globalLimiter = NewRateLimiter(
			ctx,
			conf.RateLimiter.RPS,
			conf.RateLimiter.Burst,
		)

		strictRPS := conf.RateLimiter.RPS
		strictBurst := conf.RateLimiter.Burst

		if conf.IsProduction() {
			strictRPS = strictRPS / 2
			if strictBurst > 2 {
				strictBurst = strictBurst / 2
			}
		}
		mw.strictLimiter = NewRateLimiter(ctx, strictRPS, strictBurst)
	}

	return mw
}

// Cors handles CORS headers / Gère les en-têtes CORS
func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range m.conf.Cors.AllowedOrigins {
			if allowed == "*" || allowed == origin {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders adds security headers / Ajoute les en-têtes de sécurité
func (m *Middleware) SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'; object-src 'none'")

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// Referrer Policy - Only send referrer to same origin
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Strict Transport Security - Enforce HTTPS (only in production)
		if m.conf.IsProd() {
			w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		}

		next.ServeHTTP(w, r)
	})
}
