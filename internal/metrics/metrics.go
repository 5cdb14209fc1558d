package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metric collectors / Contient tous les collecteurs de métriques Prometheus
type Metrics struct {
	// Catalog metrics
	PropertiesCreated *prometheus.CounterVec // Properties created by type (house, apartment, ...)
	StatusChanges     *prometheus.CounterVec // Status transitions by target status
	PropertyDeletions prometheus.Counter     // Total property deletions
	LookupMisses      prometheus.Counter     // Lookups of IDs that do not exist

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec   // Total HTTP requests by method, path, status
	HTTPRequestDuration *prometheus.HistogramVec // HTTP request latency in seconds
	ActiveConnections   prometheus.Gauge         // Current number of active HTTP connections

	// Security metrics
	RateLimitHits *prometheus.CounterVec // Rate limit violations by endpoint

	// System metrics
	DatabaseConnections prometheus.Gauge     // Current database connection pool size
	BackgroundTasks     *prometheus.GaugeVec // Status of background tasks (running/stopped)
}

// NewMetrics initializes Metrics instance / Initialise une instance Metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		// Catalog metrics
		PropertiesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_properties_created_total",
				Help: "Total number of properties created by type",
			},
			[]string{"type"},
		),

		StatusChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_status_changes_total",
				Help: "Total number of property status transitions by target status",
			},
			[]string{"status"},
		),

		PropertyDeletions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_property_deletions_total",
				Help: "Total number of property deletions",
			},
		),

		LookupMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_lookup_misses_total",
				Help: "Total number of lookups for property IDs that do not exist",
			},
		),

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status code",
			},
			[]string{"method", "path", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				// Buckets optimized for API response times: 10ms to 10s
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ActiveConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Current number of active HTTP connections",
			},
		),

		// Security metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "security_rate_limit_hits_total",
				Help: "Total number of rate limit violations by endpoint",
			},
			[]string{"endpoint"},
		),

		// System metrics
		DatabaseConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "database_connections_active",
				Help: "Current number of active database connections",
			},
		),

		BackgroundTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "background_tasks_status",
				Help: "Status of background tasks (1=running, 0=stopped)",
			},
			[]string{"task_name"},
		),
	}

	return m
}

// RecordPropertyCreated records a property creation with its type.
func (m *Metrics) RecordPropertyCreated(propertyType string) {
	m.PropertiesCreated.WithLabelValues(propertyType).Inc()
}

// RecordStatusChange records a status transition with the target status.
// Status can be: "available", "sold", "rented", "reserved", or "inactive"
func (m *Metrics) RecordStatusChange(status string) {
	m.StatusChanges.WithLabelValues(status).Inc()
}

// RecordPropertyDeletion increments the deletion counter.
func (m *Metrics) RecordPropertyDeletion() {
	m.PropertyDeletions.Inc()
}

// RecordLookupMiss increments the lookup miss counter.
func (m *Metrics) RecordLookupMiss() {
	m.LookupMisses.Inc()
}

// RecordHTTPRequest records an HTTP request with method, path, and status code.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCodeToString(statusCode)).Inc()
}

// RecordHTTPDuration records the duration of an HTTP request.
func (m *Metrics) RecordHTTPDuration(method, path string, duration time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncrementActiveConnections increments the active connections gauge.
func (m *Metrics) IncrementActiveConnections() {
	m.ActiveConnections.Inc()
}

// DecrementActiveConnections decrements the active connections gauge.
func (m *Metrics) DecrementActiveConnections() {
	m.ActiveConnections.Dec()
}

// RecordRateLimitHit records a rate limit violation for a specific endpoint.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	m.RateLimitHits.WithLabelValues(endpoint).Inc()
}

// UpdateDatabaseConnections updates the database connections gauge.
func (m *Metrics) UpdateDatabaseConnections(count int) {
	m.DatabaseConnections.Set(float64(count))
}

// SetBackgroundTaskStatus sets the status of a background task.
// Status: 1 for running, 0 for stopped.
func (m *Metrics) SetBackgroundTaskStatus(taskName string, running bool) {
	status := 0.0
	if running {
		status = 1.0
	}
	m.BackgroundTasks.WithLabelValues(taskName).Set(status)
}

// statusCodeToString converts HTTP status code to string / Convertit le code de statut HTTP en chaîne
func statusCodeToString(code int) string {
	// Common status codes as exact strings
	switch code {
	case 200:
		return "200"
	case 201:
		return "201"
	case 204:
		return "204"
	case 400:
		return "400"
	case 404:
		return "404"
	case 429:
		return "429"
	case 500:
		return "500"
	case 503:
		return "503"
	default:
		// Group others by range
		if code >= 200 && code < 300 {
			return "2xx"
		} else if code >= 300 && code < 400 {
			return "3xx"
		} else if code >= 400 && code < 500 {
			return "4xx"
		} else if code >= 500 && code < 600 {
			return "5xx"
		}
		return "unknown"
	}
}
