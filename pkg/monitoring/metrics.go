package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code", "service"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	// Database metrics
	dbConnectionsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
		[]string{"database", "service"},
	)

	dbQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"query_type", "service"},
	)

	// Shift scheduling metrics
	shiftAssignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shift_assignments_total",
			Help: "Total number of shift assignment attempts",
		},
		[]string{"slot", "outcome", "service"},
	)

	shiftConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shift_conflicts_total",
			Help: "Total number of rejected conflicting shift assignments",
		},
		[]string{"reason", "service"},
	)

	shiftTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shift_transitions_total",
			Help: "Total number of shift status transition attempts",
		},
		[]string{"to_status", "outcome", "service"},
	)

	// Availability metrics
	availabilityQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "availability_queries_total",
			Help: "Total number of live availability queries",
		},
		[]string{"service"},
	)

	availableVehicles = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "available_vehicles",
			Help: "Vehicle count returned by the most recent availability query",
		},
		[]string{"service"},
	)

	systemErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "system_errors_total",
			Help: "Total number of system errors",
		},
		[]string{"error_type", "service", "component"},
	)
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	serviceName string
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(serviceName string) *MetricsCollector {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		dbConnectionsActive,
		dbQueryDuration,
		shiftAssignmentsTotal,
		shiftConflictsTotal,
		shiftTransitionsTotal,
		availabilityQueriesTotal,
		availableVehicles,
		systemErrors,
	)

	return &MetricsCollector{
		serviceName: serviceName,
	}
}

// RecordHTTPRequest records HTTP request metrics
func (m *MetricsCollector) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, statusCode, m.serviceName).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, m.serviceName).Observe(duration.Seconds())
}

// RecordDBConnection records database connection metrics
func (m *MetricsCollector) RecordDBConnection(database string, activeConnections int) {
	dbConnectionsActive.WithLabelValues(database, m.serviceName).Set(float64(activeConnections))
}

// RecordDBQuery records database query metrics
func (m *MetricsCollector) RecordDBQuery(queryType string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(queryType, m.serviceName).Observe(duration.Seconds())
}

// RecordShiftAssignment records a shift assignment attempt
func (m *MetricsCollector) RecordShiftAssignment(slot, outcome string) {
	shiftAssignmentsTotal.WithLabelValues(slot, outcome, m.serviceName).Inc()
}

// RecordShiftConflict records a rejected conflicting assignment
func (m *MetricsCollector) RecordShiftConflict(reason string) {
	shiftConflictsTotal.WithLabelValues(reason, m.serviceName).Inc()
}

// RecordShiftTransition records a shift status transition attempt
func (m *MetricsCollector) RecordShiftTransition(toStatus string, success bool) {
	outcome := "success"
	if !success {
		outcome = "rejected"
	}
	shiftTransitionsTotal.WithLabelValues(toStatus, outcome, m.serviceName).Inc()
}

// RecordAvailabilityQuery records a live availability snapshot
func (m *MetricsCollector) RecordAvailabilityQuery(vehicleCount int) {
	availabilityQueriesTotal.WithLabelValues(m.serviceName).Inc()
	availableVehicles.WithLabelValues(m.serviceName).Set(float64(vehicleCount))
}

// RecordSystemError records system error metrics
func (m *MetricsCollector) RecordSystemError(errorType, component string) {
	systemErrors.WithLabelValues(errorType, m.serviceName, component).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}

// HTTPMiddleware creates middleware for HTTP request metrics
func (m *MetricsCollector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		statusCode := strconv.Itoa(wrapper.statusCode)

		m.RecordHTTPRequest(r.Method, r.URL.Path, statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
