package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all the Prometheus metrics for our service
type Metrics struct {
	// Request counters
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Business logic metrics
	RecordsCreated       *prometheus.CounterVec
	AssignmentsReplaced  prometheus.Counter
	InfluencersAssigned  prometheus.Histogram
	DatabaseQueries      *prometheus.CounterVec
	DatabaseErrors       *prometheus.CounterVec
	DatabaseQueryLatency *prometheus.HistogramVec

	// Health check metrics
	HealthCheckStatus *prometheus.GaugeVec
}

// NewPrometheusMetrics creates all metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewPrometheusMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "influencerconnect_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "influencerconnect_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "influencerconnect_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
			[]string{"method", "endpoint"},
		),

		RecordsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "influencerconnect_records_created_total",
				Help: "Total number of records created",
			},
			[]string{"entity"},
		),

		AssignmentsReplaced: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "influencerconnect_assignments_replaced_total",
				Help: "Total number of campaign assignment replacements",
			},
		),

		InfluencersAssigned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "influencerconnect_influencers_per_assignment",
				Help:    "Number of influencers in each assignment replacement",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),

		DatabaseQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "influencerconnect_database_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table"},
		),

		DatabaseErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "influencerconnect_database_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation", "error_type"},
		),

		DatabaseQueryLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "influencerconnect_database_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		HealthCheckStatus: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "influencerconnect_health_check_status",
				Help: "Health check status (1 = healthy, 0 = unhealthy)",
			},
			[]string{"check_type"},
		),
	}
}

// RecordHTTPRequest records an HTTP request with its duration and status
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordCreated records a newly created influencer or campaign
func (m *Metrics) RecordCreated(entity string) {
	m.RecordsCreated.WithLabelValues(entity).Inc()
}

// RecordAssignmentReplace records one replacement and the size of the new set
func (m *Metrics) RecordAssignmentReplace(influencers int) {
	m.AssignmentsReplaced.Inc()
	m.InfluencersAssigned.Observe(float64(influencers))
}

// RecordDatabaseQuery records a database query
func (m *Metrics) RecordDatabaseQuery(operation, table string, duration float64) {
	m.DatabaseQueries.WithLabelValues(operation, table).Inc()
	m.DatabaseQueryLatency.WithLabelValues(operation).Observe(duration)
}

// RecordDatabaseError records a database error
func (m *Metrics) RecordDatabaseError(operation, errorType string) {
	m.DatabaseErrors.WithLabelValues(operation, errorType).Inc()
}

// SetHealthCheckStatus sets the health check status
func (m *Metrics) SetHealthCheckStatus(checkType string, healthy bool) {
	status := 0.0
	if healthy {
		status = 1.0
	}
	m.HealthCheckStatus.WithLabelValues(checkType).Set(status)
}

// IncRequestsInFlight increments the in-flight requests counter
func (m *Metrics) IncRequestsInFlight(method, endpoint string) {
	m.HTTPRequestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// DecRequestsInFlight decrements the in-flight requests counter
func (m *Metrics) DecRequestsInFlight(method, endpoint string) {
	m.HTTPRequestsInFlight.WithLabelValues(method, endpoint).Dec()
}
