package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Business metrics
	sessionsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_sessions_started_total",
			Help: "Total number of browsing sessions started",
		},
	)

	sessionsEndedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_sessions_ended_total",
			Help: "Total number of browsing sessions ended",
		},
	)

	interactionsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_interactions_recorded_total",
			Help: "Total number of user interactions recorded",
		},
		[]string{"interaction_type"},
	)

	feedbackSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_feedback_submitted_total",
			Help: "Total number of feedback records submitted",
		},
	)

	// Dependency health metrics
	dependencyHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_health",
			Help: "Health status of dependencies (1 = healthy, 0 = unhealthy)",
		},
		[]string{"dependency"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

func RecordSessionStarted() { sessionsStartedTotal.Inc() }

func RecordSessionEnded() { sessionsEndedTotal.Inc() }

func RecordInteraction(interactionType string) {
	interactionsRecordedTotal.WithLabelValues(interactionType).Inc()
}

func RecordFeedbackSubmitted() { feedbackSubmittedTotal.Inc() }

// SetDependencyHealth sets the health status of a dependency
func SetDependencyHealth(dependency string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	dependencyHealth.WithLabelValues(dependency).Set(value)
}

// MetricsHandler returns the Prometheus metrics handler
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
