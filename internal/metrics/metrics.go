package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of in-flight HTTP requests",
		},
	)

	leadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_leads_created_total",
			Help: "Total number of leads registered",
		},
	)

	paymentsRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_payments_registered_total",
			Help: "Total number of payments registered, by resulting status",
		},
		[]string{"status"},
	)

	exportsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_exports_created_total",
			Help: "Total number of lead exports generated",
		},
		[]string{"format"},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_integration_errors_total",
			Help: "Total number of failed calls to external services",
		},
		[]string{"service"},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}

func RequestStarted() {
	activeConnections.Inc()
}

func ObserveRequest(method, path, status string, seconds float64) {
	activeConnections.Dec()
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

func RecordLeadCreated() {
	leadsCreated.Inc()
}

func RecordPayment(status string) {
	paymentsRegistered.WithLabelValues(status).Inc()
}

func RecordExport(format string) {
	exportsCreated.WithLabelValues(format).Inc()
}

func RecordLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
