package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics gerencia métricas relacionadas à API
type APIMetrics struct {
	requestCounter   *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	activeRequests   *prometheus.GaugeVec
	errorsTotal      *prometheus.CounterVec
	entityOperations *prometheus.CounterVec
}

// NewAPIMetrics cria e registra métricas do prometheus
func NewAPIMetrics() *APIMetrics {
	return &APIMetrics{
		requestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "base_api_requests_total",
				Help: "Total number of HTTP requests by path, method, and status code",
			},
			[]string{"path", "method", "status"},
		),

		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "base_api_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		activeRequests: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "base_api_active_requests",
				Help: "Number of in-flight requests being processed",
			},
			[]string{"path", "method"},
		),

		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "base_api_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"path", "method", "error_type"},
		),

		entityOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "base_api_entity_operations_total",
				Help: "Total number of entity lifecycle operations by entity, operation and outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),
	}
}

// RequestStarted registra o início de uma requisição
func (m *APIMetrics) RequestStarted(path, method string) {
	m.activeRequests.WithLabelValues(path, method).Inc()
}

// RequestCompleted registra a conclusão de uma requisição
func (m *APIMetrics) RequestCompleted(path, method, status string, duration time.Duration) {
	m.requestCounter.WithLabelValues(path, method, status).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
	m.activeRequests.WithLabelValues(path, method).Dec()
}

// RequestError registra um erro de requisição
func (m *APIMetrics) RequestError(path, method, errorType string) {
	m.errorsTotal.WithLabelValues(path, method, errorType).Inc()
}

// EntityOperation registra uma operação de ciclo de vida de entidade
func (m *APIMetrics) EntityOperation(entity, operation, outcome string) {
	m.entityOperations.WithLabelValues(entity, operation, outcome).Inc()
}
