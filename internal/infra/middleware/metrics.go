package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zlimaaa/base-api-go/internal/infra/metrics"
	"go.uber.org/zap"
)

// MetricsMiddleware fornece middleware para coletar métricas
type MetricsMiddleware struct {
	metrics *metrics.APIMetrics
	logger  *zap.Logger
}

// NewMetricsMiddleware cria um novo middleware de métricas
func NewMetricsMiddleware(metrics *metrics.APIMetrics, logger *zap.Logger) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: metrics,
		logger:  logger,
	}
}

// RegisterEndpoint registra o endpoint para expor métricas do Prometheus
func (m *MetricsMiddleware) RegisterEndpoint(router *gin.Engine, path string) {
	if path == "" {
		path = "/metrics"
	}
	router.GET(path, gin.WrapH(promhttp.Handler()))
	m.logger.Info("endpoint de métricas Prometheus registrado", zap.String("path", path))
}

// Middleware registra métricas para cada requisição
func (m *MetricsMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		m.metrics.RequestStarted(path, method)
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		m.metrics.RequestCompleted(path, method, status, duration)

		if c.Writer.Status() >= 400 {
			errorType := "client_error"
			if c.Writer.Status() >= 500 {
				errorType = "server_error"
			}
			m.metrics.RequestError(path, method, errorType)
		}
	}
}
