package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zlimaaa/base-api-go/internal/app/auth"
	"github.com/zlimaaa/base-api-go/internal/infra/metrics"
	"go.uber.org/zap"
)

// RequestIDHeader é o cabeçalho usado para correlacionar requisições
const RequestIDHeader = "X-Request-ID"

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger             *zap.Logger
	authMiddleware     *AuthMiddleware
	recoveryMiddleware *RecoveryMiddleware
	securityMiddleware *SecurityMiddleware
	tracingMiddleware  *TracingMiddleware
	metricsMiddleware  *MetricsMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares
func NewMiddleware(
	logger *zap.Logger,
	authService *auth.AuthService,
	apiMetrics *metrics.APIMetrics,
	serviceName string,
	allowedOrigins []string,
) *Middleware {
	m := &Middleware{
		logger:             logger,
		authMiddleware:     NewAuthMiddleware(authService, logger),
		recoveryMiddleware: NewRecoveryMiddleware(logger),
		securityMiddleware: NewSecurityMiddleware(allowedOrigins, logger),
		tracingMiddleware:  NewTracingMiddleware(serviceName, logger),
	}
	if apiMetrics != nil {
		m.metricsMiddleware = NewMetricsMiddleware(apiMetrics, logger)
	}
	return m
}

// MetricsMiddleware retorna o middleware de métricas configurado, ou nil
func (m *Middleware) MetricsMiddleware() *MetricsMiddleware {
	return m.metricsMiddleware
}

// Metrics retorna o middleware de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	if m.metricsMiddleware != nil {
		return m.metricsMiddleware.Middleware()
	}
	return func(c *gin.Context) {
		c.Next() // No-op se não configurado
	}
}

// Authenticate middleware para autenticação de usuários
func (m *Middleware) Authenticate(c *gin.Context) {
	m.authMiddleware.Authenticate(c)
}

// AuthenticateAdmin middleware para autenticação de administradores
func (m *Middleware) AuthenticateAdmin(c *gin.Context) {
	m.authMiddleware.AuthenticateAdmin(c)
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// RequestID garante que toda requisição carregue um identificador único
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDHeader, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}

// IgnoreFavicon é um middleware que ignora requisições para /favicon.ico
func (m *Middleware) IgnoreFavicon() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/favicon.ico" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method

		m.logger.Info("request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", clientIP),
			zap.String("request_id", c.GetString(RequestIDHeader)),
		)
	}
}

// SecurityHeaders middleware para adicionar cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS middleware para configurar CORS
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

// Tracing retorna o middleware de tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}
