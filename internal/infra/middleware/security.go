package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SecurityMiddleware implementa proteções de segurança
type SecurityMiddleware struct {
	allowedOrigins []string
	logger         *zap.Logger
}

// NewSecurityMiddleware cria uma nova instância do middleware de segurança
func NewSecurityMiddleware(allowedOrigins []string, logger *zap.Logger) *SecurityMiddleware {
	return &SecurityMiddleware{
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Headers adiciona cabeçalhos de segurança
func (m *SecurityMiddleware) Headers() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Proteção contra clickjacking
		c.Header("X-Frame-Options", "DENY")

		// Proteção contra MIME-sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Política de segurança de conteúdo
		c.Header("Content-Security-Policy", "default-src 'self'")

		// Não expõe informações de versão do servidor
		c.Header("Server", "base-api")

		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}

// CORS configura Cross-Origin Resource Sharing
func (m *SecurityMiddleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := "*"
		if len(m.allowedOrigins) > 0 {
			origin = strings.Join(m.allowedOrigins, ", ")
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
