package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zlimaaa/base-api-go/internal/app/auth"
	"github.com/zlimaaa/base-api-go/pkg/logging"
	"go.uber.org/zap"
)

// AuthHandler expõe a autenticação via HTTP
type AuthHandler struct {
	authService *auth.AuthService
	logger      *logging.ContextLogger
}

// NewAuthHandler cria um novo handler de autenticação
func NewAuthHandler(authService *auth.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logging.NewContextLogger(logger),
	}
}

// LoginRequest representa as credenciais enviadas no login
type LoginRequest struct {
	Login string `json:"login" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// Login autentica o usuário e devolve um token JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Login, req.Senha)
	if err != nil {
		h.logger.WarnCtx(c.Request.Context(), "falha de autenticação", zap.String("login", req.Login))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
