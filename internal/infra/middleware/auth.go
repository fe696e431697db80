package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zlimaaa/base-api-go/internal/app/auth"
	"github.com/zlimaaa/base-api-go/internal/domain/model"
	"go.uber.org/zap"
)

// chave do usuário atuante no contexto da requisição
const usuarioLogadoKey = "usuarioLogado"

// AuthMiddleware gerencia middlewares de autenticação
type AuthMiddleware struct {
	authService *auth.AuthService
	logger      *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(authService *auth.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Authenticate verifica se o usuário está autenticado e resolve o usuário
// atuante para o contexto da requisição
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header não fornecido"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato inválido do token"})
		return
	}

	usuario, err := m.authService.ValidateToken(c.Request.Context(), tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
		return
	}

	// Armazena o usuário no contexto para uso posterior
	c.Set(usuarioLogadoKey, usuario)
	c.Next()
}

// AuthenticateAdmin verifica se o usuário é um administrador
func (m *AuthMiddleware) AuthenticateAdmin(c *gin.Context) {
	// Primeiro autentica o usuário
	m.Authenticate(c)

	// Se o fluxo foi abortado no middleware anterior, retorna
	if c.IsAborted() {
		return
	}

	usuario := UsuarioLogado(c)
	if usuario == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Falha ao obter informações do usuário"})
		return
	}

	if !m.authService.IsAdmin(usuario) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso negado: permissão de administrador necessária"})
		return
	}

	c.Next()
}

// UsuarioLogado devolve o usuário atuante resolvido pela autenticação, ou
// nil quando a requisição não é autenticada
func UsuarioLogado(c *gin.Context) *model.Usuario {
	valor, existe := c.Get(usuarioLogadoKey)
	if !existe {
		return nil
	}
	usuario, ok := valor.(*model.Usuario)
	if !ok {
		return nil
	}
	return usuario
}
