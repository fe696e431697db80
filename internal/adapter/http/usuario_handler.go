package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zlimaaa/base-api-go/internal/app/usuario"
	"github.com/zlimaaa/base-api-go/internal/domain/model"
	"github.com/zlimaaa/base-api-go/internal/infra/metrics"
	"github.com/zlimaaa/base-api-go/internal/infra/middleware"
	apperrors "github.com/zlimaaa/base-api-go/pkg/errors"
	"github.com/zlimaaa/base-api-go/pkg/logging"
	"go.uber.org/zap"
)

// UsuarioHandler expõe as operações de usuário via HTTP. Os logs carregam
// trace_id/span_id quando a requisição está sendo rastreada
type UsuarioHandler struct {
	service *usuario.Service
	metrics *metrics.APIMetrics
	logger  *logging.ContextLogger
}

// NewUsuarioHandler cria um novo handler de usuários
func NewUsuarioHandler(service *usuario.Service, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *UsuarioHandler {
	return &UsuarioHandler{
		service: service,
		metrics: apiMetrics,
		logger:  logging.NewContextLogger(logger),
	}
}

// Criar registra um novo usuário. Rota pública
func (h *UsuarioHandler) Criar(c *gin.Context) {
	var dto model.UsuarioDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.logger.WarnCtx(c.Request.Context(), "JSON inválido na criação de usuário", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	resultado, err := h.service.CriarUsuario(c.Request.Context(), dto)
	if err != nil {
		h.responderErro(c, "criar", err)
		return
	}

	h.registrarOperacao("criar", "sucesso")
	c.JSON(http.StatusCreated, resultado)
}

// Listar retorna todos os usuários ativos. Requer administrador
func (h *UsuarioHandler) Listar(c *gin.Context) {
	usuarios, err := h.service.ConsultarTodos(c.Request.Context())
	if err != nil {
		h.responderErro(c, "listar", err)
		return
	}

	h.registrarOperacao("listar", "sucesso")
	c.JSON(http.StatusOK, usuarios)
}

// Consultar retorna um usuário ativo pelo ID
func (h *UsuarioHandler) Consultar(c *gin.Context) {
	id, ok := h.extrairID(c)
	if !ok {
		return
	}

	resultado, err := h.service.Consultar(c.Request.Context(), id)
	if err != nil {
		h.responderErro(c, "consultar", err)
		return
	}

	h.registrarOperacao("consultar", "sucesso")
	c.JSON(http.StatusOK, resultado)
}

// Atualizar altera os dados do próprio usuário ou de terceiros quando
// o usuário atuante é administrador
func (h *UsuarioHandler) Atualizar(c *gin.Context) {
	var dto model.UsuarioDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.logger.WarnCtx(c.Request.Context(), "JSON inválido na alteração de usuário", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	resultado, err := h.service.SalvarUsuario(c.Request.Context(), dto, middleware.UsuarioLogado(c))
	if err != nil {
		h.responderErro(c, "atualizar", err)
		return
	}

	h.registrarOperacao("atualizar", "sucesso")
	c.JSON(http.StatusOK, resultado)
}

// Excluir desativa um usuário preservando o registro
func (h *UsuarioHandler) Excluir(c *gin.Context) {
	id, ok := h.extrairID(c)
	if !ok {
		return
	}

	if err := h.service.Excluir(c.Request.Context(), id, middleware.UsuarioLogado(c)); err != nil {
		h.responderErro(c, "excluir", err)
		return
	}

	h.registrarOperacao("excluir", "sucesso")
	c.Status(http.StatusNoContent)
}

// Deletar remove definitivamente um usuário. Requer administrador
func (h *UsuarioHandler) Deletar(c *gin.Context) {
	id, ok := h.extrairID(c)
	if !ok {
		return
	}

	if err := h.service.Deletar(c.Request.Context(), id, middleware.UsuarioLogado(c)); err != nil {
		h.responderErro(c, "deletar", err)
		return
	}

	h.registrarOperacao("deletar", "sucesso")
	c.Status(http.StatusNoContent)
}

// AlterarPerfis adiciona ou remove perfis de um usuário. Requer administrador
func (h *UsuarioHandler) AlterarPerfis(c *gin.Context) {
	var dto model.AlteracaoPerfisDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.logger.WarnCtx(c.Request.Context(), "JSON inválido na alteração de perfis", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	resultado, err := h.service.AlterarPerfisUsuario(c.Request.Context(), dto, middleware.UsuarioLogado(c))
	if err != nil {
		h.responderErro(c, "alterar_perfis", err)
		return
	}

	h.registrarOperacao("alterar_perfis", "sucesso")
	c.JSON(http.StatusOK, resultado)
}

func (h *UsuarioHandler) extrairID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return 0, false
	}
	return uint(id), true
}

func (h *UsuarioHandler) responderErro(c *gin.Context, operacao string, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorCtx(c.Request.Context(), "falha na operação de usuário",
			zap.String("operation", operacao),
			zap.Error(err))
	}

	h.registrarOperacao(operacao, "erro")

	if apiErr, ok := apperrors.AsAPIError(err); ok {
		resposta := gin.H{"error": apiErr.Message}
		if apiErr.Details != nil {
			resposta["details"] = apiErr.Details
		}
		c.JSON(status, resposta)
		return
	}

	c.JSON(status, gin.H{"error": "Erro interno do servidor"})
}

func (h *UsuarioHandler) registrarOperacao(operacao, resultado string) {
	if h.metrics != nil {
		h.metrics.EntityOperation("usuario", operacao, resultado)
	}
}
