package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Tipos de erro comuns. Cada categoria da camada de domínio embrulha um
// destes sentinelas, permitindo distinguir o tratamento com errors.Is.
var (
	ErrValidacao          = errors.New("dados inválidos")
	ErrNaoEncontrado      = errors.New("recurso não encontrado")
	ErrProibido           = errors.New("acesso negado")
	ErrConflito           = errors.New("recurso já existe")
	ErrEntidadeJaAlterada = errors.New("entidade alterada por outra transação")
	ErrNaoAutorizado      = errors.New("não autorizado")
)

// Mensagens compartilhadas entre os serviços de ciclo de vida
const (
	MsgEntidadeNaoEncontrada = "Entidade não encontrada"
	MsgEntidadeJaAlterada    = "Entidade já alterada"
)

// APIError representa um erro da API com informações adicionais
type APIError struct {
	Code        int         `json:"-"`
	Message     string      `json:"message"`
	Details     interface{} `json:"details,omitempty"`
	OriginalErr error       `json:"-"`
}

// Error implementa a interface error
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap permite usar errors.Is e errors.As
func (e *APIError) Unwrap() error {
	return e.OriginalErr
}

// New cria um novo APIError
func New(code int, message string, err error) *APIError {
	return &APIError{
		Code:        code,
		Message:     message,
		OriginalErr: err,
	}
}

// WithDetails adiciona detalhes ao erro
func (e *APIError) WithDetails(details interface{}) *APIError {
	e.Details = details
	return e
}

// Validation cria um erro 400 de campo malformado ou ausente
func Validation(message string) *APIError {
	return New(http.StatusBadRequest, message, ErrValidacao)
}

// NotFound cria um erro 404
func NotFound(message string) *APIError {
	if message == "" {
		message = MsgEntidadeNaoEncontrada
	}
	return New(http.StatusNotFound, message, ErrNaoEncontrado)
}

// Forbidden cria um erro 403 de regra de negócio
func Forbidden(message string) *APIError {
	if message == "" {
		message = "Acesso negado"
	}
	return New(http.StatusForbidden, message, ErrProibido)
}

// Unauthorized cria um erro 401
func Unauthorized(message string) *APIError {
	if message == "" {
		message = "Autenticação necessária"
	}
	return New(http.StatusUnauthorized, message, ErrNaoAutorizado)
}

// Conflict cria um erro 409 de unicidade violada
func Conflict(message string) *APIError {
	return New(http.StatusConflict, message, ErrConflito)
}

// Stale cria um erro 409 de conflito de concorrência otimista. O chamador
// deve reconsultar a entidade e repetir a operação.
func Stale(err error) *APIError {
	return New(http.StatusConflict, MsgEntidadeJaAlterada, fmt.Errorf("%w: %w", ErrEntidadeJaAlterada, err))
}

// IsValidation indica se o erro pertence à categoria de validação
func IsValidation(err error) bool { return errors.Is(err, ErrValidacao) }

// IsNotFound indica se o erro pertence à categoria de não encontrado
func IsNotFound(err error) bool { return errors.Is(err, ErrNaoEncontrado) }

// IsForbidden indica se o erro pertence à categoria de permissão negada
func IsForbidden(err error) bool { return errors.Is(err, ErrProibido) }

// IsConflict indica se o erro pertence à categoria de unicidade violada
func IsConflict(err error) bool { return errors.Is(err, ErrConflito) }

// IsStale indica se o erro veio de um conflito de concorrência otimista
func IsStale(err error) bool { return errors.Is(err, ErrEntidadeJaAlterada) }

// AsAPIError extrai o APIError da cadeia de erros, se houver
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// HTTPStatus resolve o status HTTP de qualquer erro retornado pelos serviços
func HTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return http.StatusInternalServerError
}
