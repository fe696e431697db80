package auth

import (
	"context"
	"time"

	"github.com/zlimaaa/base-api-go/internal/domain/model"
	apperrors "github.com/zlimaaa/base-api-go/pkg/errors"
	"github.com/zlimaaa/base-api-go/pkg/security"
	"go.uber.org/zap"
)

// UsuarioProvider define o acesso a usuários de que a autenticação precisa
type UsuarioProvider interface {
	ConsultarPorLogin(ctx context.Context, login string) (*model.Usuario, error)
	ConsultarEntidadePorID(ctx context.Context, id uint) (*model.Usuario, error)
}

// AuthService gerencia operações de autenticação
type AuthService struct {
	keyManager    *security.KeyManager
	usuarios      UsuarioProvider
	tokenDuration time.Duration
	logger        *zap.Logger
}

// NewAuthService cria um novo serviço de autenticação
func NewAuthService(keyManager *security.KeyManager, usuarios UsuarioProvider, tokenDuration time.Duration, logger *zap.Logger) *AuthService {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &AuthService{
		keyManager:    keyManager,
		usuarios:      usuarios,
		tokenDuration: tokenDuration,
		logger:        logger,
	}
}

// Login autentica um usuário pelo login e senha e gera um token JWT
func (s *AuthService) Login(ctx context.Context, login, senha string) (string, error) {
	usuario, err := s.usuarios.ConsultarPorLogin(ctx, login)
	if err != nil {
		s.logger.Warn("falha na autenticação", zap.String("login", login), zap.Error(err))
		return "", apperrors.Unauthorized("Credenciais inválidas")
	}

	if !security.SenhasIdenticas(senha, usuario.Senha) {
		s.logger.Warn("senha inválida", zap.String("login", login))
		return "", apperrors.Unauthorized("Credenciais inválidas")
	}

	token, err := s.keyManager.GenerateToken(usuario.ID, usuario.Login, s.tokenDuration)
	if err != nil {
		s.logger.Error("falha ao gerar token", zap.Uint("user_id", usuario.ID), zap.Error(err))
		return "", err
	}

	s.logger.Info("login bem-sucedido", zap.Uint("user_id", usuario.ID))
	return token, nil
}

// ValidateToken valida um token JWT e devolve o usuário correspondente, com
// os perfis carregados
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*model.Usuario, error) {
	claims, err := s.keyManager.VerifyToken(tokenString)
	if err != nil {
		return nil, apperrors.Unauthorized("Token inválido ou expirado")
	}

	usuario, err := s.usuarios.ConsultarEntidadePorID(ctx, claims.UserID)
	if err != nil {
		s.logger.Warn("usuário do token não encontrado", zap.Uint("user_id", claims.UserID), zap.Error(err))
		return nil, apperrors.Unauthorized("Usuário inválido")
	}

	return usuario, nil
}

// IsAdmin verifica se um usuário tem permissão administrativa
func (s *AuthService) IsAdmin(usuario *model.Usuario) bool {
	return usuario != nil && usuario.IsAdmin()
}
