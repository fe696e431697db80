// Package perfil mantém o registro canônico de perfis: um perfil é resolvido
// pelo nome e cadastrado na primeira utilização, garantindo no máximo uma
// linha ativa por nome.
package perfil

import (
	"context"

	"github.com/zlimaaa/base-api-go/internal/app/lifecycle"
	"github.com/zlimaaa/base-api-go/internal/domain/model"
	"github.com/zlimaaa/base-api-go/internal/domain/repository"
	"go.uber.org/zap"
)

// Service resolve e cadastra perfis sobre o template de ciclo de vida
type Service struct {
	lifecycle.GanchosBase[*model.Perfil]

	repo   repository.PerfilRepository
	ciclo  *lifecycle.Servico[*model.Perfil]
	logger *zap.Logger
}

// NewService cria o registro de perfis
func NewService(repo repository.PerfilRepository, logger *zap.Logger) *Service {
	s := &Service{
		repo:   repo,
		logger: logger,
	}
	s.ciclo = lifecycle.NovoServico[*model.Perfil](repo, s, logger)
	return s
}

// ConsultarOuCadastrarPeloNome devolve o registro persistido e deduplicado do
// perfil com o nome informado, cadastrando-o na primeira utilização. Chamadas
// repetidas com o mesmo nome devolvem sempre a mesma linha.
func (s *Service) ConsultarOuCadastrarPeloNome(ctx context.Context, perfil *model.Perfil) (*model.Perfil, error) {
	existente, encontrado, err := s.repo.ConsultarAtivoPorNome(ctx, perfil.Nome)
	if err != nil {
		return nil, err
	}
	if encontrado {
		return existente, nil
	}

	s.logger.Info("cadastrando novo perfil", zap.String("nome", perfil.Nome))

	novo := &model.Perfil{Nome: perfil.Nome}
	return s.ciclo.Salvar(ctx, novo, nil)
}
