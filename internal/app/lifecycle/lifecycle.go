// Package lifecycle fornece a orquestração canônica de inclusão, alteração e
// exclusão (lógica ou física) reutilizada por todos os serviços de entidade.
// Cada serviço concreto fornece seus pontos de extensão pela interface
// Ganchos; GanchosBase entrega implementações vazias para os ganchos não
// sobrescritos.
package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/zlimaaa/base-api-go/internal/domain/model"
	"github.com/zlimaaa/base-api-go/internal/domain/repository"
	apperrors "github.com/zlimaaa/base-api-go/pkg/errors"
	"go.uber.org/zap"
)

// Repositorio é o subconjunto do contrato de persistência de que o template
// precisa. Qualquer repositório de entidade do domínio o satisfaz.
type Repositorio[E model.Entidade] interface {
	ConsultarPorID(ctx context.Context, id uint) (E, bool, error)
	Salvar(ctx context.Context, entidade E) (E, error)
	DeletarPorID(ctx context.Context, id uint) error
}

// Ganchos reúne os pontos de extensão invocados pelo template. As validações
// rodam antes de qualquer escrita; os resolvedores de dependência cercam a
// persistência.
type Ganchos[E model.Entidade] interface {
	ValidarInclusao(ctx context.Context, entidade E) error
	ValidarAlteracao(ctx context.Context, entidade E) error
	ValidarUnicidade(ctx context.Context, entidade E) error
	ValidarExclusao(ctx context.Context, entidade E) error
	ResolverPreDependencias(ctx context.Context, entidade E) error
	ResolverPosDependencias(ctx context.Context, entidade E) error
	ResolverPreExclusao(ctx context.Context, entidade E) error
	ResolverPosExclusao(ctx context.Context, entidade E) error
}

// GanchosBase implementa todos os ganchos como não-operações. Os serviços
// concretos a embutem e sobrescrevem apenas o que precisam.
type GanchosBase[E model.Entidade] struct{}

func (GanchosBase[E]) ValidarInclusao(context.Context, E) error         { return nil }
func (GanchosBase[E]) ValidarAlteracao(context.Context, E) error        { return nil }
func (GanchosBase[E]) ValidarUnicidade(context.Context, E) error        { return nil }
func (GanchosBase[E]) ValidarExclusao(context.Context, E) error         { return nil }
func (GanchosBase[E]) ResolverPreDependencias(context.Context, E) error { return nil }
func (GanchosBase[E]) ResolverPosDependencias(context.Context, E) error { return nil }
func (GanchosBase[E]) ResolverPreExclusao(context.Context, E) error     { return nil }
func (GanchosBase[E]) ResolverPosExclusao(context.Context, E) error     { return nil }

// Conversor captura as operações obrigatórias de conversão entre a entidade
// e sua representação externa, implementadas por cada serviço concreto.
type Conversor[E model.Entidade, D any] interface {
	ConverterDTOParaEntidade(dto D) E
	ConverterEntidadeParaDTO(entidade E) D
	ConverterListaEntidadeParaListaDTO(entidades []E) []D
}

// Servico orquestra o ciclo de vida de uma entidade sobre um repositório
type Servico[E model.Entidade] struct {
	repo    Repositorio[E]
	ganchos Ganchos[E]
	logger  *zap.Logger
	agora   func() time.Time
}

// NovoServico cria um template de ciclo de vida para a entidade E
func NovoServico[E model.Entidade](repo Repositorio[E], ganchos Ganchos[E], logger *zap.Logger) *Servico[E] {
	return &Servico[E]{
		repo:    repo,
		ganchos: ganchos,
		logger:  logger,
		agora:   time.Now,
	}
}

// ComRelogio troca a fonte de tempo, para testes determinísticos
func (s *Servico[E]) ComRelogio(agora func() time.Time) *Servico[E] {
	s.agora = agora
	return s
}

// ConsultarPorID busca a entidade pelo identificador, ativa ou não
func (s *Servico[E]) ConsultarPorID(ctx context.Context, id uint) (E, bool, error) {
	return s.repo.ConsultarPorID(ctx, id)
}

// Salvar inclui um novo registro (id ausente) ou altera um existente (id
// presente). Na alteração a data de inclusão original é propagada. Em ambos
// os casos a sequência é: validação, resolução de pré-dependências, marcação
// de ativo, persistência, cópia do id gerado de volta para a entidade em
// memória e resolução de pós-dependências.
func (s *Servico[E]) Salvar(ctx context.Context, entidade E, usuarioLogado *model.Usuario) (E, error) {
	var zero E

	entidade.GetAuditoria().VincularUsuarioLogado(usuarioLogado)

	if entidade.GetID() == 0 {
		if err := s.ganchos.ValidarInclusao(ctx, entidade); err != nil {
			return zero, err
		}
		entidade.GetAuditoria().DataInclusao = s.agora()
	} else {
		if err := s.ganchos.ValidarAlteracao(ctx, entidade); err != nil {
			return zero, err
		}
		anterior, encontrada, err := s.repo.ConsultarPorID(ctx, entidade.GetID())
		if err != nil {
			return zero, err
		}
		if !encontrada {
			return zero, apperrors.NotFound(apperrors.MsgEntidadeNaoEncontrada)
		}
		entidade.GetAuditoria().DataInclusao = anterior.GetAuditoria().DataInclusao
	}

	if err := s.ganchos.ValidarUnicidade(ctx, entidade); err != nil {
		return zero, err
	}
	if err := s.ganchos.ResolverPreDependencias(ctx, entidade); err != nil {
		return zero, err
	}

	entidade.GetAuditoria().Ativo = true

	salva, err := s.SalvarEntidade(ctx, entidade)
	if err != nil {
		return zero, err
	}
	entidade.SetID(salva.GetID())

	if err := s.ganchos.ResolverPosDependencias(ctx, entidade); err != nil {
		return zero, err
	}

	return entidade, nil
}

// Excluir faz a exclusão lógica: valida a permissão, desliga o registro e
// grava a data de exclusão, mantendo a linha persistida.
func (s *Servico[E]) Excluir(ctx context.Context, id uint, usuarioLogado *model.Usuario) error {
	entidade, err := s.carregarParaExclusao(ctx, id, usuarioLogado)
	if err != nil {
		return err
	}

	if err := s.ganchos.ValidarExclusao(ctx, entidade); err != nil {
		return err
	}
	if err := s.ganchos.ResolverPreExclusao(ctx, entidade); err != nil {
		return err
	}

	s.desativar(entidade)
	if _, err := s.SalvarEntidade(ctx, entidade); err != nil {
		return err
	}

	return s.ganchos.ResolverPosExclusao(ctx, entidade)
}

// Deletar faz a exclusão física: mesma sequência de validação e ganchos da
// exclusão lógica, mas remove a linha do armazenamento.
func (s *Servico[E]) Deletar(ctx context.Context, id uint, usuarioLogado *model.Usuario) error {
	entidade, err := s.carregarParaExclusao(ctx, id, usuarioLogado)
	if err != nil {
		return err
	}

	if err := s.ganchos.ValidarExclusao(ctx, entidade); err != nil {
		return err
	}
	if err := s.ganchos.ResolverPreExclusao(ctx, entidade); err != nil {
		return err
	}

	if err := s.repo.DeletarPorID(ctx, entidade.GetID()); err != nil {
		return err
	}

	return s.ganchos.ResolverPosExclusao(ctx, entidade)
}

// ExcluirSemValidacao pula a validação de exclusão e os ganchos. Reservado a
// chamadores internos confiáveis, como limpezas em cascata; nunca deve ser
// alcançável por um caminho não privilegiado.
func (s *Servico[E]) ExcluirSemValidacao(ctx context.Context, id uint, usuarioLogado *model.Usuario) error {
	entidade, err := s.carregarParaExclusao(ctx, id, usuarioLogado)
	if err != nil {
		return err
	}

	s.desativar(entidade)
	_, err = s.SalvarEntidade(ctx, entidade)
	return err
}

// DeletarSemValidacao remove fisicamente sem validação nem ganchos
func (s *Servico[E]) DeletarSemValidacao(ctx context.Context, id uint) error {
	return s.repo.DeletarPorID(ctx, id)
}

// SalvarEntidade é o passo de persistência compartilhado por inclusão,
// alteração e exclusão lógica: grava a data de alteração e traduz o conflito
// de versão do armazenamento para o erro de domínio. Qualquer outra falha do
// armazenamento propaga intocada.
func (s *Servico[E]) SalvarEntidade(ctx context.Context, entidade E) (E, error) {
	entidade.GetAuditoria().DataAlteracao = s.agora()

	salva, err := s.repo.Salvar(ctx, entidade)
	if err != nil {
		var zero E
		if errors.Is(err, repository.ErrVersaoConflitante) {
			s.logger.Warn("conflito de concorrência otimista ao salvar entidade",
				zap.Uint("id", entidade.GetID()), zap.Error(err))
			return zero, apperrors.Stale(err)
		}
		return zero, err
	}
	return salva, nil
}

func (s *Servico[E]) carregarParaExclusao(ctx context.Context, id uint, usuarioLogado *model.Usuario) (E, error) {
	var zero E

	entidade, encontrada, err := s.repo.ConsultarPorID(ctx, id)
	if err != nil {
		return zero, err
	}
	if !encontrada {
		return zero, apperrors.NotFound(apperrors.MsgEntidadeNaoEncontrada)
	}

	entidade.GetAuditoria().VincularUsuarioLogado(usuarioLogado)
	return entidade, nil
}

func (s *Servico[E]) desativar(entidade E) {
	agora := s.agora()
	entidade.GetAuditoria().Ativo = false
	entidade.GetAuditoria().DataExclusao = &agora
}
