package lifecycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zlimaaa/base-api-go/internal/app/lifecycle"
	"github.com/zlimaaa/base-api-go/internal/domain/model"
	"github.com/zlimaaa/base-api-go/internal/domain/repository"
	"github.com/zlimaaa/base-api-go/internal/mocks"
	"github.com/zlimaaa/base-api-go/internal/testutils"
	apperrors "github.com/zlimaaa/base-api-go/pkg/errors"
)

// ganchosTeste permite sobrescrever ganchos individuais por teste
type ganchosTeste struct {
	lifecycle.GanchosBase[*model.Perfil]

	validarInclusao func(ctx context.Context, p *model.Perfil) error
	validarExclusao func(ctx context.Context, p *model.Perfil) error
	posDependencias func(ctx context.Context, p *model.Perfil) error
}

func (g *ganchosTeste) ValidarInclusao(ctx context.Context, p *model.Perfil) error {
	if g.validarInclusao != nil {
		return g.validarInclusao(ctx, p)
	}
	return nil
}

func (g *ganchosTeste) ValidarExclusao(ctx context.Context, p *model.Perfil) error {
	if g.validarExclusao != nil {
		return g.validarExclusao(ctx, p)
	}
	return nil
}

func (g *ganchosTeste) ResolverPosDependencias(ctx context.Context, p *model.Perfil) error {
	if g.posDependencias != nil {
		return g.posDependencias(ctx, p)
	}
	return nil
}

func relogioFixo(instante time.Time) func() time.Time {
	return func() time.Time { return instante }
}

func TestServico_Salvar_Inclusao(t *testing.T) {
	logger := testutils.TestLogger(t)
	instante := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("carimba datas, ativa e copia o id gerado", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo := new(mocks.MockPerfilRepository)
		servico := lifecycle.NovoServico[*model.Perfil](mockRepo, &ganchosTeste{}, logger).
			ComRelogio(relogioFixo(instante))

		mockRepo.On("Salvar", mock.Anything, mock.AnythingOfType("*model.Perfil")).
			Run(func(args mock.Arguments) {
				salvo := args.Get(1).(*model.Perfil)
				assert.True(t, salvo.Ativo)
				assert.Equal(t, instante, salvo.DataInclusao)
				assert.Equal(t, instante, salvo.DataAlteracao)
				salvo.ID = 7
			}).
			Return(&model.Perfil{ID: 7, Nome: model.PerfilAdmin}, nil).Once()

		perfil, err := servico.Salvar(ctx, &model.Perfil{Nome: model.PerfilAdmin}, nil)

		require.NoError(t, err)
		assert.Equal(t, uint(7), perfil.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("falha de validação impede a persistência", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo := new(mocks.MockPerfilRepository)
		ganchos := &ganchosTeste{
			validarInclusao: func(ctx context.Context, p *model.Perfil) error {
				return apperrors.Validation("nome obrigatório")
			},
		}
		servico := lifecycle.NovoServico[*model.Perfil](mockRepo, ganchos, logger)

		_, err := servico.Salvar(ctx, &model.Perfil{}, nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		mockRepo.AssertNotCalled(t, "Salvar")
	})
}

func TestServico_Salvar_Alteracao(t *testing.T) {
	logger := testutils.TestLogger(t)
	inclusao := time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC)
	agora := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("propaga a data de inclusão original", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo := new(mocks.MockPerfilRepository)
		servico := lifecycle.NovoServico[*model.Perfil](mockRepo, &ganchosTeste{}, logger).
			ComRelogio(relogioFixo(agora))

		anterior := &model.Perfil{ID: 3, Nome: model.PerfilUsuario}
		anterior.DataInclusao = inclusao

		mockRepo.On("ConsultarPorID", mock.Anything, uint(3)).
			Return(anterior, true, nil).Once()
		mockRepo.On("Salvar", mock.Anything, mock.AnythingOfType("*model.Perfil")).
			Run(func(args mock.Arguments) {
				salvo := args.Get(1).(*model.Perfil)
				assert.Equal(t, inclusao, salvo.DataInclusao)
				assert.Equal(t, agora, salvo.DataAlteracao)
			}).
			Return(anterior, nil).Once()

		_, err := servico.Salvar(ctx, &model.Perfil{ID: 3, Nome: model.PerfilUsuario}, nil)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("entidade inexistente", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo := new(mocks.MockPerfilRepository)
		servico := lifecycle.NovoServico[*model.Perfil](mockRepo, &ganchosTeste{}, logger)

		mockRepo.On("ConsultarPorID", mock.Anything, uint(99)).
			Return(nil, false, nil).Once()

		_, err := servico.Salvar(ctx, &model.Perfil{ID: 99, Nome: model.PerfilUsuario}, nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.EqualError(t, err, apperrors.MsgEntidadeNaoEncontrada)
	})
}

func TestServico_SalvarEntidade_ConflitoDeVersao(t *testing.T) {
	logger := testutils.TestLogger(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	mockRepo := new(mocks.MockPerfilRepository)
	servico := lifecycle.NovoServico[*model.Perfil](mockRepo, &ganchosTeste{}, logger)

	mockRepo.On("Salvar", mock.Anything, mock.AnythingOfType("*model.Perfil")).
		Return(nil, repository.ErrVersaoConflitante).Once()

	_, err := servico.SalvarEntidade(ctx, &model.Perfil{ID: 1, Nome: model.PerfilAdmin})

	require.Error(t, err)
	assert.True(t, apperrors.IsStale(err))
	assert.EqualError(t, err, apperrors.MsgEntidadeJaAlterada)
}

func TestServico_SalvarEntidade_ErroNaoTraduzido(t *testing.T) {
	logger := testutils.TestLogger(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	falha := errors.New("conexão recusada")
	mockRepo := new(mocks.MockPerfilRepository)
	servico := lifecycle.NovoServico[*model.Perfil](mockRepo, &ganchosTeste{}, logger)

	mockRepo.On("Salvar", mock.Anything, mock.AnythingOfType("*model.Perfil")).
		Return(nil, falha).Once()

	_, err := servico.SalvarEntidade(ctx, &model.Perfil{ID: 1, Nome: model.PerfilAdmin})

	require.Error(t, err)
	assert.Equal(t, falha, err)
	assert.False(t, apperrors.IsStale(err))
}

func TestServico_Excluir(t *testing.T) {
	logger := testutils.TestLogger(t)
	agora := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("desativa e grava a data de exclusão", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo := new(mocks.MockPerfilRepository)
		servico := lifecycle.NovoServico[*model.Perfil](mockRepo, &ganchosTeste{}, logger).
			ComRelogio(relogioFixo(agora))

		perfil := &model.Perfil{ID: 4, Nome: model.PerfilUsuario}
		perfil.Ativo = true

		mockRepo.On("ConsultarPorID", mock.Anything, uint(4)).
			Return(perfil, true, nil).Once()
		mockRepo.On("Salvar", mock.Anything, mock.AnythingOfType("*model.Perfil")).
			Run(func(args mock.Arguments) {
				salvo := args.Get(1).(*model.Perfil)
				assert.False(t, salvo.Ativo)
				require.NotNil(t, salvo.DataExclusao)
				assert.Equal(t, agora, *salvo.DataExclusao)
			}).
			Return(perfil, nil).Once()

		err := servico.Excluir(ctx, 4, nil)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "DeletarPorID")
	})

	t.Run("entidade inexistente", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo := new(mocks.MockPerfilRepository)
		servico := lifecycle.NovoServico[*model.Perfil](mockRepo, &ganchosTeste{}, logger)

		mockRepo.On("ConsultarPorID", mock.Anything, uint(404)).
			Return(nil, false, nil).Once()

		err := servico.Excluir(ctx, 404, nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("validação de exclusão bloqueia a escrita", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockRepo := new(mocks.MockPerfilRepository)
		ganchos := &ganchosTeste{
			validarExclusao: func(ctx context.Context, p *model.Perfil) error {
				return apperrors.Forbidden("")
			},
		}
		servico := lifecycle.NovoServico[*model.Perfil](mockRepo, ganchos, logger)

		mockRepo.On("ConsultarPorID", mock.Anything, uint(4)).
			Return(&model.Perfil{ID: 4}, true, nil).Once()

		err := servico.Excluir(ctx, 4, nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsForbidden(err))
		mockRepo.AssertNotCalled(t, "Salvar")
	})
}

func TestServico_Deletar(t *testing.T) {
	logger := testutils.TestLogger(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	mockRepo := new(mocks.MockPerfilRepository)
	servico := lifecycle.NovoServico[*model.Perfil](mockRepo, &ganchosTeste{}, logger)

	mockRepo.On("ConsultarPorID", mock.Anything, uint(8)).
		Return(&model.Perfil{ID: 8, Nome: model.PerfilUsuario}, true, nil).Once()
	mockRepo.On("DeletarPorID", mock.Anything, uint(8)).
		Return(nil).Once()

	err := servico.Deletar(ctx, 8, nil)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Salvar")
}

func TestServico_ExcluirSemValidacao(t *testing.T) {
	logger := testutils.TestLogger(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	validacaoChamada := false
	ganchos := &ganchosTeste{
		validarExclusao: func(ctx context.Context, p *model.Perfil) error {
			validacaoChamada = true
			return apperrors.Forbidden("")
		},
	}

	mockRepo := new(mocks.MockPerfilRepository)
	servico := lifecycle.NovoServico[*model.Perfil](mockRepo, ganchos, logger)

	perfil := &model.Perfil{ID: 2, Nome: model.PerfilUsuario}
	perfil.Ativo = true

	mockRepo.On("ConsultarPorID", mock.Anything, uint(2)).
		Return(perfil, true, nil).Once()
	mockRepo.On("Salvar", mock.Anything, mock.AnythingOfType("*model.Perfil")).
		Return(perfil, nil).Once()

	err := servico.ExcluirSemValidacao(ctx, 2, nil)

	require.NoError(t, err)
	assert.False(t, validacaoChamada)
	mockRepo.AssertExpectations(t)
}
