package database_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zlimaaa/base-api-go/internal/adapter/database"
	"github.com/zlimaaa/base-api-go/internal/domain/model"
	"github.com/zlimaaa/base-api-go/internal/domain/repository"
	"github.com/zlimaaa/base-api-go/internal/testutils"
	"gorm.io/gorm/logger"
)

func setupDatabase(t *testing.T) *database.Database {
	t.Helper()

	// Um banco em memória nomeado e com cache compartilhado: o DSN ":memory:"
	// cria um banco privado por conexão do pool e as tabelas migradas somem
	// nas conexões seguintes
	db, err := database.NewDatabase(context.Background(), database.Config{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     logger.Silent,
	}, testutils.TestLogger(t))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func novoUsuario(login, email string) *model.Usuario {
	usuario := &model.Usuario{
		Nome:   "Ricardo Lima",
		Login:  login,
		Email:  email,
		Senha:  "$2a$10$hash",
		Perfis: []model.Perfil{{Nome: model.PerfilUsuario}},
	}
	usuario.Ativo = true
	return usuario
}

func TestUsuarioRepository_SalvarEConsultar(t *testing.T) {
	db := setupDatabase(t)
	repo := database.NewUsuarioRepository(db.DB(), testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	salvo, err := repo.Salvar(ctx, novoUsuario("ricardo", "ricardo@gmail.com"))
	require.NoError(t, err)
	require.NotZero(t, salvo.ID)
	assert.Equal(t, int64(1), salvo.Versao)

	t.Run("consulta por id carrega os perfis", func(t *testing.T) {
		encontrado, ok, err := repo.ConsultarAtivoPorID(ctx, salvo.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "ricardo", encontrado.Login)
		require.Len(t, encontrado.Perfis, 1)
		assert.Equal(t, model.PerfilUsuario, encontrado.Perfis[0].Nome)
	})

	t.Run("consulta por login", func(t *testing.T) {
		encontrado, ok, err := repo.ConsultarAtivoPorLogin(ctx, "ricardo")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, salvo.ID, encontrado.ID)
	})

	t.Run("login inexistente não é erro", func(t *testing.T) {
		encontrado, ok, err := repo.ConsultarAtivoPorLogin(ctx, "fantasma")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, encontrado)
	})
}

func TestUsuarioRepository_ContagensDeUnicidade(t *testing.T) {
	db := setupDatabase(t)
	repo := database.NewUsuarioRepository(db.DB(), testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	salvo, err := repo.Salvar(ctx, novoUsuario("ricardo", "ricardo@gmail.com"))
	require.NoError(t, err)

	t.Run("email de outro usuário conta", func(t *testing.T) {
		count, err := repo.ContarAtivosPorEmailExcluindoID(ctx, "ricardo@gmail.com", 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("o próprio id é excluído da contagem", func(t *testing.T) {
		count, err := repo.ContarAtivosPorEmailExcluindoID(ctx, "ricardo@gmail.com", salvo.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		count, err = repo.ContarAtivosPorLoginExcluindoID(ctx, "ricardo", salvo.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("usuário inativo não conta", func(t *testing.T) {
		inativo, err := repo.Salvar(ctx, novoUsuario("joaosilva", "joao@gmail.com"))
		require.NoError(t, err)

		inativo.Ativo = false
		_, err = repo.Salvar(ctx, inativo)
		require.NoError(t, err)

		count, err := repo.ContarAtivosPorLoginExcluindoID(ctx, "joaosilva", 0)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestUsuarioRepository_ConflitoDeVersao(t *testing.T) {
	db := setupDatabase(t)
	repo := database.NewUsuarioRepository(db.DB(), testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	salvo, err := repo.Salvar(ctx, novoUsuario("ricardo", "ricardo@gmail.com"))
	require.NoError(t, err)

	primeiro, ok, err := repo.ConsultarAtivoPorID(ctx, salvo.ID)
	require.NoError(t, err)
	require.True(t, ok)

	segundo, ok, err := repo.ConsultarAtivoPorID(ctx, salvo.ID)
	require.NoError(t, err)
	require.True(t, ok)

	primeiro.Nome = "Ricardo Souza"
	_, err = repo.Salvar(ctx, primeiro)
	require.NoError(t, err)

	// A segunda escrita carrega a versão antiga e deve falhar
	segundo.Nome = "Ricardo Alves"
	_, err = repo.Salvar(ctx, segundo)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrVersaoConflitante)

	vigente, ok, err := repo.ConsultarAtivoPorID(ctx, salvo.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ricardo Souza", vigente.Nome)
	assert.Equal(t, int64(2), vigente.Versao)
}

func TestUsuarioRepository_AlteracaoDeAssociacoes(t *testing.T) {
	db := setupDatabase(t)
	repo := database.NewUsuarioRepository(db.DB(), testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	salvo, err := repo.Salvar(ctx, novoUsuario("ricardo", "ricardo@gmail.com"))
	require.NoError(t, err)

	usuario, ok, err := repo.ConsultarAtivoPorID(ctx, salvo.ID)
	require.NoError(t, err)
	require.True(t, ok)

	usuario.Perfis = append(usuario.Perfis, model.Perfil{Nome: model.PerfilAdmin})
	_, err = repo.Salvar(ctx, usuario)
	require.NoError(t, err)

	recarregado, ok, err := repo.ConsultarAtivoPorID(ctx, salvo.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, recarregado.Perfis, 2)
}

func TestUsuarioRepository_DeletarPorID(t *testing.T) {
	db := setupDatabase(t)
	repo := database.NewUsuarioRepository(db.DB(), testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	salvo, err := repo.Salvar(ctx, novoUsuario("ricardo", "ricardo@gmail.com"))
	require.NoError(t, err)

	require.NoError(t, repo.DeletarPorID(ctx, salvo.ID))

	_, ok, err := repo.ConsultarPorID(ctx, salvo.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPerfilRepository(t *testing.T) {
	db := setupDatabase(t)
	repo := database.NewPerfilRepository(db.DB(), testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	perfil := &model.Perfil{Nome: model.PerfilAdmin}
	perfil.Ativo = true

	salvo, err := repo.Salvar(ctx, perfil)
	require.NoError(t, err)
	require.NotZero(t, salvo.ID)

	t.Run("consulta ativa pelo nome", func(t *testing.T) {
		encontrado, ok, err := repo.ConsultarAtivoPorNome(ctx, model.PerfilAdmin)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, salvo.ID, encontrado.ID)
	})

	t.Run("nome inexistente não é erro", func(t *testing.T) {
		_, ok, err := repo.ConsultarAtivoPorNome(ctx, "INEXISTENTE")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("conflito de versão", func(t *testing.T) {
		desatualizado := &model.Perfil{ID: salvo.ID, Nome: "GERENTE"}
		desatualizado.Ativo = true
		desatualizado.Versao = 99

		_, err := repo.Salvar(ctx, desatualizado)
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrVersaoConflitante)

		// A escrita desatualizada não pode alterar nem recriar a linha
		vigente, ok, err := repo.ConsultarPorID(ctx, salvo.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, model.PerfilAdmin, vigente.Nome)
		assert.Equal(t, int64(1), vigente.Versao)
	})

	t.Run("remoção física", func(t *testing.T) {
		require.NoError(t, repo.DeletarPorID(ctx, salvo.ID))

		_, ok, err := repo.ConsultarPorID(ctx, salvo.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
