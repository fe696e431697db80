package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	adapterhttp "github.com/zlimaaa/base-api-go/internal/adapter/http"
	"github.com/zlimaaa/base-api-go/internal/app/usuario"
	"github.com/zlimaaa/base-api-go/internal/domain/model"
	"github.com/zlimaaa/base-api-go/internal/mocks"
	"github.com/zlimaaa/base-api-go/internal/testutils"
)

type handlerFixture struct {
	repo   *mocks.MockUsuarioRepository
	perfis *mocks.MockRegistroPerfis
}

func setupHandler(t *testing.T) (*adapterhttp.UsuarioHandler, *handlerFixture) {
	t.Helper()

	logger := testutils.TestLogger(t)
	fixture := &handlerFixture{
		repo:   new(mocks.MockUsuarioRepository),
		perfis: new(mocks.MockRegistroPerfis),
	}

	service := usuario.NewService(fixture.repo, fixture.perfis, logger)
	return adapterhttp.NewUsuarioHandler(service, nil, logger), fixture
}

func TestUsuarioHandler_Criar(t *testing.T) {
	t.Run("cadastro com sucesso", func(t *testing.T) {
		handler, fixture := setupHandler(t)
		router := testutils.SetupTestRouter(t)
		router.POST("/api/usuarios", handler.Criar)

		perfilPadrao := &model.Perfil{ID: 2, Nome: model.PerfilUsuario}
		perfilPadrao.Ativo = true

		fixture.repo.On("ContarAtivosPorEmailExcluindoID", mock.Anything, "ricardo@gmail.com", uint(0)).
			Return(int64(0), nil).Once()
		fixture.repo.On("ContarAtivosPorLoginExcluindoID", mock.Anything, "ricardo", uint(0)).
			Return(int64(0), nil).Once()
		fixture.perfis.On("ConsultarOuCadastrarPeloNome", mock.Anything, mock.AnythingOfType("*model.Perfil")).
			Return(perfilPadrao, nil).Once()
		fixture.repo.On("Salvar", mock.Anything, mock.AnythingOfType("*model.Usuario")).
			Return(&model.Usuario{ID: 1, Login: "ricardo"}, nil).Once()

		corpo := model.UsuarioDTO{
			Nome:             "Ricardo Lima",
			Login:            "ricardo",
			Email:            "ricardo@gmail.com",
			Senha:            "123456",
			ConfirmacaoSenha: "123456",
		}

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/usuarios", corpo, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
		testutils.RequireJSONContentType(t, resp)

		var dto model.UsuarioDTO
		testutils.ParseResponse(t, resp, &dto)
		assert.Equal(t, uint(1), dto.ID)
		assert.Empty(t, dto.Senha)
		fixture.repo.AssertExpectations(t)
	})

	t.Run("validação devolve 400 com a mensagem de negócio", func(t *testing.T) {
		handler, _ := setupHandler(t)
		router := testutils.SetupTestRouter(t)
		router.POST("/api/usuarios", handler.Criar)

		corpo := model.UsuarioDTO{
			Nome:             "Ri",
			Login:            "ricardo",
			Email:            "ricardo@gmail.com",
			Senha:            "123456",
			ConfirmacaoSenha: "123456",
		}

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/usuarios", corpo, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, usuario.MsgNomeForaDoPadrao, body["error"])
	})

	t.Run("email duplicado devolve 409", func(t *testing.T) {
		handler, fixture := setupHandler(t)
		router := testutils.SetupTestRouter(t)
		router.POST("/api/usuarios", handler.Criar)

		fixture.repo.On("ContarAtivosPorEmailExcluindoID", mock.Anything, "ricardo@gmail.com", uint(0)).
			Return(int64(1), nil).Once()

		corpo := model.UsuarioDTO{
			Nome:             "Ricardo Lima",
			Login:            "ricardo",
			Email:            "ricardo@gmail.com",
			Senha:            "123456",
			ConfirmacaoSenha: "123456",
		}

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/usuarios", corpo, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusConflict)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, usuario.MsgEmailJaCadastrado, body["error"])
	})

	t.Run("json malformado devolve 400", func(t *testing.T) {
		handler, _ := setupHandler(t)
		router := testutils.SetupTestRouter(t)
		router.POST("/api/usuarios", handler.Criar)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/usuarios", "{invalido", nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})
}

func TestUsuarioHandler_Consultar(t *testing.T) {
	t.Run("usuário encontrado", func(t *testing.T) {
		handler, fixture := setupHandler(t)
		router := testutils.SetupTestRouter(t)
		router.GET("/api/usuarios/:id", handler.Consultar)

		encontrado := &model.Usuario{ID: 1, Nome: "Ricardo Lima", Login: "ricardo", Email: "ricardo@gmail.com"}
		fixture.repo.On("ConsultarAtivoPorID", mock.Anything, uint(1)).
			Return(encontrado, true, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/usuarios/1", nil, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var dto model.UsuarioDTO
		testutils.ParseResponse(t, resp, &dto)
		assert.Equal(t, "ricardo", dto.Login)
	})

	t.Run("usuário inexistente devolve 404", func(t *testing.T) {
		handler, fixture := setupHandler(t)
		router := testutils.SetupTestRouter(t)
		router.GET("/api/usuarios/:id", handler.Consultar)

		fixture.repo.On("ConsultarAtivoPorID", mock.Anything, uint(9)).
			Return(nil, false, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/usuarios/9", nil, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, usuario.MsgUsuarioNaoEncontrado, body["error"])
	})

	t.Run("id não numérico devolve 400", func(t *testing.T) {
		handler, _ := setupHandler(t)
		router := testutils.SetupTestRouter(t)
		router.GET("/api/usuarios/:id", handler.Consultar)

		resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/usuarios/abc", nil, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})
}

func TestUsuarioHandler_Excluir(t *testing.T) {
	handler, fixture := setupHandler(t)
	router := testutils.SetupTestRouter(t)
	router.DELETE("/api/usuarios/:id", handler.Excluir)

	alvo := &model.Usuario{ID: 3, Login: "alvo"}
	alvo.Ativo = true

	fixture.repo.On("ConsultarPorID", mock.Anything, uint(3)).
		Return(alvo, true, nil).Once()
	fixture.repo.On("Salvar", mock.Anything, mock.AnythingOfType("*model.Usuario")).
		Return(alvo, nil).Once()

	resp := testutils.MakeRequest(t, router, http.MethodDelete, "/api/usuarios/3", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusNoContent)
	fixture.repo.AssertExpectations(t)
}
