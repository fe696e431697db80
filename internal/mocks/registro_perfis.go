package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zlimaaa/base-api-go/internal/domain/model"
)

// MockRegistroPerfis é um mock para o usuario.RegistroPerfis
type MockRegistroPerfis struct {
	mock.Mock
}

func (m *MockRegistroPerfis) ConsultarOuCadastrarPeloNome(ctx context.Context, perfil *model.Perfil) (*model.Perfil, error) {
	args := m.Called(ctx, perfil)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Perfil), args.Error(1)
}
