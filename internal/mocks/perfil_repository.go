package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zlimaaa/base-api-go/internal/domain/model"
)

// MockPerfilRepository é um mock para o repository.PerfilRepository
type MockPerfilRepository struct {
	mock.Mock
}

func (m *MockPerfilRepository) ConsultarPorID(ctx context.Context, id uint) (*model.Perfil, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Perfil), args.Bool(1), args.Error(2)
}

func (m *MockPerfilRepository) ConsultarAtivoPorNome(ctx context.Context, nome string) (*model.Perfil, bool, error) {
	args := m.Called(ctx, nome)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Perfil), args.Bool(1), args.Error(2)
}

func (m *MockPerfilRepository) Salvar(ctx context.Context, perfil *model.Perfil) (*model.Perfil, error) {
	args := m.Called(ctx, perfil)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Perfil), args.Error(1)
}

func (m *MockPerfilRepository) DeletarPorID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
