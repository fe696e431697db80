package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zlimaaa/base-api-go/internal/domain/model"
)

// MockUsuarioRepository é um mock para o repository.UsuarioRepository
type MockUsuarioRepository struct {
	mock.Mock
}

func (m *MockUsuarioRepository) ConsultarPorID(ctx context.Context, id uint) (*model.Usuario, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Usuario), args.Bool(1), args.Error(2)
}

func (m *MockUsuarioRepository) ConsultarAtivoPorID(ctx context.Context, id uint) (*model.Usuario, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Usuario), args.Bool(1), args.Error(2)
}

func (m *MockUsuarioRepository) ConsultarAtivoPorLogin(ctx context.Context, login string) (*model.Usuario, bool, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Usuario), args.Bool(1), args.Error(2)
}

func (m *MockUsuarioRepository) ConsultarAtivos(ctx context.Context) ([]*model.Usuario, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) ContarAtivosPorEmailExcluindoID(ctx context.Context, email string, id uint) (int64, error) {
	args := m.Called(ctx, email, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsuarioRepository) ContarAtivosPorLoginExcluindoID(ctx context.Context, login string, id uint) (int64, error) {
	args := m.Called(ctx, login, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsuarioRepository) Salvar(ctx context.Context, usuario *model.Usuario) (*model.Usuario, error) {
	args := m.Called(ctx, usuario)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) DeletarPorID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
