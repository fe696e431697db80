package repository

import (
	"context"
	"errors"

	"github.com/zlimaaa/base-api-go/internal/domain/model"
)

// ErrVersaoConflitante é o sinal nativo do armazenamento para uma escrita
// cuja versão lida já foi alterada por outra transação. O template de ciclo
// de vida o traduz para o erro de domínio correspondente; nenhum outro erro
// do armazenamento é traduzido.
var ErrVersaoConflitante = errors.New("versão da entidade em conflito")

// UsuarioRepository é o contrato de persistência do usuário. Consultas de
// leitura devolvem (entidade, encontrado, erro): ausência de linha não é um
// erro nesta camada.
type UsuarioRepository interface {
	ConsultarPorID(ctx context.Context, id uint) (*model.Usuario, bool, error)
	ConsultarAtivoPorID(ctx context.Context, id uint) (*model.Usuario, bool, error)
	ConsultarAtivoPorLogin(ctx context.Context, login string) (*model.Usuario, bool, error)
	ConsultarAtivos(ctx context.Context) ([]*model.Usuario, error)
	ContarAtivosPorEmailExcluindoID(ctx context.Context, email string, id uint) (int64, error)
	ContarAtivosPorLoginExcluindoID(ctx context.Context, login string, id uint) (int64, error)
	Salvar(ctx context.Context, usuario *model.Usuario) (*model.Usuario, error)
	DeletarPorID(ctx context.Context, id uint) error
}

// PerfilRepository é o contrato de persistência do perfil
type PerfilRepository interface {
	ConsultarPorID(ctx context.Context, id uint) (*model.Perfil, bool, error)
	ConsultarAtivoPorNome(ctx context.Context, nome string) (*model.Perfil, bool, error)
	Salvar(ctx context.Context, perfil *model.Perfil) (*model.Perfil, error)
	DeletarPorID(ctx context.Context, id uint) error
}
