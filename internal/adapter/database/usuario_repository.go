package database

import (
	"context"
	"errors"

	"github.com/zlimaaa/base-api-go/internal/domain/model"
	"github.com/zlimaaa/base-api-go/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UsuarioRepository implementa o contrato de persistência do usuário sobre o
// GORM. Toda escrita roda em uma única transação; o conflito de versão é
// sinalizado com repository.ErrVersaoConflitante.
type UsuarioRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUsuarioRepository cria o repositório de usuários
func NewUsuarioRepository(db *gorm.DB, logger *zap.Logger) *UsuarioRepository {
	return &UsuarioRepository{db: db, logger: logger}
}

var _ repository.UsuarioRepository = (*UsuarioRepository)(nil)

// ConsultarPorID busca o usuário pelo id, ativo ou não
func (r *UsuarioRepository) ConsultarPorID(ctx context.Context, id uint) (*model.Usuario, bool, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).Preload("Perfis").First(&usuario, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &usuario, true, nil
}

// ConsultarAtivoPorID busca o usuário ativo pelo id
func (r *UsuarioRepository) ConsultarAtivoPorID(ctx context.Context, id uint) (*model.Usuario, bool, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).Preload("Perfis").
		Where("ativo = ?", true).
		First(&usuario, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &usuario, true, nil
}

// ConsultarAtivoPorLogin busca o usuário ativo pelo login, sensível a
// maiúsculas conforme armazenado
func (r *UsuarioRepository) ConsultarAtivoPorLogin(ctx context.Context, login string) (*model.Usuario, bool, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).Preload("Perfis").
		Where("login = ? AND ativo = ?", login, true).
		First(&usuario).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &usuario, true, nil
}

// ConsultarAtivos lista os usuários ativos na ordem devolvida pelo banco
func (r *UsuarioRepository) ConsultarAtivos(ctx context.Context) ([]*model.Usuario, error) {
	var usuarios []*model.Usuario
	err := r.db.WithContext(ctx).Preload("Perfis").
		Where("ativo = ?", true).
		Find(&usuarios).Error
	if err != nil {
		return nil, err
	}
	return usuarios, nil
}

// ContarAtivosPorEmailExcluindoID conta usuários ativos com o email, exceto o
// próprio id
func (r *UsuarioRepository) ContarAtivosPorEmailExcluindoID(ctx context.Context, email string, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("email = ? AND ativo = ? AND id <> ?", email, true, id).
		Count(&count).Error
	return count, err
}

// ContarAtivosPorLoginExcluindoID conta usuários ativos com o login, exceto o
// próprio id
func (r *UsuarioRepository) ContarAtivosPorLoginExcluindoID(ctx context.Context, login string, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("login = ? AND ativo = ? AND id <> ?", login, true, id).
		Count(&count).Error
	return count, err
}

// Salvar insere ou altera o usuário junto com suas associações de perfil em
// uma única transação. A alteração é guardada pela versão lida: nenhuma linha
// afetada significa que outra transação alterou o registro primeiro.
func (r *UsuarioRepository) Salvar(ctx context.Context, usuario *model.Usuario) (*model.Usuario, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if usuario.ID == 0 {
			usuario.Versao = 1
			return tx.Create(usuario).Error
		}

		versaoLida := usuario.Versao
		usuario.Versao = versaoLida + 1

		// Updates não tem fallback de criação: zero linhas afetadas
		// significa que a versão lida já foi superada
		resultado := tx.Model(usuario).
			Where("versao = ?", versaoLida).
			Select("*").
			Omit(clause.Associations).
			Updates(usuario)
		if resultado.Error != nil {
			return resultado.Error
		}
		if resultado.RowsAffected == 0 {
			return repository.ErrVersaoConflitante
		}

		return tx.Model(usuario).Association("Perfis").Replace(usuario.Perfis)
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersaoConflitante) {
			r.logger.Warn("conflito de versão ao salvar usuário", zap.Uint("id", usuario.ID))
		}
		return nil, err
	}
	return usuario, nil
}

// DeletarPorID remove fisicamente o usuário e suas associações de perfil
func (r *UsuarioRepository) DeletarPorID(ctx context.Context, id uint) error {
	usuario := model.Usuario{ID: id}
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&usuario).Error
}
