package database

import (
	"context"
	"errors"

	"github.com/zlimaaa/base-api-go/internal/domain/model"
	"github.com/zlimaaa/base-api-go/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PerfilRepository implementa o contrato de persistência do perfil sobre o GORM
type PerfilRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPerfilRepository cria o repositório de perfis
func NewPerfilRepository(db *gorm.DB, logger *zap.Logger) *PerfilRepository {
	return &PerfilRepository{db: db, logger: logger}
}

var _ repository.PerfilRepository = (*PerfilRepository)(nil)

// ConsultarPorID busca o perfil pelo id, ativo ou não
func (r *PerfilRepository) ConsultarPorID(ctx context.Context, id uint) (*model.Perfil, bool, error) {
	var perfil model.Perfil
	err := r.db.WithContext(ctx).First(&perfil, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &perfil, true, nil
}

// ConsultarAtivoPorNome busca o perfil ativo pelo nome
func (r *PerfilRepository) ConsultarAtivoPorNome(ctx context.Context, nome string) (*model.Perfil, bool, error) {
	var perfil model.Perfil
	err := r.db.WithContext(ctx).
		Where("nome = ? AND ativo = ?", nome, true).
		First(&perfil).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &perfil, true, nil
}

// Salvar insere ou altera o perfil, com a alteração guardada pela versão lida
func (r *PerfilRepository) Salvar(ctx context.Context, perfil *model.Perfil) (*model.Perfil, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if perfil.ID == 0 {
			perfil.Versao = 1
			return tx.Create(perfil).Error
		}

		versaoLida := perfil.Versao
		perfil.Versao = versaoLida + 1

		// Updates não tem fallback de criação: zero linhas afetadas
		// significa que a versão lida já foi superada
		resultado := tx.Model(perfil).
			Where("versao = ?", versaoLida).
			Select("*").
			Updates(perfil)
		if resultado.Error != nil {
			return resultado.Error
		}
		if resultado.RowsAffected == 0 {
			return repository.ErrVersaoConflitante
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return perfil, nil
}

// DeletarPorID remove fisicamente o perfil
func (r *PerfilRepository) DeletarPorID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Perfil{}, id).Error
}
