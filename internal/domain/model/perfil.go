package model

// Nomes de perfil reconhecidos pelo sistema
const (
	PerfilAdmin   = "ADMIN"
	PerfilUsuario = "USUARIO"
)

// Perfil representa um papel atribuível a usuários (muitos-para-muitos).
// Perfis são deduplicados pelo nome: no máximo uma linha ativa por nome,
// garantida pelo registro de perfis (internal/app/perfil).
type Perfil struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"not null;size:30;index" json:"nome"`
	Auditoria
}

// TableName define o nome da tabela
func (Perfil) TableName() string {
	return "perfis"
}

func (p *Perfil) GetID() uint {
	return p.ID
}

func (p *Perfil) SetID(id uint) {
	p.ID = id
}
