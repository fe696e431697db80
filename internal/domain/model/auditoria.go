package model

import "time"

// Auditoria reúne os campos de ciclo de vida compartilhados por toda entidade
// persistida. A sequência de mutação destes campos pertence exclusivamente ao
// template de ciclo de vida (internal/app/lifecycle): DataInclusao é gravada
// uma única vez na primeira persistência, DataAlteracao a cada persistência e
// DataExclusao apenas na exclusão lógica.
type Auditoria struct {
	Ativo         bool       `gorm:"not null;default:false" json:"ativo"`
	DataInclusao  time.Time  `json:"dataInclusao"`
	DataAlteracao time.Time  `json:"dataAlteracao"`
	DataExclusao  *time.Time `json:"dataExclusao,omitempty"`

	// Versao guarda a versão lida da linha para o controle de concorrência
	// otimista do repositório.
	Versao int64 `gorm:"not null;default:0" json:"-"`

	// UsuarioLogado transporta o usuário atuante durante uma operação, para
	// as validações de permissão. Nunca é persistido.
	UsuarioLogado *Usuario `gorm:"-" json:"-"`
}

// GetAuditoria expõe os campos de auditoria para o template genérico.
// Promovido para toda entidade que embute Auditoria.
func (a *Auditoria) GetAuditoria() *Auditoria {
	return a
}

// VincularUsuarioLogado anexa o usuário atuante à entidade. Aceita nil para
// operações iniciadas pelo próprio sistema.
func (a *Auditoria) VincularUsuarioLogado(usuario *Usuario) {
	a.UsuarioLogado = usuario
}

// Entidade é o contrato mínimo exigido pelo template de ciclo de vida.
type Entidade interface {
	GetID() uint
	SetID(id uint)
	GetAuditoria() *Auditoria
}
