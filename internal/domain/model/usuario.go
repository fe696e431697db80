package model

// Usuario é a entidade de usuário do sistema. Login e email são únicos entre
// os usuários ativos; linhas excluídas logicamente não bloqueiam o reuso.
// A senha é sempre armazenada como hash, nunca em texto puro.
type Usuario struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Nome  string `gorm:"not null;size:60" json:"nome"`
	Login string `gorm:"not null;size:30;index" json:"login"`
	Email string `gorm:"not null;size:100;index" json:"email"`
	Senha string `gorm:"not null" json:"-"`

	// Perfis é carregado de forma antecipada pelo repositório. Após uma
	// criação bem-sucedida o usuário sempre possui ao menos um perfil.
	Perfis []Perfil `gorm:"many2many:usuario_perfil" json:"perfis"`

	Auditoria

	// Campos transientes dos fluxos de cadastro e troca de senha
	ConfirmacaoSenha string `gorm:"-" json:"-"`
	NovaSenha        string `gorm:"-" json:"-"`
}

// TableName define o nome da tabela
func (Usuario) TableName() string {
	return "usuarios"
}

func (u *Usuario) GetID() uint {
	return u.ID
}

func (u *Usuario) SetID(id uint) {
	u.ID = id
}

// PossuiPerfil indica se o usuário carrega um perfil com o nome informado
func (u *Usuario) PossuiPerfil(nome string) bool {
	for _, perfil := range u.Perfis {
		if perfil.Nome == nome {
			return true
		}
	}
	return false
}

// IsAdmin indica se o usuário carrega o perfil administrativo
func (u *Usuario) IsAdmin() bool {
	return u.PossuiPerfil(PerfilAdmin)
}

// AdicionarPerfil inclui o perfil no conjunto do usuário. Operação de
// conjunto idempotente, chaveada pelo nome: adicionar um perfil já presente
// não tem efeito.
func (u *Usuario) AdicionarPerfil(perfil Perfil) {
	if u.PossuiPerfil(perfil.Nome) {
		return
	}
	u.Perfis = append(u.Perfis, perfil)
}

// RemoverPerfil retira o perfil do conjunto do usuário. Remover um perfil
// ausente não tem efeito.
func (u *Usuario) RemoverPerfil(nome string) {
	restantes := u.Perfis[:0]
	for _, perfil := range u.Perfis {
		if perfil.Nome != nome {
			restantes = append(restantes, perfil)
		}
	}
	u.Perfis = restantes
}

// NomesPerfis devolve os nomes dos perfis atribuídos, na ordem de atribuição
func (u *Usuario) NomesPerfis() []string {
	nomes := make([]string, 0, len(u.Perfis))
	for _, perfil := range u.Perfis {
		nomes = append(nomes, perfil.Nome)
	}
	return nomes
}
