package model

// UsuarioDTO é a representação externa do usuário, trocada com a camada HTTP.
// Os campos de senha são somente-escrita: aceitos na entrada e nunca ecoados
// de volta (a conversão entidade→DTO os deixa vazios e omitempty os suprime).
type UsuarioDTO struct {
	ID               uint     `json:"id,omitempty"`
	Nome             string   `json:"nome,omitempty"`
	Login            string   `json:"login,omitempty"`
	Email            string   `json:"email,omitempty"`
	Senha            string   `json:"senha,omitempty"`
	ConfirmacaoSenha string   `json:"confirmacaoSenha,omitempty"`
	NovaSenha        string   `json:"novaSenha,omitempty"`
	Perfis           []string `json:"perfis,omitempty"`
}

// AlteracaoPerfisDTO descreve uma mutação do conjunto de perfis de um
// usuário. O alvo é localizado pelo id quando válido, senão pelo login.
// RemocaoPerfis escolhe entre mutação subtrativa e aditiva.
type AlteracaoPerfisDTO struct {
	IDUsuario     uint     `json:"idUsuario,omitempty"`
	Login         string   `json:"login,omitempty"`
	RemocaoPerfis bool     `json:"remocaoPerfis"`
	Perfis        []string `json:"perfis"`
}
