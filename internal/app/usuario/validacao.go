package usuario

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Mensagens de validação e de regra de negócio do usuário
const (
	MsgUsuarioNaoEncontrado         = "Usuário não encontrado"
	MsgLoginInvalido                = "Login inválido"
	MsgNomeForaDoPadrao             = "O campo nome deve ter entre 3 e 20 caracteres"
	MsgLoginForaDoPadrao            = "O campo login deve ter entre 5 e 10 caracteres"
	MsgEmailInvalido                = "Email inválido"
	MsgSenhaConfirmacaoDiferente    = "Confirmação de senha diferente da senha"
	MsgSenhaIncorreta               = "Senha incorreta"
	MsgEmailJaCadastrado            = "Email informado já cadastrado"
	MsgLoginJaCadastrado            = "Login informado já cadastrado"
	MsgUsuarioSemPermissao          = "Usuário sem permissão"
	MsgProibidoAlterarProprioPerfil = "Proibido alterar o próprio perfil"
)

const (
	nomeTamanhoMinimo  = 3
	nomeTamanhoMaximo  = 20
	loginTamanhoMinimo = 5
	loginTamanhoMaximo = 10
)

func nomeValido(nome string) bool {
	tamanho := utf8.RuneCountInString(strings.TrimSpace(nome))
	return tamanho >= nomeTamanhoMinimo && tamanho <= nomeTamanhoMaximo
}

func loginValido(login string) bool {
	tamanho := utf8.RuneCountInString(login)
	return tamanho >= loginTamanhoMinimo && tamanho <= loginTamanhoMaximo
}

func emailValido(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	endereco, err := mail.ParseAddress(email)
	return err == nil && endereco.Address == email
}
