// Package usuario implementa as regras de domínio do usuário sobre o
// template genérico de ciclo de vida: validação de campos, unicidade de
// login e email entre usuários ativos, vínculo de perfis e verificações de
// permissão (administrador ou o próprio usuário).
package usuario

import (
	"context"

	"github.com/zlimaaa/base-api-go/internal/app/lifecycle"
	"github.com/zlimaaa/base-api-go/internal/domain/model"
	"github.com/zlimaaa/base-api-go/internal/domain/repository"
	apperrors "github.com/zlimaaa/base-api-go/pkg/errors"
	"github.com/zlimaaa/base-api-go/pkg/security"
	"go.uber.org/zap"
)

// RegistroPerfis resolve um perfil nomeado para o seu registro persistido e
// deduplicado, cadastrando-o na primeira utilização
type RegistroPerfis interface {
	ConsultarOuCadastrarPeloNome(ctx context.Context, perfil *model.Perfil) (*model.Perfil, error)
}

// Service é a especialização do template de ciclo de vida para o usuário
type Service struct {
	lifecycle.GanchosBase[*model.Usuario]

	repo   repository.UsuarioRepository
	perfis RegistroPerfis
	ciclo  *lifecycle.Servico[*model.Usuario]
	logger *zap.Logger
}

// NewService cria o serviço de usuários
func NewService(repo repository.UsuarioRepository, perfis RegistroPerfis, logger *zap.Logger) *Service {
	s := &Service{
		repo:   repo,
		perfis: perfis,
		logger: logger,
	}
	s.ciclo = lifecycle.NovoServico[*model.Usuario](repo, s, logger)
	return s
}

// Ciclo expõe o template de ciclo de vida, para testes com relógio injetado
func (s *Service) Ciclo() *lifecycle.Servico[*model.Usuario] {
	return s.ciclo
}

// CriarUsuario cadastra um novo usuário a partir da representação externa.
// Operação sem usuário atuante: o autocadastro é permitido.
func (s *Service) CriarUsuario(ctx context.Context, dto model.UsuarioDTO) (model.UsuarioDTO, error) {
	entidade := s.ConverterDTOParaEntidade(dto)

	entidade, err := s.ciclo.Salvar(ctx, entidade, nil)
	if err != nil {
		return model.UsuarioDTO{}, err
	}

	s.logger.Info("usuário cadastrado",
		zap.Uint("id", entidade.ID), zap.String("login", entidade.Login))

	return s.ConverterEntidadeParaDTO(entidade), nil
}

// SalvarUsuario altera um usuário existente. Quando há usuário atuante, a
// permissão é verificada antes de qualquer escrita; os campos não informados
// permanecem intocados na linha armazenada (semântica de alteração parcial).
func (s *Service) SalvarUsuario(ctx context.Context, dto model.UsuarioDTO, usuarioLogado *model.Usuario) (model.UsuarioDTO, error) {
	entidade := s.ConverterDTOParaEntidade(dto)

	if usuarioLogado != nil {
		if err := s.validarPerfilUsuarioLogado(entidade, usuarioLogado); err != nil {
			return model.UsuarioDTO{}, err
		}
	}

	entidade, err := s.validarCamposAlterados(ctx, entidade)
	if err != nil {
		return model.UsuarioDTO{}, err
	}

	entidade, err = s.ciclo.Salvar(ctx, entidade, usuarioLogado)
	if err != nil {
		return model.UsuarioDTO{}, err
	}

	return s.ConverterEntidadeParaDTO(entidade), nil
}

// ConsultarTodos lista todos os usuários ativos, na ordem devolvida pelo
// armazenamento
func (s *Service) ConsultarTodos(ctx context.Context) ([]model.UsuarioDTO, error) {
	usuarios, err := s.repo.ConsultarAtivos(ctx)
	if err != nil {
		return nil, err
	}
	return s.ConverterListaEntidadeParaListaDTO(usuarios), nil
}

// Consultar busca um usuário ativo pelo identificador
func (s *Service) Consultar(ctx context.Context, id uint) (model.UsuarioDTO, error) {
	usuario, encontrado, err := s.repo.ConsultarAtivoPorID(ctx, id)
	if err != nil {
		return model.UsuarioDTO{}, err
	}
	if !usuarioEncontrado(usuario, encontrado) {
		return model.UsuarioDTO{}, apperrors.NotFound(MsgUsuarioNaoEncontrado)
	}
	return s.ConverterEntidadeParaDTO(usuario), nil
}

// ConsultarPorLogin busca a entidade de um usuário ativo pelo login
func (s *Service) ConsultarPorLogin(ctx context.Context, login string) (*model.Usuario, error) {
	usuario, encontrado, err := s.repo.ConsultarAtivoPorLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if !usuarioEncontrado(usuario, encontrado) {
		return nil, apperrors.NotFound(MsgLoginInvalido)
	}
	return usuario, nil
}

// ConsultarEntidadePorID busca a entidade de um usuário ativo pelo
// identificador, com os perfis carregados. Usada pela camada de autenticação
// para resolver o usuário atuante.
func (s *Service) ConsultarEntidadePorID(ctx context.Context, id uint) (*model.Usuario, error) {
	usuario, encontrado, err := s.repo.ConsultarAtivoPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !usuarioEncontrado(usuario, encontrado) {
		return nil, apperrors.NotFound(MsgUsuarioNaoEncontrado)
	}
	return usuario, nil
}

// Excluir faz a exclusão lógica do usuário, com verificação de permissão
func (s *Service) Excluir(ctx context.Context, id uint, usuarioLogado *model.Usuario) error {
	return s.ciclo.Excluir(ctx, id, usuarioLogado)
}

// Deletar faz a exclusão física do usuário, com verificação de permissão
func (s *Service) Deletar(ctx context.Context, id uint, usuarioLogado *model.Usuario) error {
	return s.ciclo.Deletar(ctx, id, usuarioLogado)
}

// AlterarPerfisUsuario aplica uma mutação aditiva ou subtrativa ao conjunto
// de perfis do usuário alvo, localizado pelo id quando válido, senão pelo
// login. Alterar o próprio conjunto de perfis é proibido mesmo para
// administradores; a verificação dispara antes de qualquer consideração de
// papel. As mutações são operações de conjunto idempotentes chaveadas pelo
// nome do perfil.
func (s *Service) AlterarPerfisUsuario(ctx context.Context, dto model.AlteracaoPerfisDTO, usuarioLogado *model.Usuario) (model.AlteracaoPerfisDTO, error) {
	var usuario *model.Usuario

	if dto.IDUsuario > 0 {
		alvo, encontrado, err := s.repo.ConsultarAtivoPorID(ctx, dto.IDUsuario)
		if err != nil {
			return model.AlteracaoPerfisDTO{}, err
		}
		if !usuarioEncontrado(alvo, encontrado) {
			return model.AlteracaoPerfisDTO{}, apperrors.NotFound(MsgUsuarioNaoEncontrado)
		}
		usuario = alvo
	} else {
		alvo, err := s.ConsultarPorLogin(ctx, dto.Login)
		if err != nil {
			return model.AlteracaoPerfisDTO{}, err
		}
		usuario = alvo
	}

	if usuarioLogado != nil && usuario.ID == usuarioLogado.ID {
		return model.AlteracaoPerfisDTO{}, apperrors.Forbidden(MsgProibidoAlterarProprioPerfil)
	}

	if dto.RemocaoPerfis {
		for _, nome := range dto.Perfis {
			usuario.RemoverPerfil(nome)
		}
	} else {
		for _, nome := range dto.Perfis {
			canonico, err := s.perfis.ConsultarOuCadastrarPeloNome(ctx, &model.Perfil{Nome: nome})
			if err != nil {
				return model.AlteracaoPerfisDTO{}, err
			}
			usuario.AdicionarPerfil(*canonico)
		}
	}

	usuario, err := s.ciclo.SalvarEntidade(ctx, usuario)
	if err != nil {
		return model.AlteracaoPerfisDTO{}, err
	}

	dto.IDUsuario = usuario.ID
	dto.Login = usuario.Login
	dto.Perfis = usuario.NomesPerfis()

	return dto, nil
}

// ValidarInclusao valida os campos obrigatórios do cadastro e, em caso de
// sucesso, substitui a senha em texto puro pelo hash.
func (s *Service) ValidarInclusao(ctx context.Context, entidade *model.Usuario) error {
	if !nomeValido(entidade.Nome) {
		return apperrors.Validation(MsgNomeForaDoPadrao)
	}

	if !loginValido(entidade.Login) {
		return apperrors.Validation(MsgLoginForaDoPadrao)
	}

	if !emailValido(entidade.Email) {
		return apperrors.Validation(MsgEmailInvalido)
	}

	if entidade.Senha != entidade.ConfirmacaoSenha {
		return apperrors.Validation(MsgSenhaConfirmacaoDiferente)
	}

	hash, err := security.GerarHashSenha(entidade.Senha)
	if err != nil {
		return err
	}
	entidade.Senha = hash

	return nil
}

// ValidarUnicidade garante que email e login não pertencem a outro usuário
// ativo. Um id ausente conta como o sentinela zero, que nunca corresponde a
// uma linha real.
func (s *Service) ValidarUnicidade(ctx context.Context, entidade *model.Usuario) error {
	count, err := s.repo.ContarAtivosPorEmailExcluindoID(ctx, entidade.Email, entidade.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict(MsgEmailJaCadastrado)
	}

	count, err = s.repo.ContarAtivosPorLoginExcluindoID(ctx, entidade.Login, entidade.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict(MsgLoginJaCadastrado)
	}

	return nil
}

// ValidarExclusao verifica a permissão do usuário atuante antes da exclusão
func (s *Service) ValidarExclusao(ctx context.Context, entidade *model.Usuario) error {
	if logado := entidade.GetAuditoria().UsuarioLogado; logado != nil {
		return s.validarPerfilUsuarioLogado(entidade, logado)
	}
	return nil
}

// ResolverPreDependencias vincula os perfis ao usuário antes da primeira
// persistência
func (s *Service) ResolverPreDependencias(ctx context.Context, entidade *model.Usuario) error {
	return s.vincularPerfisAoUsuario(ctx, entidade)
}

// vincularPerfisAoUsuario garante que toda associação armazenada aponta para
// registros gerenciados pelo registro de perfis, nunca duplicatas ad hoc. Um
// usuário sem perfis recebe o perfil padrão de usuário.
func (s *Service) vincularPerfisAoUsuario(ctx context.Context, usuario *model.Usuario) error {
	// Em caso de cadastro, o usuário inicia com o perfil padrão
	if len(usuario.Perfis) == 0 {
		usuario.Perfis = []model.Perfil{{Nome: model.PerfilUsuario}}
	}

	canonicos := make([]model.Perfil, 0, len(usuario.Perfis))
	for i := range usuario.Perfis {
		canonico, err := s.perfis.ConsultarOuCadastrarPeloNome(ctx, &usuario.Perfis[i])
		if err != nil {
			return err
		}
		canonicos = append(canonicos, *canonico)
	}
	usuario.Perfis = canonicos

	return nil
}

// validarCamposAlterados resolve a alteração parcial: reconsulta a linha
// ativa armazenada e aplica sobre ela apenas os campos informados, validando
// cada um. Campo vazio significa não informado e permanece intocado.
func (s *Service) validarCamposAlterados(ctx context.Context, entidade *model.Usuario) (*model.Usuario, error) {
	armazenado, encontrado, err := s.repo.ConsultarAtivoPorID(ctx, entidade.ID)
	if err != nil {
		return nil, err
	}
	if !usuarioEncontrado(armazenado, encontrado) {
		return nil, apperrors.NotFound(MsgUsuarioNaoEncontrado)
	}

	if entidade.Nome != "" {
		if !nomeValido(entidade.Nome) {
			return nil, apperrors.Validation(MsgNomeForaDoPadrao)
		}
		armazenado.Nome = entidade.Nome
	}

	if entidade.Email != "" {
		if !emailValido(entidade.Email) {
			return nil, apperrors.Validation(MsgEmailInvalido)
		}
		armazenado.Email = entidade.Email
	}

	if entidade.NovaSenha != "" {
		if err := s.validarTrocaDeSenha(entidade, armazenado.Senha); err != nil {
			return nil, err
		}
		armazenado.Senha = entidade.Senha
	}

	return armazenado, nil
}

// validarTrocaDeSenha confere a senha atual contra o hash armazenado e a nova
// senha contra a confirmação; em caso de sucesso deixa o hash da nova senha
// no campo Senha da entidade recebida.
func (s *Service) validarTrocaDeSenha(usuario *model.Usuario, hashSenhaAtual string) error {
	if !security.SenhasIdenticas(usuario.Senha, hashSenhaAtual) {
		return apperrors.Validation(MsgSenhaIncorreta)
	}

	if usuario.NovaSenha != usuario.ConfirmacaoSenha {
		return apperrors.Validation(MsgSenhaConfirmacaoDiferente)
	}

	hash, err := security.GerarHashSenha(usuario.NovaSenha)
	if err != nil {
		return err
	}
	usuario.Senha = hash

	return nil
}

// validarPerfilUsuarioLogado autoriza a operação quando o usuário atuante é
// administrador ou é o próprio alvo
func (s *Service) validarPerfilUsuarioLogado(usuario *model.Usuario, usuarioLogado *model.Usuario) error {
	if !usuarioLogado.IsAdmin() && usuario.ID != usuarioLogado.ID {
		return apperrors.Forbidden(MsgUsuarioSemPermissao)
	}
	return nil
}

// usuarioEncontrado aplica a invariante defensiva das consultas: além da
// presença da linha, o id carregado precisa ser não nulo, proteção contra um
// armazenamento que devolva um objeto sentinela parcialmente populado.
func usuarioEncontrado(usuario *model.Usuario, encontrado bool) bool {
	return encontrado && usuario != nil && usuario.ID != 0
}

// ConverterDTOParaEntidade faz a projeção campo a campo da representação
// externa para a entidade
func (s *Service) ConverterDTOParaEntidade(dto model.UsuarioDTO) *model.Usuario {
	perfis := make([]model.Perfil, 0, len(dto.Perfis))
	for _, nome := range dto.Perfis {
		perfis = append(perfis, model.Perfil{Nome: nome})
	}

	return &model.Usuario{
		ID:               dto.ID,
		Nome:             dto.Nome,
		Login:            dto.Login,
		Email:            dto.Email,
		Senha:            dto.Senha,
		ConfirmacaoSenha: dto.ConfirmacaoSenha,
		NovaSenha:        dto.NovaSenha,
		Perfis:           perfis,
	}
}

// ConverterEntidadeParaDTO projeta a entidade de volta para a representação
// externa. Os campos de senha nunca são ecoados.
func (s *Service) ConverterEntidadeParaDTO(entidade *model.Usuario) model.UsuarioDTO {
	return model.UsuarioDTO{
		ID:     entidade.ID,
		Nome:   entidade.Nome,
		Login:  entidade.Login,
		Email:  entidade.Email,
		Perfis: entidade.NomesPerfis(),
	}
}

// ConverterListaEntidadeParaListaDTO converte a lista de entidades
func (s *Service) ConverterListaEntidadeParaListaDTO(entidades []*model.Usuario) []model.UsuarioDTO {
	dtos := make([]model.UsuarioDTO, 0, len(entidades))
	for _, entidade := range entidades {
		dtos = append(dtos, s.ConverterEntidadeParaDTO(entidade))
	}
	return dtos
}
