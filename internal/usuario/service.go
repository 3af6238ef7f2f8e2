package usuario

import (
	"context"
	"errors"

	"github.com/depolicia/registros/internal/apierror"
	"github.com/depolicia/registros/internal/auth"
)

type repository interface {
	Create(ctx context.Context, u Usuario) (Usuario, error)
	FindByEmail(ctx context.Context, email string) (Usuario, error)
	FindByNome(ctx context.Context, nome string) (Usuario, error)
}

// Service concentra o fluxo de registro e autenticação de usuários.
type Service struct {
	repo repository
	jwt  *auth.JWTManager
}

func NewService(repo repository, jwt *auth.JWTManager) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Register cria a conta e já emite um access token para o novo usuário.
func (s *Service) Register(ctx context.Context, input NovoUsuario) (string, error) {
	if err := s.verificarDisponibilidade(ctx, input); err != nil {
		return "", err
	}

	hash, err := auth.Hash(input.Senha)
	if err != nil {
		return "", apierror.Internal("Erro ao registrar usuário.", err)
	}

	criado, err := s.repo.Create(ctx, Usuario{
		Nome:  input.Nome,
		Email: input.Email,
		Senha: hash,
	})
	if err != nil {
		return "", apierror.Internal("Erro ao registrar usuário.", err)
	}

	token, err := s.jwt.GenerateAccessToken(criado.ID, criado.Nome)
	if err != nil {
		return "", apierror.Internal("Erro ao registrar usuário.", err)
	}
	return token, nil
}

// Login autentica por email ou nome de usuário. Usuário inexistente e senha
// incorreta produzem a mesma resposta para não revelar contas cadastradas.
func (s *Service) Login(ctx context.Context, input Login) (string, error) {
	u, err := s.localizar(ctx, input)
	if errors.Is(err, errNotFound) {
		return "", apierror.Unauthorized("Credenciais inválidas.")
	}
	if err != nil {
		return "", apierror.Internal("Erro ao autenticar usuário.", err)
	}

	ok, err := auth.Verify(input.Senha, u.Senha)
	if err != nil {
		return "", apierror.Internal("Erro ao autenticar usuário.", err)
	}
	if !ok {
		return "", apierror.Unauthorized("Credenciais inválidas.")
	}

	token, err := s.jwt.GenerateAccessToken(u.ID, u.Nome)
	if err != nil {
		return "", apierror.Internal("Erro ao autenticar usuário.", err)
	}
	return token, nil
}

func (s *Service) localizar(ctx context.Context, input Login) (Usuario, error) {
	if input.Email != "" {
		u, err := s.repo.FindByEmail(ctx, input.Email)
		if err == nil || !errors.Is(err, errNotFound) {
			return u, err
		}
	}
	if input.Nome != "" {
		return s.repo.FindByNome(ctx, input.Nome)
	}
	return Usuario{}, errNotFound
}

func (s *Service) verificarDisponibilidade(ctx context.Context, input NovoUsuario) error {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return apierror.Conflict("Email já cadastrado")
	} else if !errors.Is(err, errNotFound) {
		return apierror.Internal("Erro ao registrar usuário.", err)
	}

	if _, err := s.repo.FindByNome(ctx, input.Nome); err == nil {
		return apierror.Conflict("Nome de usuário já cadastrado")
	} else if !errors.Is(err, errNotFound) {
		return apierror.Internal("Erro ao registrar usuário.", err)
	}
	return nil
}
