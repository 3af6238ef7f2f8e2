package caso

import (
	"context"
	"errors"

	"github.com/depolicia/registros/internal/apierror"
)

const msgAgenteNaoEncontrado = "Agente não encontrado com o agente_id fornecido."

type repository interface {
	List(ctx context.Context, filtro Filtro) ([]Caso, error)
	Get(ctx context.Context, id int64) (Caso, error)
	ListByAgente(ctx context.Context, agenteID int64) ([]Caso, error)
	Create(ctx context.Context, input Input) (Caso, error)
	Update(ctx context.Context, id int64, input Input) (Caso, error)
	UpdatePartial(ctx context.Context, id int64, patch Patch) (Caso, error)
	Delete(ctx context.Context, id int64) error
}

// AgenteDiretorio responde se um agente existe. Implementado pelo service
// de agentes; a interface evita acoplamento entre os módulos.
type AgenteDiretorio interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service concentra as regras de negócio de casos, incluindo a checagem
// referencial do agente responsável.
type Service struct {
	repo    repository
	agentes AgenteDiretorio
}

func NewService(repo repository, agentes AgenteDiretorio) *Service {
	return &Service{repo: repo, agentes: agentes}
}

func (s *Service) List(ctx context.Context, filtro Filtro) ([]Caso, error) {
	if filtro.AgenteID > 0 {
		if err := s.verificarAgente(ctx, filtro.AgenteID); err != nil {
			return nil, err
		}
	}

	casos, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, apierror.Internal("Erro ao buscar casos.", err)
	}
	return casos, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Caso, error) {
	c, err := s.repo.Get(ctx, id)
	if errors.Is(err, errNotFound) {
		return Caso{}, apierror.NotFound("Caso não encontrado.")
	}
	if err != nil {
		return Caso{}, apierror.Internal("Erro ao buscar caso.", err)
	}
	return c, nil
}

// PorAgente lista os casos de um agente; a existência do agente é
// responsabilidade de quem chama (rota /agentes/{id}/casos).
func (s *Service) PorAgente(ctx context.Context, agenteID int64) ([]Caso, error) {
	casos, err := s.repo.ListByAgente(ctx, agenteID)
	if err != nil {
		return nil, apierror.Internal("Erro ao buscar casos.", err)
	}
	return casos, nil
}

func (s *Service) Create(ctx context.Context, input Input) (Caso, error) {
	if err := s.verificarAgente(ctx, input.AgenteID); err != nil {
		return Caso{}, err
	}

	c, err := s.repo.Create(ctx, input)
	if err != nil {
		return Caso{}, apierror.Internal("Erro ao criar caso.", err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, input Input) (Caso, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return Caso{}, err
	}
	if err := s.verificarAgente(ctx, input.AgenteID); err != nil {
		return Caso{}, err
	}

	c, err := s.repo.Update(ctx, id, input)
	if errors.Is(err, errNotFound) {
		return Caso{}, apierror.NotFound("Caso não encontrado.")
	}
	if err != nil {
		return Caso{}, apierror.Internal("Erro ao atualizar caso.", err)
	}
	return c, nil
}

func (s *Service) UpdatePartial(ctx context.Context, id int64, patch Patch) (Caso, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return Caso{}, err
	}
	if patch.AgenteID != nil {
		if err := s.verificarAgente(ctx, *patch.AgenteID); err != nil {
			return Caso{}, err
		}
	}

	c, err := s.repo.UpdatePartial(ctx, id, patch)
	if errors.Is(err, errNotFound) {
		return Caso{}, apierror.NotFound("Caso não encontrado.")
	}
	if err != nil {
		return Caso{}, apierror.Internal("Erro ao atualizar caso.", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal("Erro ao remover caso.", err)
	}
	return nil
}

func (s *Service) verificarAgente(ctx context.Context, agenteID int64) error {
	ok, err := s.agentes.Exists(ctx, agenteID)
	if err != nil {
		return apierror.From(err)
	}
	if !ok {
		return apierror.NotFound(msgAgenteNaoEncontrado)
	}
	return nil
}
