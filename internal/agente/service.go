package agente

import (
	"context"
	"errors"

	"github.com/depolicia/registros/internal/apierror"
)

type repository interface {
	List(ctx context.Context, filtro Filtro) ([]Agente, error)
	Get(ctx context.Context, id int64) (Agente, error)
	Create(ctx context.Context, input Input) (Agente, error)
	Update(ctx context.Context, id int64, input Input) (Agente, error)
	UpdatePartial(ctx context.Context, id int64, patch Patch) (Agente, error)
	Delete(ctx context.Context, id int64) error
}

// Service concentra as regras de negócio de agentes.
type Service struct {
	repo repository
}

func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filtro Filtro) ([]Agente, error) {
	agentes, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, apierror.Internal("Erro ao buscar agentes.", err)
	}
	return agentes, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Agente, error) {
	a, err := s.repo.Get(ctx, id)
	if errors.Is(err, errNotFound) {
		return Agente{}, apierror.NotFound("Agente não encontrado.")
	}
	if err != nil {
		return Agente{}, apierror.Internal("Erro ao buscar agente.", err)
	}
	return a, nil
}

// Exists responde se o agente existe; usado na checagem referencial de casos.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apierror.Internal("Erro ao buscar agente.", err)
	}
	return true, nil
}

func (s *Service) Create(ctx context.Context, input Input) (Agente, error) {
	a, err := s.repo.Create(ctx, input)
	if err != nil {
		return Agente{}, apierror.Internal("Erro ao criar agente.", err)
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id int64, input Input) (Agente, error) {
	a, err := s.repo.Update(ctx, id, input)
	if errors.Is(err, errNotFound) {
		return Agente{}, apierror.NotFound("Agente não encontrado.")
	}
	if err != nil {
		return Agente{}, apierror.Internal("Erro ao atualizar agente.", err)
	}
	return a, nil
}

func (s *Service) UpdatePartial(ctx context.Context, id int64, patch Patch) (Agente, error) {
	a, err := s.repo.UpdatePartial(ctx, id, patch)
	if errors.Is(err, errNotFound) {
		return Agente{}, apierror.NotFound("Agente não encontrado.")
	}
	if err != nil {
		return Agente{}, apierror.Internal("Erro ao atualizar agente.", err)
	}
	return a, nil
}

// Delete verifica a existência antes de remover; a remoção é bloqueada
// enquanto houver casos vinculados ao agente.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errCasosVinculados):
		return apierror.Conflict("Agente possui casos vinculados.")
	default:
		return apierror.Internal("Erro ao remover agente.", err)
	}
}
