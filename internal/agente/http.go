package agente

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/depolicia/registros/internal/apierror"
	"github.com/depolicia/registros/internal/caso"
	internalhttp "github.com/depolicia/registros/internal/http"
)

// ListadorDeCasos expõe os casos sob responsabilidade de um agente.
// Implementado pelo service de casos; a interface evita ciclo de importação.
type ListadorDeCasos interface {
	PorAgente(ctx context.Context, agenteID int64) ([]caso.Caso, error)
}

// Handler orquestra as rotas de agentes.
type Handler struct {
	service *Service
	casos   ListadorDeCasos
}

func NewHandler(service *Service, casos ListadorDeCasos) *Handler {
	return &Handler{service: service, casos: casos}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/agentes", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Patch("/{id}", h.handleUpdatePartial)
		r.Delete("/{id}", h.handleDelete)
		r.Get("/{id}/casos", h.handleCasosDoAgente)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filtro := Filtro{
		Cargo: r.URL.Query().Get("cargo"),
		Sort:  r.URL.Query().Get("sort"),
	}

	agentes, err := h.service.List(r.Context(), filtro)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusOK, agentes)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(r)
	if !ok {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"Id inválido."}))
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"JSON inválido."}))
		return
	}

	input, msgs := ValidarNovoAgente(body)
	if len(msgs) > 0 {
		internalhttp.WriteAPIError(w, apierror.InvalidInput(msgs))
		return
	}

	a, err := h.service.Create(r.Context(), input)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(r)
	if !ok {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"Id inválido."}))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"JSON inválido."}))
		return
	}

	input, msgs := ValidarAtualizacaoAgente(body)
	if len(msgs) > 0 {
		internalhttp.WriteAPIError(w, apierror.InvalidInput(msgs))
		return
	}

	a, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) handleUpdatePartial(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(r)
	if !ok {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"Id inválido."}))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"JSON inválido."}))
		return
	}

	patch, msgs := ValidarAtualizacaoParcialAgente(body)
	if len(msgs) > 0 {
		internalhttp.WriteAPIError(w, apierror.InvalidInput(msgs))
		return
	}

	a, err := h.service.UpdatePartial(r.Context(), id, patch)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(r)
	if !ok {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"Id inválido."}))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCasosDoAgente(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(r)
	if !ok {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"Id inválido."}))
		return
	}

	if _, err := h.service.Get(r.Context(), id); err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	casos, err := h.casos.PorAgente(r.Context(), id)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusOK, casos)
}

func idFromURL(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
