package caso

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/depolicia/registros/internal/apierror"
	internalhttp "github.com/depolicia/registros/internal/http"
)

// Handler orquestra as rotas de casos.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/casos", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Patch("/{id}", h.handleUpdatePartial)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filtro := Filtro{
		Search:  query.Get("search"),
		OrderBy: query.Get("orderBy"),
		Order:   query.Get("order"),
	}

	if status := query.Get("status"); status != "" {
		if !statusValido(status) {
			internalhttp.WriteAPIError(w, apierror.InvalidInput(
				[]string{"O status do caso deve ser 'aberto' ou 'solucionado'."}))
			return
		}
		filtro.Status = status
	}

	if raw := query.Get("agente_id"); raw != "" {
		agenteID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || agenteID <= 0 {
			internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"Id inválido."}))
			return
		}
		filtro.AgenteID = agenteID
	}

	casos, err := h.service.List(r.Context(), filtro)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusOK, casos)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(r)
	if !ok {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"Id inválido."}))
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"JSON inválido."}))
		return
	}

	input, msgs := ValidarNovoCaso(body)
	if len(msgs) > 0 {
		internalhttp.WriteAPIError(w, apierror.InvalidInput(msgs))
		return
	}

	c, err := h.service.Create(r.Context(), input)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusCreated, c)
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

	input, msgs := ValidarAtualizacaoCaso(body)
	if len(msgs) > 0 {
		internalhttp.WriteAPIError(w, apierror.InvalidInput(msgs))
		return
	}

	c, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusOK, c)
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

	patch, msgs := ValidarAtualizacaoParcialCaso(body)
	if len(msgs) > 0 {
		internalhttp.WriteAPIError(w, apierror.InvalidInput(msgs))
		return
	}

	c, err := h.service.UpdatePartial(r.Context(), id, patch)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusOK, c)
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

func idFromURL(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
