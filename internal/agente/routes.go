package agente

import "github.com/go-chi/chi/v5"

// Mount registra as rotas do módulo de agentes.
func Mount(r chi.Router, handler *Handler) {
	handler.RegisterRoutes(r)
}
