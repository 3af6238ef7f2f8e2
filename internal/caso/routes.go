package caso

import "github.com/go-chi/chi/v5"

// Mount registra as rotas do módulo de casos.
func Mount(r chi.Router, handler *Handler) {
	handler.RegisterRoutes(r)
}
