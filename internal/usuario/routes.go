package usuario

import "github.com/go-chi/chi/v5"

// Mount registra as rotas de autenticação.
func Mount(r chi.Router, handler *Handler) {
	handler.RegisterRoutes(r)
}
