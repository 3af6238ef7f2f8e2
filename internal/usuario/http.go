package usuario

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/depolicia/registros/internal/apierror"
	internalhttp "github.com/depolicia/registros/internal/http"
	"github.com/depolicia/registros/internal/http/middleware"
)

// Handler orquestra as rotas de autenticação.
type Handler struct {
	service      *Service
	cookieSecure bool
	cookieTTL    time.Duration
}

func NewHandler(service *Service, cookieSecure bool, cookieTTL time.Duration) *Handler {
	return &Handler{service: service, cookieSecure: cookieSecure, cookieTTL: cookieTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"JSON inválido."}))
		return
	}

	input, msgs := ValidarNovoUsuario(body)
	if len(msgs) > 0 {
		internalhttp.WriteAPIError(w, apierror.InvalidInput(msgs))
		return
	}

	token, err := h.service.Register(r.Context(), input)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	internalhttp.WriteJSON(w, http.StatusCreated, map[string]string{
		"access_token": token,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		internalhttp.WriteAPIError(w, apierror.InvalidInput([]string{"JSON inválido."}))
		return
	}

	input, msgs := ValidarLogin(body)
	if len(msgs) > 0 {
		internalhttp.WriteAPIError(w, apierror.InvalidInput(msgs))
		return
	}

	token, err := h.service.Login(r.Context(), input)
	if err != nil {
		internalhttp.WriteAPIError(w, err)
		return
	}

	h.setTokenCookie(w, token)
	internalhttp.WriteJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookie(w)
	internalhttp.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  http.StatusOK,
		"message": "Logout realizado com sucesso.",
	})
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
