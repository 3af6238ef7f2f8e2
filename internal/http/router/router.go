package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/depolicia/registros/internal/agente"
	"github.com/depolicia/registros/internal/auth"
	"github.com/depolicia/registros/internal/caso"
	"github.com/depolicia/registros/internal/config"
	internalhttp "github.com/depolicia/registros/internal/http"
	httpmiddleware "github.com/depolicia/registros/internal/http/middleware"
	"github.com/depolicia/registros/internal/usuario"
)

// New monta o roteador com todos os módulos da API.
// Rotas de autenticação e health checks são públicas; o restante exige token.
func New(cfg *config.Config, pool *pgxpool.Pool, jwtManager *auth.JWTManager) http.Handler {
	agenteRepo := agente.NewRepository(pool)
	agenteService := agente.NewService(agenteRepo)

	casoRepo := caso.NewRepository(pool)
	casoService := caso.NewService(casoRepo, agenteService)

	agenteHandler := agente.NewHandler(agenteService, casoService)
	casoHandler := caso.NewHandler(casoService)

	usuarioRepo := usuario.NewRepository(pool)
	usuarioService := usuario.NewService(usuarioRepo, jwtManager)
	usuarioHandler := usuario.NewHandler(usuarioService, cfg.IsProduction(), cfg.JWTAccessTTL)

	publicLimiter := httpmiddleware.NewRateLimiter(
		cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst)
	authLimiter := httpmiddleware.NewRateLimiter(
		cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(publicLimiter))

		public.Get("/health", handleHealth)
		public.Get("/ready", handleReady(pool))

		usuario.Mount(public, usuarioHandler)
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(jwtManager))
		private.Use(httpmiddleware.UserRateLimit(authLimiter))

		agente.Mount(private, agenteHandler)
		caso.Mount(private, casoHandler)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	internalhttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady valida a conexão com o Postgres.
func handleReady(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			internalhttp.WriteJSON(w, http.StatusServiceUnavailable, internalhttp.ErrorEnvelope{
				Status:     "error",
				StatusCode: http.StatusServiceUnavailable,
				Message:    "Banco de dados indisponível.",
			})
			return
		}

		internalhttp.WriteJSON(w, http.StatusOK, map[string]bool{"ready": true})
	}
}
