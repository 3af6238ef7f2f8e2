package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/depolicia/registros/internal/auth"
)

type contextKey string

const (
	ContextKeyUsuarioID contextKey = "usuario_id"
	ContextKeyNome      contextKey = "nome"
)

// TokenCookieName é o cookie de sessão emitido no login.
const TokenCookieName = "token"

// Auth valida o token de sessão e injeta a identidade no contexto.
// A busca é em duas etapas: primeiro o cookie, depois o header Authorization.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Token de autenticação não fornecido")
				return
			}

			claims, err := jwtManager.ParseAndValidate(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Token de autenticação inválido")
				return
			}

			usuarioID, err := claims.UsuarioID()
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Token de autenticação inválido")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUsuarioID, usuarioID)
			ctx = context.WithValue(ctx, ContextKeyNome, claims.Nome)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(TokenCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}

	return ""
}

// GetUsuarioID recupera o id autenticado do contexto.
func GetUsuarioID(ctx context.Context) int64 {
	val, _ := ctx.Value(ContextKeyUsuarioID).(int64)
	return val
}

// GetNome recupera o nome autenticado do contexto.
func GetNome(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyNome).(string)
	return val
}
