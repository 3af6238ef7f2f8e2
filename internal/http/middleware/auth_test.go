package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/depolicia/registros/internal/auth"
)

const testSecret = "chave-de-teste-com-32-caracteres!!"

func protegido(t *testing.T, jwtManager *auth.JWTManager) http.Handler {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"id":   GetUsuarioID(r.Context()),
			"nome": GetNome(r.Context()),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	return Auth(jwtManager)(inner)
}

func TestAuthSemToken(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	handler := protegido(t, jwtManager)

	req := httptest.NewRequest(http.MethodGet, "/agentes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d got %d", http.StatusUnauthorized, rec.Code)
	}

	var env struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Status != "fail" || env.Message != "Token de autenticação não fornecido" {
		t.Fatalf("envelope inesperado: %+v", env)
	}
}

func TestAuthTokenInvalido(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	handler := protegido(t, jwtManager)

	expirado := auth.NewJWTManager(testSecret, -time.Minute)
	tokenExpirado, err := expirado.GenerateAccessToken(1, "rommel")
	if err != nil {
		t.Fatalf("gerar token: %v", err)
	}

	outroSegredo := auth.NewJWTManager("outro-segredo-tambem-com-32-chars!", time.Hour)
	tokenForjado, err := outroSegredo.GenerateAccessToken(1, "rommel")
	if err != nil {
		t.Fatalf("gerar token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expirado", tokenExpirado},
		{"assinatura de outro segredo", tokenForjado},
		{"lixo", "nao.eh.jwt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/agentes", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected %d got %d", http.StatusUnauthorized, rec.Code)
			}

			var env struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.Message != "Token de autenticação inválido" {
				t.Fatalf("mensagem inesperada: %q", env.Message)
			}
		})
	}
}

func TestAuthInjetaIdentidade(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	handler := protegido(t, jwtManager)

	token, err := jwtManager.GenerateAccessToken(7, "rommel")
	if err != nil {
		t.Fatalf("gerar token: %v", err)
	}

	assertIdentidade := func(t *testing.T, rec *httptest.ResponseRecorder) {
		t.Helper()
		if rec.Code != http.StatusOK {
			t.Fatalf("expected %d got %d", http.StatusOK, rec.Code)
		}
		var resp struct {
			ID   int64  `json:"id"`
			Nome string `json:"nome"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode resposta: %v", err)
		}
		if resp.ID != 7 || resp.Nome != "rommel" {
			t.Fatalf("identidade inesperada: %+v", resp)
		}
	}

	t.Run("via header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/agentes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assertIdentidade(t, rec)
	})

	t.Run("via cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/agentes", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assertIdentidade(t, rec)
	})

	t.Run("cookie tem precedência sobre o header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/agentes", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-invalido"})
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected %d got %d", http.StatusUnauthorized, rec.Code)
		}
	})
}
