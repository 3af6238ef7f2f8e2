package usuario

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/depolicia/registros/internal/auth"
)

const testSecret = "chave-de-teste-com-32-caracteres!!"

type stubRepo struct {
	usuarios []Usuario
	proximo  int64
}

func (s *stubRepo) Create(ctx context.Context, u Usuario) (Usuario, error) {
	s.proximo++
	u.ID = s.proximo
	s.usuarios = append(s.usuarios, u)
	return u, nil
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (Usuario, error) {
	for _, u := range s.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return Usuario{}, errNotFound
}

func (s *stubRepo) FindByNome(ctx context.Context, nome string) (Usuario, error) {
	for _, u := range s.usuarios {
		if u.Nome == nome {
			return u, nil
		}
	}
	return Usuario{}, errNotFound
}

type errorEnvelope struct {
	Status     string   `json:"status"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func newTestRouter(repo *stubRepo, jwtManager *auth.JWTManager) chi.Router {
	handler := NewHandler(NewService(repo, jwtManager), false, time.Hour)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeErro(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()

	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func contem(msgs []string, alvo string) bool {
	for _, m := range msgs {
		if m == alvo {
			return true
		}
	}
	return false
}

func registrar(t *testing.T, r chi.Router, nome, email, senha string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, r, http.MethodPost, "/auth/register", map[string]any{
		"nome":  nome,
		"email": email,
		"senha": senha,
	})
}

func TestRegistro(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	repo := &stubRepo{}
	r := newTestRouter(repo, jwtManager)

	rec := registrar(t, r, "rommel", "rommel@policia.gov.br", "Segredo#123")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d", http.StatusCreated, rec.Code)
	}

	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode resposta: %v", err)
	}

	claims, err := jwtManager.ParseAndValidate(resp.AccessToken)
	if err != nil {
		t.Fatalf("token emitido inválido: %v", err)
	}
	if claims.Nome != "rommel" {
		t.Fatalf("claims inesperadas: %+v", claims)
	}
	id, err := claims.UsuarioID()
	if err != nil || id != 1 {
		t.Fatalf("subject inesperado: %v %v", id, err)
	}

	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("registro não deveria emitir cookie")
	}

	if len(repo.usuarios) != 1 || repo.usuarios[0].Senha == "Segredo#123" {
		t.Fatal("senha deveria ser armazenada como hash")
	}
}

func TestRegistroDuplicado(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	repo := &stubRepo{}
	r := newTestRouter(repo, jwtManager)

	if rec := registrar(t, r, "rommel", "rommel@policia.gov.br", "Segredo#123"); rec.Code != http.StatusCreated {
		t.Fatalf("setup: expected %d got %d", http.StatusCreated, rec.Code)
	}

	t.Run("email em uso", func(t *testing.T) {
		rec := registrar(t, r, "outro", "rommel@policia.gov.br", "Segredo#123")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected %d got %d", http.StatusBadRequest, rec.Code)
		}
		if env := decodeErro(t, rec); env.Message != "Email já cadastrado" {
			t.Fatalf("envelope inesperado: %+v", env)
		}
	})

	t.Run("nome em uso", func(t *testing.T) {
		rec := registrar(t, r, "rommel", "novo@policia.gov.br", "Segredo#123")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected %d got %d", http.StatusBadRequest, rec.Code)
		}
		if env := decodeErro(t, rec); env.Message != "Nome de usuário já cadastrado" {
			t.Fatalf("envelope inesperado: %+v", env)
		}
	})
}

func TestRegistroValidacao(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		msg  string
	}{
		{"nome curto", map[string]any{"nome": "ab", "email": "a@b.com", "senha": "Segredo#123"}, "Nome de usuário deve ter pelo menos 3 caracteres"},
		{"email invalido", map[string]any{"nome": "ana", "email": "nao-eh-email", "senha": "Segredo#123"}, "Email inválido"},
		{"senha curta", map[string]any{"nome": "ana", "email": "a@b.com", "senha": "Ab#1"}, "Senha deve ter ao menos 8 caracteres"},
		{"sem maiuscula", map[string]any{"nome": "ana", "email": "a@b.com", "senha": "segredo#123"}, "Senha deve conter letra maiúscula"},
		{"sem minuscula", map[string]any{"nome": "ana", "email": "a@b.com", "senha": "SEGREDO#123"}, "Senha deve conter letra minúscula"},
		{"sem numero", map[string]any{"nome": "ana", "email": "a@b.com", "senha": "Segredo#abc"}, "Senha deve conter número"},
		{"sem especial", map[string]any{"nome": "ana", "email": "a@b.com", "senha": "Segredo123"}, "Senha deve conter caractere especial"},
	}

	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{}
			r := newTestRouter(repo, jwtManager)

			rec := doRequest(t, r, http.MethodPost, "/auth/register", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected %d got %d", http.StatusBadRequest, rec.Code)
			}
			if env := decodeErro(t, rec); !contem(env.Errors, tc.msg) {
				t.Fatalf("mensagem %q ausente em %v", tc.msg, env.Errors)
			}
			if len(repo.usuarios) != 0 {
				t.Fatal("nenhum usuário deveria ter sido criado")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	repo := &stubRepo{}
	r := newTestRouter(repo, jwtManager)

	if rec := registrar(t, r, "rommel", "rommel@policia.gov.br", "Segredo#123"); rec.Code != http.StatusCreated {
		t.Fatalf("setup: expected %d got %d", http.StatusCreated, rec.Code)
	}

	t.Run("por email", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/auth/login", map[string]any{
			"email": "rommel@policia.gov.br",
			"senha": "Segredo#123",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected %d got %d", http.StatusOK, rec.Code)
		}

		var resp tokenResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode resposta: %v", err)
		}
		if _, err := jwtManager.ParseAndValidate(resp.AccessToken); err != nil {
			t.Fatalf("token emitido inválido: %v", err)
		}

		var cookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == "token" {
				cookie = c
			}
		}
		if cookie == nil || !cookie.HttpOnly || cookie.Value != resp.AccessToken {
			t.Fatalf("cookie de sessão inesperado: %+v", cookie)
		}
	})

	t.Run("por nome de usuário", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/auth/login", map[string]any{
			"nome":  "rommel",
			"senha": "Segredo#123",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected %d got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("senha incorreta e usuário inexistente respondem igual", func(t *testing.T) {
		recSenha := doRequest(t, r, http.MethodPost, "/auth/login", map[string]any{
			"email": "rommel@policia.gov.br",
			"senha": "Errada#123",
		})
		recUsuario := doRequest(t, r, http.MethodPost, "/auth/login", map[string]any{
			"email": "ninguem@policia.gov.br",
			"senha": "Errada#123",
		})

		if recSenha.Code != http.StatusUnauthorized || recUsuario.Code != http.StatusUnauthorized {
			t.Fatalf("expected %d got %d e %d", http.StatusUnauthorized, recSenha.Code, recUsuario.Code)
		}
		if !bytes.Equal(recSenha.Body.Bytes(), recUsuario.Body.Bytes()) {
			t.Fatal("respostas deveriam ser idênticas para não revelar contas")
		}
		if env := decodeErro(t, recSenha); env.Message != "Credenciais inválidas." {
			t.Fatalf("envelope inesperado: %+v", env)
		}
	})

	t.Run("sem identificador", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/auth/login", map[string]any{"senha": "Segredo#123"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected %d got %d", http.StatusBadRequest, rec.Code)
		}
		if env := decodeErro(t, rec); !contem(env.Errors, "Email ou nome de usuário é obrigatório") {
			t.Fatalf("mensagem ausente em %v", env.Errors)
		}
	})
}

func TestLogout(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	r := newTestRouter(&stubRepo{}, jwtManager)

	rec := doRequest(t, r, http.MethodPost, "/auth/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rec.Code)
	}

	var resp struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode resposta: %v", err)
	}
	if resp.Status != http.StatusOK || resp.Message != "Logout realizado com sucesso." {
		t.Fatalf("resposta inesperada: %+v", resp)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	if cookie == nil || cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatalf("cookie deveria ser invalidado: %+v", cookie)
	}
}
