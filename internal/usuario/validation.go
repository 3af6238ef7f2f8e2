package usuario

import (
	"encoding/json"
	"net/mail"
	"regexp"
	"strings"
)

// Regras de senha: mínimo de 8 caracteres com as quatro classes presentes.
var (
	temMinuscula = regexp.MustCompile(`[a-z]`)
	temMaiuscula = regexp.MustCompile(`[A-Z]`)
	temNumero    = regexp.MustCompile(`[0-9]`)
	temEspecial  = regexp.MustCompile(`[\W_]`)
)

// NovoUsuario é o payload validado de registro.
type NovoUsuario struct {
	Nome  string
	Email string
	Senha string
}

// Login é o payload validado de autenticação.
type Login struct {
	Email string
	Nome  string
	Senha string
}

// ValidarNovoUsuario valida o corpo de POST /auth/register.
func ValidarNovoUsuario(body []byte) (NovoUsuario, []string) {
	var payload struct {
		Nome  string `json:"nome"`
		Email string `json:"email"`
		Senha string `json:"senha"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return NovoUsuario{}, []string{"JSON inválido."}
	}

	var msgs []string

	nome := strings.TrimSpace(payload.Nome)
	switch {
	case nome == "":
		msgs = append(msgs, "Nome é obrigatório")
	case len([]rune(nome)) < 3:
		msgs = append(msgs, "Nome de usuário deve ter pelo menos 3 caracteres")
	}

	if _, err := mail.ParseAddress(strings.TrimSpace(payload.Email)); err != nil {
		msgs = append(msgs, "Email inválido")
	}

	msgs = append(msgs, validarSenha(payload.Senha)...)

	if len(msgs) > 0 {
		return NovoUsuario{}, msgs
	}

	return NovoUsuario{
		Nome:  nome,
		Email: strings.TrimSpace(payload.Email),
		Senha: payload.Senha,
	}, nil
}

// ValidarLogin valida o corpo de POST /auth/login: senha obrigatória e pelo
// menos um entre email e nome.
func ValidarLogin(body []byte) (Login, []string) {
	var payload struct {
		Email string `json:"email"`
		Nome  string `json:"nome"`
		Senha string `json:"senha"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Login{}, []string{"JSON inválido."}
	}

	var msgs []string

	if payload.Senha == "" {
		msgs = append(msgs, "Senha é obrigatória")
	}

	email := strings.TrimSpace(payload.Email)
	nome := strings.TrimSpace(payload.Nome)
	if email == "" && nome == "" {
		msgs = append(msgs, "Email ou nome de usuário é obrigatório")
	}

	if len(msgs) > 0 {
		return Login{}, msgs
	}

	return Login{Email: email, Nome: nome, Senha: payload.Senha}, nil
}

func validarSenha(senha string) []string {
	var msgs []string
	if len(senha) < 8 {
		msgs = append(msgs, "Senha deve ter ao menos 8 caracteres")
	}
	if !temMinuscula.MatchString(senha) {
		msgs = append(msgs, "Senha deve conter letra minúscula")
	}
	if !temMaiuscula.MatchString(senha) {
		msgs = append(msgs, "Senha deve conter letra maiúscula")
	}
	if !temNumero.MatchString(senha) {
		msgs = append(msgs, "Senha deve conter número")
	}
	if !temEspecial.MatchString(senha) {
		msgs = append(msgs, "Senha deve conter caractere especial")
	}
	return msgs
}
