package apierror

import (
	"errors"
	"net/http"
	"strings"
)

// Kind identifica a categoria de uma falha da API.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindUnauthorized
	KindNotFound
	KindConflict
	KindInternal
)

// StatusCode mapeia o kind para o código HTTP correspondente.
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		// Conflitos de cadastro respondem 400, parte do contrato público da API.
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error é a falha tipada que atravessa services e handlers.
// Messages carrega mensagens por campo quando Kind == KindInvalidInput.
type Error struct {
	Kind     Kind
	Message  string
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return e.Message + ": " + strings.Join(e.Messages, "; ")
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode devolve o código HTTP do erro.
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// InvalidInput agrupa todas as mensagens de validação coletadas.
func InvalidInput(messages []string) *Error {
	return &Error{Kind: KindInvalidInput, Message: "Parâmetros inválidos", Messages: messages}
}

// Unauthorized indica ausência ou falha de autenticação.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NotFound indica recurso (ou recurso referenciado) inexistente.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict indica cadastro duplicado.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal encapsula falhas de infraestrutura sem expor detalhes ao cliente.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// From normaliza qualquer erro para *Error; erros desconhecidos viram internos.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal("Erro interno do servidor.", err)
}
