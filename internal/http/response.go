package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/depolicia/registros/internal/apierror"
)

// ErrorEnvelope padroniza respostas de erro.
// Errors só aparece em falhas de validação, com as mensagens por campo.
type ErrorEnvelope struct {
	Status     string   `json:"status"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

// WriteJSON escreve o corpo de sucesso como JSON puro.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteAPIError converte qualquer erro no envelope padrão e loga falhas internas.
func WriteAPIError(w http.ResponseWriter, err error) {
	apiErr := apierror.From(err)
	statusCode := apiErr.StatusCode()

	if apiErr.Kind == apierror.KindInternal {
		log.Error().Err(apiErr.Unwrap()).Msg(apiErr.Message)
	}

	status := "error"
	if statusCode < http.StatusInternalServerError {
		status = "fail"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Status:     status,
		StatusCode: statusCode,
		Message:    apiErr.Message,
		Errors:     apiErr.Messages,
	})
}
