package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError evita dependência do pacote http interno (importaria em ciclo).
// Mantém o mesmo envelope {status, statusCode, message}.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	status := "error"
	if statusCode < http.StatusInternalServerError {
		status = "fail"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":     status,
		"statusCode": statusCode,
		"message":    message,
	})
}
