// Package response holds the JSON writing helpers shared by all handlers.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.ErrorContext(r.Context(), "encode response", "error", err, "path", r.URL.Path)
	}
}

func Error(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	JSON(w, r, status, errorEnvelope{Error: errorBody{Code: code, Message: message, Details: details}})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
