package httpserver

import (
	"encoding/json"
	"net/http"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// WriteJSON пишет тело ответа в JSON с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError возвращает ошибку в едином формате.
func WriteJSONError(w http.ResponseWriter, status int, kind, message string) {
	WriteJSONFieldError(w, status, kind, message, "")
}

// WriteJSONFieldError то же, но с указанием поля запроса.
func WriteJSONFieldError(w http.ResponseWriter, status int, kind, message, field string) {
	WriteJSON(w, status, errorEnvelope{
		Error: errorBody{
			Kind:    kind,
			Message: message,
			Field:   field,
		},
	})
}
