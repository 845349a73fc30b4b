package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	headerRequestID   = "X-Request-ID"
	maxRequestIDBytes = 128
)

// RequestID проставляет идентификатор запроса, если он не был задан
// или пришёл слишком длинным.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(headerRequestID)
		if reqID == "" || len(reqID) > maxRequestIDBytes {
			reqID = uuid.NewString()
			r.Header.Set(headerRequestID, reqID)
		}
		w.Header().Set(headerRequestID, reqID)
		next.ServeHTTP(w, r)
	})
}

// GetRequestID возвращает идентификатор, проставленный RequestID.
func GetRequestID(r *http.Request) string {
	return r.Header.Get(headerRequestID)
}
