package middleware

import (
	"log/slog"
	"net/http"
)

const panicBody = `{"error":{"kind":"InternalError","message":"internal server error"}}` + "\n"

// Recover перехватывает panic и возвращает 500 в JSON, не падая процессом.
// Стек и значение panic уходят только в лог.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic recovered",
						slog.Any("error", rec),
						slog.String("path", r.URL.Path),
						slog.String("request_id", r.Header.Get(headerRequestID)))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(panicBody))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
