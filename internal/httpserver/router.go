package httpserver

import (
	"log/slog"
	"net/http"

	"translator/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type RouterDeps struct {
	Logger           *slog.Logger
	TranslateHandler http.Handler
}

// NewRouter собирает chi-роутер с общими middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Post("/translate", deps.TranslateHandler.ServeHTTP)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "NotFound", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method+" is not allowed on "+r.URL.Path)
	})

	return r
}
