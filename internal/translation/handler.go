package translation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"translator/internal/httpserver"
	"translator/internal/llm"
	"translator/internal/middleware"
	"translator/internal/prompt"
)

const maxBodyBytes = 1 << 20

// Error kinds в теле ответа.
const (
	KindValidation = "ValidationError"
	KindTemplate   = "TemplateError"
	KindProvider   = "ProviderError"
	KindExtraction = "ExtractionError"
	KindInternal   = "InternalError"
)

// Translator то, что нужно хендлеру от сервиса.
type Translator interface {
	Translate(ctx context.Context, req Request) (Response, error)
}

type Handler struct {
	translator Translator
	logger     *slog.Logger
}

func NewHandler(translator Translator, logger *slog.Logger) *Handler {
	return &Handler{translator: translator, logger: logger}
}

// ServeHTTP обслуживает POST /translate.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		httpserver.WriteJSONError(w, http.StatusBadRequest, KindValidation, decodeMessage(err))
		return
	}

	resp, err := h.translator.Translate(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r)

	var (
		validationErr *ValidationError
		providerErr   *llm.ProviderError
		extractionErr *llm.ExtractionError
		templateErr   *prompt.TemplateError
	)
	switch {
	case errors.As(err, &validationErr):
		httpserver.WriteJSONFieldError(w, http.StatusBadRequest, KindValidation, validationErr.Error(), validationErr.Field)

	case errors.As(err, &providerErr):
		status := http.StatusBadGateway
		if providerErr.Kind == llm.KindTimeout {
			status = http.StatusGatewayTimeout
		}
		if providerErr.Kind == llm.KindCanceled {
			h.logger.Info("client went away before provider answered", slog.String("request_id", reqID))
		} else {
			h.logger.Warn("provider error",
				slog.String("request_id", reqID),
				slog.String("kind", string(providerErr.Kind)),
				slog.Int("provider_status", providerErr.StatusCode),
				slog.String("message", providerErr.Message))
		}
		httpserver.WriteJSONError(w, status, KindProvider, providerErr.Error())

	case errors.As(err, &extractionErr):
		h.logger.Warn("no text in completion",
			slog.String("request_id", reqID),
			slog.String("finish_reason", extractionErr.FinishReason))
		httpserver.WriteJSONError(w, http.StatusInternalServerError, KindExtraction, extractionErr.Error())

	case errors.As(err, &templateErr):
		h.logger.Error("template invariant broken",
			slog.String("request_id", reqID),
			slog.String("error", templateErr.Error()))
		httpserver.WriteJSONError(w, http.StatusInternalServerError, KindTemplate, "prompt template could not be rendered")

	default:
		h.logger.Error("translate failed",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))
		httpserver.WriteJSONError(w, http.StatusInternalServerError, KindInternal, "internal server error")
	}
}

func decodeMessage(err error) string {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return "request body is too large"
	case errors.Is(err, io.EOF):
		return "request body is empty"
	default:
		return "request body must be a JSON object with language and text"
	}
}
