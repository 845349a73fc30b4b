package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var ErrInvalidModel = errors.New("model is required")

// ProviderErrorKind классифицирует сбой провайдера.
type ProviderErrorKind string

const (
	KindTimeout      ProviderErrorKind = "timeout"
	KindRateLimit    ProviderErrorKind = "rate_limit"
	KindUnauthorized ProviderErrorKind = "unauthorized"
	KindBadRequest   ProviderErrorKind = "bad_request"
	KindUpstream     ProviderErrorKind = "upstream"
	KindNetwork      ProviderErrorKind = "network"
	KindCanceled     ProviderErrorKind = "canceled"
	KindDecode       ProviderErrorKind = "decode"
)

// ProviderError сбой на стороне провайдера или по дороге к нему.
// Message уже очищен от ключа и обрезан.
type ProviderError struct {
	Kind       ProviderErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %s: %s", e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ExtractionError провайдер ответил, но текста в ответе нет.
type ExtractionError struct {
	FinishReason string
	Reason       string
}

func (e *ExtractionError) Error() string {
	if e.FinishReason != "" {
		return fmt.Sprintf("no text in completion: %s (finish_reason=%s)", e.Reason, e.FinishReason)
	}
	return "no text in completion: " + e.Reason
}

func kindForStatus(status int) ProviderErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return KindTimeout
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status >= 500:
		return KindUpstream
	default:
		return KindBadRequest
	}
}

// transportError оборачивает ошибку httpClient.Do в ProviderError.
func transportError(ctx context.Context, err error) *ProviderError {
	kind := KindNetwork
	message := "request to provider failed"

	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		kind = KindCanceled
		message = "request canceled"
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
		message = "provider did not respond in time"
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
		message = "provider did not respond in time"
	case strings.Contains(strings.ToLower(err.Error()), "connection reset"):
		message = "connection reset by provider"
	}
	return &ProviderError{Kind: kind, Message: message, Err: err}
}
