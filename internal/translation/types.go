package translation

import (
	"fmt"
	"strings"
)

// Request входной запрос на перевод.
type Request struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// Response тело успешного ответа.
type Response struct {
	Text string `json:"text"`
}

// ValidationError некорректный запрос; до провайдера такой запрос не доходит.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid request: " + e.Message
	}
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Message)
}

// Validate проверяет, что оба поля непустые после trim. language проверяется первым.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Language) == "" {
		return &ValidationError{Field: "language", Message: "must be a non-empty string"}
	}
	if strings.TrimSpace(r.Text) == "" {
		return &ValidationError{Field: "text", Message: "must be a non-empty string"}
	}
	return nil
}
