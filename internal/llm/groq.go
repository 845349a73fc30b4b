package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"translator/internal/config"
)

const (
	errorSnippetLimit = 300
	redacted          = "[REDACTED]"
)

// GroqClient ходит в OpenAI-совместимый /chat/completions Groq.
type GroqClient struct {
	apiKey       string
	baseURL      string
	defaultModel string
	httpClient   *http.Client
	logger       *slog.Logger
}

func NewGroqClient(cfg config.GroqConfig, httpClient *http.Client, logger *slog.Logger) (*GroqClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, config.ErrMissingAPIKey
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GroqClient{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		defaultModel: cfg.Model,
		httpClient:   httpClient,
		logger:       logger,
	}, nil
}

// Complete отправляет сообщения провайдеру как есть, в том же порядке.
func (c *GroqClient) Complete(ctx context.Context, model string, messages []Message) (Completion, error) {
	if model == "" {
		model = c.defaultModel
	}
	if model == "" {
		return Completion{}, ErrInvalidModel
	}

	buf, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return Completion{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(buf))
	if err != nil {
		return Completion{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Completion{}, transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, transportError(ctx, err)
	}

	if resp.StatusCode >= 300 {
		perr := &ProviderError{
			Kind:       kindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    c.sanitize(providerMessage(body, resp.Status)),
		}
		c.logFailure(model, perr, time.Since(start))
		return Completion{}, perr
	}

	var parsed Completion
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Completion{}, &ProviderError{
			Kind:       KindDecode,
			StatusCode: resp.StatusCode,
			Message:    "malformed completion payload",
			Err:        err,
		}
	}

	if c.logger != nil {
		c.logger.Debug("groq completion",
			slog.String("model", model),
			slog.Int("prompt_tokens", parsed.Usage.PromptTokens),
			slog.Int("completion_tokens", parsed.Usage.CompletionTokens),
			slog.Duration("duration", time.Since(start)))
	}
	return parsed, nil
}

// sanitize вырезает ключ из текста провайдера и обрезает его.
func (c *GroqClient) sanitize(msg string) string {
	msg = strings.ReplaceAll(msg, c.apiKey, redacted)
	if len(msg) > errorSnippetLimit {
		// режем по границе руны, иначе JSON-энкодер вставит U+FFFD
		n := errorSnippetLimit
		for n > 0 && !utf8.RuneStart(msg[n]) {
			n--
		}
		msg = msg[:n]
	}
	return strings.TrimSpace(msg)
}

func (c *GroqClient) logFailure(model string, perr *ProviderError, elapsed time.Duration) {
	if c.logger == nil {
		return
	}
	c.logger.Warn("groq request failed",
		slog.String("model", model),
		slog.String("kind", string(perr.Kind)),
		slog.Int("status", perr.StatusCode),
		slog.Duration("duration", elapsed))
}

// providerMessage достаёт error.message из OpenAI-совместимого тела ошибки.
func providerMessage(body []byte, fallback string) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fallback
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
