package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"translator/internal/config"
)

const testKey = "gsk_secret_123"

func newTestClient(t *testing.T, url string, httpClient *http.Client) *GroqClient {
	t.Helper()
	client, err := NewGroqClient(config.GroqConfig{APIKey: testKey, BaseURL: url + "/", Model: DefaultModel}, httpClient, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewGroqClient: %v", err)
	}
	return client
}

var translatePrompt = []Message{
	{Role: RoleSystem, Content: "Translate the following into French:"},
	{Role: RoleUser, Content: "Hello"},
}

func TestNewGroqClientRequiresKey(t *testing.T) {
	_, err := NewGroqClient(config.GroqConfig{BaseURL: "http://example"}, nil, nil)
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Fatalf("expected config.ErrMissingAPIKey, got %v", err)
	}
}

func TestGroqComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer "+testKey {
			t.Errorf("unexpected auth header: %s", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != DefaultModel {
			t.Errorf("unexpected model: %s", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != RoleSystem || req.Messages[1].Role != RoleUser {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","model":"llama-3.1-8b-instant","choices":[{"index":0,"message":{"role":"assistant","content":"Bonjour"},"finish_reason":"stop"}],"usage":{"prompt_tokens":12,"completion_tokens":3,"total_tokens":15}}`))
	}))
	defer server.Close()

	completion, err := newTestClient(t, server.URL, server.Client()).Complete(context.Background(), "", translatePrompt)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	text, err := Extract(completion)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "Bonjour" {
		t.Errorf("unexpected text: %q", text)
	}
	if completion.Usage.TotalTokens != 15 {
		t.Errorf("unexpected usage: %+v", completion.Usage)
	}
}

func TestGroqComplete_NoRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"over capacity","type":"server_error"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, server.Client()).Complete(context.Background(), "", translatePrompt)
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.Kind != KindUpstream || perr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("unexpected error: %+v", perr)
	}
	if perr.Message != "over capacity" {
		t.Errorf("unexpected message: %q", perr.Message)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly 1 call, got %d", got)
	}
}

func TestGroqComplete_StatusKinds(t *testing.T) {
	cases := map[int]ProviderErrorKind{
		http.StatusTooManyRequests:     KindRateLimit,
		http.StatusUnauthorized:        KindUnauthorized,
		http.StatusBadRequest:          KindBadRequest,
		http.StatusGatewayTimeout:      KindTimeout,
		http.StatusInternalServerError: KindUpstream,
	}
	for status, want := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := newTestClient(t, server.URL, server.Client()).Complete(context.Background(), "", translatePrompt)
		server.Close()

		var perr *ProviderError
		if !errors.As(err, &perr) {
			t.Fatalf("status %d: expected ProviderError, got %v", status, err)
		}
		if perr.Kind != want {
			t.Errorf("status %d: expected %s, got %s", status, want, perr.Kind)
		}
		if perr.Message == "" {
			t.Errorf("status %d: expected fallback message", status)
		}
	}
}

func TestGroqComplete_ScrubsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid API Key ` + testKey + `"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, server.Client()).Complete(context.Background(), "", translatePrompt)
	if err == nil {
		t.Fatalf("expected error")
	}
	if strings.Contains(err.Error(), testKey) {
		t.Fatalf("credential leaked: %s", err.Error())
	}
	if !strings.Contains(err.Error(), redacted) {
		t.Fatalf("expected redaction marker, got %s", err.Error())
	}
}

func TestGroqComplete_TruncatesLongBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(strings.Repeat("x", 5000)))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, server.Client()).Complete(context.Background(), "", translatePrompt)
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if len(perr.Message) > errorSnippetLimit {
		t.Fatalf("message not truncated: %d bytes", len(perr.Message))
	}
}

func TestGroqComplete_TruncatesOnRuneBoundary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("a" + strings.Repeat("é", 400)))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, server.Client()).Complete(context.Background(), "", translatePrompt)
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if len(perr.Message) > errorSnippetLimit {
		t.Fatalf("message not truncated: %d bytes", len(perr.Message))
	}
	if !utf8.ValidString(perr.Message) {
		t.Fatalf("message split a multi-byte rune: %q", perr.Message)
	}
	if !strings.HasPrefix(perr.Message, "aé") {
		t.Fatalf("unexpected message start: %q", perr.Message[:8])
	}
}

func TestGroqComplete_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	httpClient := server.Client()
	httpClient.Timeout = 50 * time.Millisecond

	_, err := newTestClient(t, server.URL, httpClient).Complete(context.Background(), "", translatePrompt)
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.Kind != KindTimeout {
		t.Fatalf("expected timeout kind, got %s", perr.Kind)
	}
}

func TestGroqComplete_Canceled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := newTestClient(t, server.URL, server.Client()).Complete(ctx, "", translatePrompt)
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.Kind != KindCanceled {
		t.Fatalf("expected canceled kind, got %s", perr.Kind)
	}
}

func TestGroqComplete_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, server.Client()).Complete(context.Background(), "", translatePrompt)
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Kind != KindDecode {
		t.Fatalf("expected decode ProviderError, got %v", err)
	}
}
