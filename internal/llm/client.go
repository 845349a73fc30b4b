package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message одно role-tagged сообщение для chat completion API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client минимальный публичный интерфейс LLM клиента.
// Реализация делает ровно один запрос к провайдеру на вызов и не ретраит.
type Client interface {
	Complete(ctx context.Context, model string, messages []Message) (Completion, error)
}

// Completion ответ провайдера. Дальше по пайплайну используется только текст.
type Completion struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
