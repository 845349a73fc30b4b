package translation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"translator/internal/langname"
	"translator/internal/llm"
	"translator/internal/prompt"
)

const languageVar = "language"

type ServiceDeps struct {
	LLM                 llm.Client
	Template            prompt.ChatTemplate
	Model               string
	ResolveLanguageTags bool
	Logger              *slog.Logger
}

// Service связывает шаблон, LLM клиент и извлечение текста.
// Состояния между запросами нет, поэтому вызовы конкурентно безопасны.
type Service struct {
	llm         llm.Client
	template    prompt.ChatTemplate
	model       string
	resolveTags bool
	logger      *slog.Logger
}

func NewService(deps ServiceDeps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		llm:         deps.LLM,
		template:    deps.Template,
		model:       deps.Model,
		resolveTags: deps.ResolveLanguageTags,
		logger:      logger,
	}
}

// Translate проверяет запрос, собирает промпт, зовёт LLM и достаёт текст.
func (s *Service) Translate(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	language := strings.TrimSpace(req.Language)
	if s.resolveTags {
		language = langname.Resolve(language)
	}

	messages, err := s.template.Render(map[string]string{languageVar: language}, req.Text)
	if err != nil {
		return Response{}, err
	}

	start := time.Now()
	completion, err := s.llm.Complete(ctx, s.model, messages)
	if err != nil {
		return Response{}, err
	}

	text, err := llm.Extract(completion)
	if err != nil {
		return Response{}, err
	}

	s.logger.Debug("translated",
		slog.String("language", language),
		slog.Int("input_chars", len(req.Text)),
		slog.Int("output_chars", len(text)),
		slog.Duration("llm_duration", time.Since(start)))

	return Response{Text: text}, nil
}
