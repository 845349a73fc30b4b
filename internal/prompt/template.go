// Package prompt собирает chat-промпт из system-шаблона с плейсхолдерами {name}.
// Подстановка буквальная и в один проход: значения повторно не сканируются,
// текст пользователя не шаблонизируется.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"translator/internal/llm"
)

var rePlaceholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// TemplateError шаблон кривой или для него не хватило значений.
type TemplateError struct {
	Placeholder string
	Reason      string
}

func (e *TemplateError) Error() string {
	if e.Placeholder == "" {
		return "template: " + e.Reason
	}
	return fmt.Sprintf("template: placeholder {%s}: %s", e.Placeholder, e.Reason)
}

// ChatTemplate промпт из двух сообщений: system по шаблону и user как есть.
type ChatTemplate struct {
	system       string
	placeholders []string
}

// NewChatTemplate разбирает system-шаблон. Лишние скобки вне {name}
// считаются ошибкой, чтобы опечатка всплыла при старте.
func NewChatTemplate(system string) (ChatTemplate, error) {
	if strings.TrimSpace(system) == "" {
		return ChatTemplate{}, &TemplateError{Reason: "system pattern is empty"}
	}
	stripped := rePlaceholder.ReplaceAllString(system, "")
	if strings.ContainsAny(stripped, "{}") {
		return ChatTemplate{}, &TemplateError{Reason: "unbalanced or invalid brace in system pattern"}
	}

	seen := make(map[string]bool)
	var names []string
	for _, m := range rePlaceholder.FindAllStringSubmatch(system, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return ChatTemplate{system: system, placeholders: names}, nil
}

// MustChatTemplate паникует на ошибке, для литералов уровня пакета.
func MustChatTemplate(system string) ChatTemplate {
	t, err := NewChatTemplate(system)
	if err != nil {
		panic(err)
	}
	return t
}

// TranslationTemplate просит модель перевести сообщение пользователя.
var TranslationTemplate = MustChatTemplate("Translate the following into {language}:")

// System возвращает исходный шаблон.
func (t ChatTemplate) System() string {
	return t.system
}

// Placeholders имена плейсхолдеров в порядке первого появления.
func (t ChatTemplate) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// Render возвращает ровно [system, user].
func (t ChatTemplate) Render(vars map[string]string, text string) ([]llm.Message, error) {
	for _, name := range t.placeholders {
		if _, ok := vars[name]; !ok {
			return nil, &TemplateError{Placeholder: name, Reason: "no value supplied"}
		}
	}

	system := rePlaceholder.ReplaceAllStringFunc(t.system, func(match string) string {
		return vars[match[1:len(match)-1]]
	})

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: text},
	}, nil
}
