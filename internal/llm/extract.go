package llm

import "strings"

// Extract возвращает текст первого choice. Пустой ответ считается ошибкой,
// а не пустым переводом.
func Extract(c Completion) (string, error) {
	if len(c.Choices) == 0 {
		return "", &ExtractionError{Reason: "no choices"}
	}
	choice := c.Choices[0]
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", &ExtractionError{Reason: "empty content", FinishReason: choice.FinishReason}
	}
	return choice.Message.Content, nil
}
