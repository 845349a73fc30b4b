package llm

// DefaultModel модель, с которой работал исходный сервис.
const DefaultModel = "llama-3.1-8b-instant"

// KnownModels содержит chat-модели Groq, проверенные на переводах.
var KnownModels = []ModelInfo{
	{
		ID:          DefaultModel,
		Name:        "Llama 3.1 8B Instant",
		Description: "Быстрая дешёвая модель, по умолчанию",
	},
	{
		ID:          "llama-3.3-70b-versatile",
		Name:        "Llama 3.3 70B",
		Description: "Лучше держит стиль и редкие языки",
	},
	{
		ID:          "openai/gpt-oss-20b",
		Name:        "GPT-OSS 20B",
		Description: "Открытая модель OpenAI",
	},
	{
		ID:          "openai/gpt-oss-120b",
		Name:        "GPT-OSS 120B",
		Description: "Крупная открытая модель OpenAI",
	},
}

// ModelInfo описывает информацию о модели.
type ModelInfo struct {
	ID          string // Идентификатор модели для API
	Name        string // Короткое название для отображения
	Description string
}

// GetModelByID возвращает информацию о модели по её ID или nil.
func GetModelByID(modelID string) *ModelInfo {
	for _, m := range KnownModels {
		if m.ID == modelID {
			return &m
		}
	}
	return nil
}

// IsKnownModel проверяет, есть ли modelID в каталоге.
// Неизвестная модель не ошибка: провайдер может знать больше.
func IsKnownModel(modelID string) bool {
	return GetModelByID(modelID) != nil
}
