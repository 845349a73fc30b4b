package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultSystemTemplate = "Translate the following into {language}:"

// ErrMissingAPIKey общий для config и llm: без ключа сервис не стартует.
var ErrMissingAPIKey = errors.New("GROQ_API_KEY is not set")

type Config struct {
	HTTPAddr            string
	LogLevel            string
	RequestTimeout      time.Duration
	SystemTemplate      string
	ResolveLanguageTags bool
	Groq                GroqConfig
}

type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// LoadDotEnv подтягивает переменные из .env, не перетирая уже заданные.
// Отсутствие файла не ошибка.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load читает конфигурацию из окружения один раз при старте.
// Без ключа провайдера сервис не стартует.
func Load() (Config, error) {
	var cfg Config

	cfg.HTTPAddr = getEnv("HTTP_ADDR", "127.0.0.1:8000")
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.SystemTemplate = getEnv("TRANSLATE_SYSTEM_TEMPLATE", DefaultSystemTemplate)

	reqTimeout, err := parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = reqTimeout

	resolve, err := parseBoolDefault(getEnv("RESOLVE_LANGUAGE_TAGS", ""), false)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESOLVE_LANGUAGE_TAGS: %w", err)
	}
	cfg.ResolveLanguageTags = resolve

	cfg.Groq = GroqConfig{
		APIKey:  strings.TrimSpace(getEnv("GROQ_API_KEY", "")),
		BaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		Model:   getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
	}
	if cfg.Groq.APIKey == "" {
		return Config{}, ErrMissingAPIKey
	}
	if cfg.Groq.Model == "" {
		return Config{}, fmt.Errorf("GROQ_MODEL must not be empty")
	}

	return cfg, nil
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", value)
	}
	return d, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

// parseBoolDefault разбирает необязательный bool со значением по умолчанию.
func parseBoolDefault(value string, def bool) (bool, error) {
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return parsed, nil
}
