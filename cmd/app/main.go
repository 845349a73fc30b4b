package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"translator/internal/config"
	"translator/internal/httpserver"
	"translator/internal/llm"
	"translator/internal/prompt"
	"translator/internal/translation"
	"translator/internal/transport"
)

func main() {
	if err := config.LoadDotEnv(getEnv("DOTENV_PATH", ".env")); err != nil {
		log.Fatalf("failed to load env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	template, err := prompt.NewChatTemplate(cfg.SystemTemplate)
	if err != nil {
		log.Fatalf("invalid TRANSLATE_SYSTEM_TEMPLATE: %v", err)
	}

	httpClient := transport.NewHTTPClient(cfg.RequestTimeout)
	llmClient, err := llm.NewGroqClient(cfg.Groq, httpClient, logger)
	if err != nil {
		log.Fatalf("failed to init llm client: %v", err)
	}
	if !llm.IsKnownModel(cfg.Groq.Model) {
		logger.Warn("model is not in the known list, passing it to the provider as is",
			slog.String("model", cfg.Groq.Model))
	}

	service := translation.NewService(translation.ServiceDeps{
		LLM:                 llmClient,
		Template:            template,
		Model:               cfg.Groq.Model,
		ResolveLanguageTags: cfg.ResolveLanguageTags,
		Logger:              logger,
	})

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Logger:           logger,
		TranslateHandler: translation.NewHandler(service, logger),
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 15*time.Second, // запись ответа ждёт провайдера
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("model", cfg.Groq.Model))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}
