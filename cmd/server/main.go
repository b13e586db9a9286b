package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/raghavkonduri05/member-qa-system/internal/answer"
	"github.com/raghavkonduri05/member-qa-system/internal/api"
	"github.com/raghavkonduri05/member-qa-system/internal/cache"
	"github.com/raghavkonduri05/member-qa-system/internal/config"
	"github.com/raghavkonduri05/member-qa-system/internal/handlers"
	"github.com/raghavkonduri05/member-qa-system/internal/llm"
	"github.com/raghavkonduri05/member-qa-system/internal/source"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	if cfg.OpenAIAPIKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY not set; every answer will be the fallback text")
	}

	// Wire the pipeline: fetcher -> cache -> context/answer service
	fetcher := source.NewClient(cfg.MessagesAPIURL, cfg.MessagesPageSize, logger)
	messageCache := cache.New(fetcher,
		cache.WithTTL(cfg.CacheTTL),
		cache.WithLogger(logger),
	)
	generator := llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	answers := answer.New(messageCache, generator, cfg.ContextCharBudget, logger)

	// Create router
	h := handlers.NewHandler(answers, fetcher, messageCache)
	router := api.NewRouter(logger, h, cfg.RateLimitWhitelist)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // /ask waits on a full fetch plus a generation call
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("messages_api", cfg.MessagesAPIURL).
			Msg("starting member Q&A server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
