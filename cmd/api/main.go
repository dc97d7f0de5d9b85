package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bsatnami/Ai-Masterji/internal/genai"
	httpapi "github.com/bsatnami/Ai-Masterji/internal/http"
	"github.com/bsatnami/Ai-Masterji/internal/http/handlers"
	"github.com/bsatnami/Ai-Masterji/internal/infra"
	"github.com/bsatnami/Ai-Masterji/internal/poster"
	"github.com/bsatnami/Ai-Masterji/internal/storage"
	"github.com/bsatnami/Ai-Masterji/internal/studio"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	// Configuration & logger
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// Gemini client shared by every invoker
	client := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.GeminiModel,
		ImageModel: cfg.GeminiImageModel,
		Logger:     &logger,
	})

	// Studio session (single-workspace state machine)
	session := studio.NewSession(
		poster.NewAnalyzer(client),
		poster.NewGenerator(client),
		poster.NewEditor(client),
		poster.NewSuggester(client, cfg.SuggestionTTL, logger),
		logger,
	)

	// Export store on the local filesystem
	store, err := storage.NewFileStore(cfg.ExportDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare export directory")
	}

	// App container
	app := handlers.NewApp(session, store, logger)

	// Router with middleware chain
	router := httpapi.NewRouter(app, cfg, logger)

	// HTTP server wrapper from infra
	server := infra.NewHTTPServer(cfg, router)

	// Start async
	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
