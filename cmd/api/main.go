package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fitted/internal/describe"
	"fitted/internal/http/handlers"
	httpapi "fitted/internal/http/httpapi"
	"fitted/internal/imageprep"
	"fitted/internal/infra"
	"fitted/internal/photos"
	"fitted/internal/providers/rembg"
	"fitted/internal/providers/synth"
	"fitted/internal/providers/vision"
	"fitted/internal/storage"
	"fitted/internal/tryon"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	visionClient, err := vision.NewClient(vision.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build vision client")
	}

	resolver := imageprep.NewResolver(imageprep.ResolverOptions{BaseURL: cfg.BaseURL})
	describer := describe.NewService(visionClient, resolver, &logger)

	generator := synth.NewClient(synth.Options{
		APIToken: cfg.ReplicateAPIToken,
		BaseURL:  cfg.ReplicateBaseURL,
		Model:    cfg.ReplicateModel,
	})

	var remover rembg.Remover
	if cfg.RembgURL != "" {
		client, err := rembg.NewClient(rembg.Options{URL: cfg.RembgURL})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build background removal client")
		}
		remover = client
	} else {
		logger.Warn().Msg("REMBG_URL not set; background removal disabled")
	}

	results, err := storage.NewFileStore(cfg.ResultsDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare results storage")
	}
	photoStore, err := photos.NewStore(cfg.PhotosDir, cfg.BaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare photo storage")
	}

	orchestrator := tryon.NewService(tryon.ServiceOptions{
		Describer: describer,
		Generator: generator,
		Remover:   remover,
		Resolver:  resolver,
		Store:     tryon.NewStore(cfg.SessionTTL),
		Results:   results,
		BaseURL:   cfg.BaseURL,
		Logger:    &logger,
	})

	app := handlers.NewApp(orchestrator, photoStore, &logger)

	router := httpapi.NewRouter(httpapi.RouterOptions{
		App:             app,
		Logger:          logger,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		PhotosDir:       cfg.PhotosDir,
		ResultsDir:      cfg.ResultsDir,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

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
