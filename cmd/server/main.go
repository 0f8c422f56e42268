package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/storage/redis/v3"

	"tramites/internal/config"
	"tramites/internal/email"
	"tramites/internal/logging"
	"tramites/internal/reports"
	"tramites/internal/server"
	"tramites/internal/socrata"
	"tramites/internal/tramites"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	log := logging.New(cfg.Env)

	// Response cache: Redis when configured, in-process otherwise.
	var storage socrata.Storage
	if cfg.RedisURL != "" {
		storage = redis.New(redis.Config{URL: cfg.RedisURL})
		log.Info().Msg("using redis response cache")
	} else {
		storage = socrata.NewMemoryStorage()
		log.Info().Msg("using in-process response cache")
	}

	client := socrata.NewClient(socrata.Config{
		Domain:   cfg.SocrataDomain,
		AppToken: cfg.SocrataAppToken,
		Timeout:  cfg.SocrataTimeout,
		Cache:    socrata.NewCache(storage, cfg.CacheTTL),
		Logger:   log,
	})

	svc := tramites.NewService(
		client.Resource(cfg.SocrataDatasetID),
		client.Resource(cfg.SocrataSuitDatasetID),
		log,
	)

	var store reports.Store
	switch cfg.ReportsBackend {
	case "postgres":
		pgStore, err := reports.NewPGStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open postgres report store")
		}
		defer pgStore.Close()
		store = pgStore
		log.Info().Msg("using postgres report store")
	default:
		fileStore, err := reports.NewFileStore(cfg.ReportsFile, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open file report store")
		}
		store = fileStore
		log.Info().Str("path", cfg.ReportsFile).Msg("using file report store")
	}

	notifier := email.NewNotifier(cfg, log)

	srv := server.New(cfg, log)
	if err := srv.RegisterRoutes(ctx, server.Dependencies{
		Service:  svc,
		Reports:  store,
		Notifier: notifier,
		Metadata: client,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to register routes")
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}
