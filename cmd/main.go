package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/music-league-system/config"
	"github.com/Dosada05/music-league-system/handlers"
	"github.com/Dosada05/music-league-system/live"
	"github.com/Dosada05/music-league-system/repositories"
	api "github.com/Dosada05/music-league-system/routes"
	"github.com/Dosada05/music-league-system/services"
	"github.com/Dosada05/music-league-system/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("archive_source", cfg.ArchiveSource))

	manifest, err := config.LoadManifest(cfg.ManifestPath)
	if err != nil {
		logger.Error("failed to load archive manifest", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("archive manifest loaded", slog.Int("categories", len(manifest.Categories)))

	var fetcher storage.ArchiveFetcher
	switch cfg.ArchiveSource {
	case "r2":
		fetcher, err = storage.NewCloudflareR2Fetcher(storage.CloudflareR2FetcherConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			KeyPrefix:       cfg.R2KeyPrefix,
		})
	default:
		fetcher, err = storage.NewHTTPFetcher(cfg.ArchiveBaseURL, &http.Client{Timeout: cfg.LoadTimeout})
	}
	if err != nil {
		logger.Error("failed to initialize archive fetcher", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("archive fetcher initialized")

	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("websocket hub started")

	leagueRepo := repositories.NewInMemoryLeagueRepository()
	leagueService := services.NewLeagueService(fetcher, cfg.LoadTimeout, logger)
	catalogService := services.NewCatalogService(manifest, leagueService, leagueRepo, wsHub, logger)
	logger.Info("services initialized")

	// Refresh scheduler: one run at startup, then on the ticker. A refresh
	// recomputes every league from scratch; there is no incremental path.
	go func() {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
		logger.Info("league refresh scheduler started", slog.Duration("interval", cfg.RefreshInterval))

		catalogService.RefreshAll(context.Background())
		for range ticker.C {
			logger.Info("scheduler: refreshing leagues")
			catalogService.RefreshAll(context.Background())
		}
	}()

	leagueHandler := handlers.NewLeagueHandler(catalogService, cfg.PrivacyMode)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)

	router := chi.NewRouter()
	api.SetupRoutes(router, leagueHandler, webSocketHandler, cfg.AllowedOrigins, []byte(cfg.AdminJWTSecret))
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
