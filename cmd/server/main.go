package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iconidentify/vidgate/internal/api"
	"github.com/iconidentify/vidgate/internal/api/handler"
	"github.com/iconidentify/vidgate/internal/config"
	"github.com/iconidentify/vidgate/internal/repository"
	"github.com/iconidentify/vidgate/internal/service"
	"github.com/iconidentify/vidgate/internal/worker"
	"github.com/iconidentify/vidgate/pkg/ffmpeg"
	"github.com/iconidentify/vidgate/pkg/telegram"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vidgate %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting vidgate",
		"version", Version,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Bot.ChannelID == 0 {
		// Serving still works; ingestion just never matches a post.
		logger.Warn("CHANNEL_CHAT_ID not set, channel ingestion disabled")
	}

	// Ensure storage directories exist
	if err := os.MkdirAll(cfg.Storage.PreviewPath, 0755); err != nil {
		logger.Error("failed to create preview directory", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.Storage.TempPath, 0755); err != nil {
		logger.Error("failed to create temp directory", "error", err)
		os.Exit(1)
	}

	// Initialize dependencies
	repo, err := repository.NewSQLiteVideoRepository(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	bot := telegram.NewClient(cfg.Bot)

	trimmer, err := ffmpeg.NewTrimmer(cfg.Preview.DurationSeconds)
	if err != nil {
		logger.Error("ffmpeg not available", "error", err)
		os.Exit(1)
	}

	// Initialize services. The bot client is constructed once here and
	// handed to every consumer; nothing mutates it afterwards.
	supervisor := worker.NewSupervisor(logger)

	ingestSvc := service.NewIngestService(
		bot,
		trimmer,
		repo,
		cfg.Bot.ChannelID,
		cfg.Storage.TempPath,
		cfg.Storage.PreviewPath,
		logger,
	)
	deliverySvc := service.NewDeliveryService(bot, repo, cfg.Server.PublicBaseURL, logger)
	dispatcher := service.NewDispatcher(ingestSvc, deliverySvc, supervisor, logger)

	// Initialize handlers
	webhookHandler := handler.NewWebhookHandler(dispatcher, logger)
	videoHandler := handler.NewVideoHandler(repo, cfg.Server.PublicBaseURL, logger)
	previewHandler := handler.NewPreviewHandler(cfg.Storage.PreviewPath, logger)
	redirectHandler := handler.NewRedirectHandler(bot, logger)
	healthHandler := handler.NewHealthHandler()
	uiHandler := handler.NewUIHandler()

	// Setup router
	router := api.NewRouter(
		webhookHandler,
		videoHandler,
		previewHandler,
		redirectHandler,
		healthHandler,
		uiHandler,
	)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop accepting new requests
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Let in-flight ingestion tasks finish
	if err := supervisor.Wait(25 * time.Second); err != nil {
		logger.Error("supervisor shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
