package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/iconidentify/vidgate/internal/config"
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
		fmt.Printf("vidgate-set-webhook %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Unlike the serving core, webhook registration cannot do anything
	// useful without the token and the public URL.
	if cfg.Bot.Token == "" || cfg.Server.PublicBaseURL == "" {
		logger.Error("BOT_TOKEN and WEBHOOK_URL environment variables are required")
		os.Exit(1)
	}

	webhookURL := strings.TrimSuffix(cfg.Server.PublicBaseURL, "/") + "/telegram/webhook"
	logger.Info("setting webhook", "url", webhookURL)

	bot := telegram.NewClient(cfg.Bot)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	description, err := bot.SetWebhook(ctx, webhookURL)
	if err != nil {
		logger.Error("failed to set webhook", "error", err, "response", description)
		os.Exit(1)
	}

	logger.Info("webhook set successfully", "response", description)
}
