package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/p-shah256/bridge/internal/api"
	"github.com/p-shah256/bridge/internal/config"
	"github.com/p-shah256/bridge/internal/llm"
	"github.com/p-shah256/bridge/internal/matching"
	"github.com/p-shah256/bridge/internal/notify"
	"github.com/p-shah256/bridge/internal/pricing"
	"github.com/p-shah256/bridge/internal/storage"
	"github.com/p-shah256/bridge/pkg/logger"
)

func main() {
	logger.Setup("info", "text")

	cfg, err := config.Load("")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Bridge job placement API...",
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.Model,
		"seed_data", cfg.Storage.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []storage.Option
	if cfg.Storage.Seed {
		opts = append(opts, storage.WithSampleData())
	}
	store := storage.NewMemStorage(opts...)

	assistant, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		slog.Error("Failed to create LLM client", "error", err)
		os.Exit(1)
	}
	defer assistant.Close()

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Discord.Enabled() {
		discord, err := notify.NewDiscord(cfg.Discord.BotToken, cfg.Discord.ChannelID)
		if err != nil {
			slog.Error("Failed to create Discord notifier", "error", err)
			os.Exit(1)
		}
		defer discord.Close()
		notifier = discord
		slog.Info("Discord match notifications enabled", "channel_id", cfg.Discord.ChannelID)
	}

	matcher := matching.NewService(store, assistant, notifier, cfg.Matching.MaxJobs)
	server := api.NewServer(cfg.Server, store, matcher, assistant, pricing.NewService(store))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()
	slog.Info("Server initialized", "port", cfg.Server.Port)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Error starting API server", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}
