package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	clientcfg "github.com/Skotchmaster/inventory/client/internal/config"
	"github.com/Skotchmaster/inventory/client/internal/remote"
	"github.com/Skotchmaster/inventory/client/internal/screens"
	"github.com/Skotchmaster/inventory/client/internal/tui"
	"github.com/Skotchmaster/inventory/pkg/logging"
)

func main() {
	// .env is optional for the client
	_ = godotenv.Load("client/.env")

	cfg := clientcfg.Load()

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer logFile.Close()

	logger := logging.NewWriter(logFile, cfg.LogLevel).With("service", "client")
	slog.SetDefault(logger)

	if cfg.PlainHTTP() {
		logger.Warn("plain_http_backend", "backend", cfg.BackendURL,
			"hint", "services must run with COOKIE_SECURE=false or sessions will not stick")
		fmt.Fprintf(os.Stderr, "warning: %s is plain http; the services need COOKIE_SECURE=false\n", cfg.BackendURL)
	}

	client, err := remote.NewClient(cfg.BackendURL, cfg.RemoteTimeout)
	if err != nil {
		log.Fatalf("remote client: %v", err)
	}

	ctx := logging.IntoContext(context.Background(), logger)
	model := tui.New(ctx, tui.Deps{
		Store:      client,
		Auth:       client,
		Authorizer: screens.StaticSecret(cfg.GateSecret),
		Timing:     cfg.Timing,
	})

	logger.Info("client_started", "backend", cfg.BackendURL)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("client_exited", "error", err)
		log.Fatalf("run: %v", err)
	}
	logger.Info("client_stopped")
}
