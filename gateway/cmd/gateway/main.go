package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/gateway/internal/config"
	"github.com/Skotchmaster/inventory/gateway/internal/httpserver"
	"github.com/Skotchmaster/inventory/pkg/logging"
)

func main() {
	_ = godotenv.Load("gateway/.env")
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "gateway")
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 30 * time.Second

	err := httpserver.Register(e, &httpserver.Deps{
		AuthURL:      cfg.AuthURL,
		InventoryURL: cfg.InventoryURL,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("register routes: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.ListenPort)
	go func() {
		logger.Info("listening", "addr", addr, "auth", cfg.AuthURL, "inventory", cfg.InventoryURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", "error", err)
		return
	}
	logger.Info("stopped")
}
