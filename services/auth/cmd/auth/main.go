package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/Skotchmaster/inventory/pkg/db"
	"github.com/Skotchmaster/inventory/pkg/events"
	jwthelp "github.com/Skotchmaster/inventory/pkg/jwt"
	"github.com/Skotchmaster/inventory/pkg/logging"
	reqlog "github.com/Skotchmaster/inventory/pkg/middleware/logging"
	"github.com/Skotchmaster/inventory/services/auth/internal/config"
	"github.com/Skotchmaster/inventory/services/auth/internal/httpserver"
	"github.com/Skotchmaster/inventory/services/auth/internal/repo"
	"github.com/Skotchmaster/inventory/services/auth/internal/service"
)

func main() {
	_ = godotenv.Load("services/auth/.env")
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer pkgdb.Close(db)

	gormRepo := &repo.GormRepo{DB: db}
	if err := gormRepo.Migrate(context.Background()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	publisher, err := events.New(cfg.KafkaBrokers)
	if err != nil {
		log.Fatalf("kafka producer: %v", err)
	}
	defer publisher.Close()

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(ecM.Recover(), ecM.RequestID(), reqlog.RequestLogger(logger))

	authHTTP := &httpserver.AuthHTTP{
		Svc: &service.AuthService{
			Repo:          gormRepo,
			Events:        publisher,
			JWTSecret:     cfg.JWTAccessSecret,
			RefreshSecret: cfg.JWTRefreshSecret,
			AccessTTL:     cfg.AccessTTL,
			RefreshTTL:    cfg.RefreshTTL,
		},
		Cookies: jwthelp.Cookies{Secure: cfg.CookieSecure},
	}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: authHTTP,
		JWTSecret:   cfg.JWTAccessSecret,
		Ready:       func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}
}
