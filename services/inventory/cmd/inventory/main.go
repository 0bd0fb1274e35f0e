package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/inventory/pkg/authclient"
	pkgdb "github.com/Skotchmaster/inventory/pkg/db"
	"github.com/Skotchmaster/inventory/pkg/events"
	jwthelp "github.com/Skotchmaster/inventory/pkg/jwt"
	"github.com/Skotchmaster/inventory/pkg/logging"
	loggingmw "github.com/Skotchmaster/inventory/pkg/middleware/logging"

	inventorycfg "github.com/Skotchmaster/inventory/services/inventory/internal/config"
	"github.com/Skotchmaster/inventory/services/inventory/internal/httpserver"
	"github.com/Skotchmaster/inventory/services/inventory/internal/repo"
	"github.com/Skotchmaster/inventory/services/inventory/internal/search"
	"github.com/Skotchmaster/inventory/services/inventory/internal/service"
)

func main() {
	if err := godotenv.Load("services/inventory/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := inventorycfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	repo := &repo.GormRepo{DB: db}
	if err := repo.Migrate(context.Background()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	publisher, err := events.New(cfg.KafkaBrokers)
	if err != nil {
		log.Fatalf("kafka producer: %v", err)
	}

	index, err := search.New(cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
	if err != nil {
		logger.Warn("search_disabled", "error", err)
		index = search.Nop{}
	}

	svc := &service.InventoryService{Repo: repo, Events: publisher, Search: index}
	handler := &httpserver.InventoryHTTP{Svc: svc}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		InventoryHandler: handler,
		JWTSecret:        cfg.JWTAccessSecret,
		AuthClient:       authclient.NewClient(cfg.AuthHTTPURL),
		Cookies:          jwthelp.Cookies{Secure: cfg.CookieSecure},
		Ready:            func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = publisher.Close()
	_ = pkgdb.Close(db)

	logger.Info("stopped")
}
