package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/gateway/internal/middleware"
	"github.com/Skotchmaster/inventory/pkg/health"
)

type Deps struct {
	AuthURL      string
	InventoryURL string

	Logger *slog.Logger
}

func Register(e *echo.Echo, d *Deps) error {
	health.Register(e, nil)

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, m := range middleware.Common(logger) {
		e.Use(m)
	}

	authProxy, err := newProxy("auth", d.AuthURL, "/api/v1/auth", logger)
	if err != nil {
		return err
	}

	inventoryProxy, err := newProxy("inventory", d.InventoryURL, "/api/v1", logger)
	if err != nil {
		return err
	}

	e.Any("/api/v1/auth/*", authProxy)
	e.Any("/api/v1/inventory", inventoryProxy)
	e.Any("/api/v1/inventory/*", inventoryProxy)

	return nil
}
