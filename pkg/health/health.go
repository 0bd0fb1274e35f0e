// Package health mounts the liveness and readiness probes shared by every
// HTTP binary.
package health

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/pkg/logging"
)

// Check reports whether a dependency can serve traffic.
type Check func(ctx context.Context) error

// Register adds /health/live and /health/ready. A nil check is always ready.
func Register(e *echo.Echo, ready Check) {
	e.GET("/health/live", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/health/ready", func(c echo.Context) error {
		if ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx := c.Request().Context()
		if err := ready(ctx); err != nil {
			logging.FromContext(ctx).Warn("not_ready", "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
		}
		return c.NoContent(http.StatusOK)
	})
}
