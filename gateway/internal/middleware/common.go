package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	reqlog "github.com/Skotchmaster/inventory/pkg/middleware/logging"
)

// MaxBody caps request bodies. Inventory and auth payloads are tiny.
const MaxBody = "1M"

// Common is the chain every proxied request passes through, outermost first.
func Common(logger *slog.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
		reqlog.RequestLogger(logger),
		ecM.BodyLimit(MaxBody),
		ecM.SecureWithConfig(ecM.SecureConfig{
			XSSProtection:      "1; mode=block",
			ContentTypeNosniff: "nosniff",
			XFrameOptions:      "DENY",
			ReferrerPolicy:     "no-referrer",
		}),
	}
}
