package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/pkg/health"
	"github.com/Skotchmaster/inventory/services/auth/internal/middleware"
)

type Deps struct {
	AuthHandler *AuthHTTP
	JWTSecret   []byte
	Ready       health.Check
}

// Register mounts the auth routes at the root. The gateway strips its
// /api/v1/auth prefix before forwarding.
func Register(e *echo.Echo, d *Deps) {
	health.Register(e, d.Ready)

	h := d.AuthHandler
	e.POST("/signup", h.SignUp)
	e.POST("/login", h.Login)
	e.POST("/refresh", h.Refresh)
	e.POST("/logout", h.LogOut)

	session := e.Group("", middleware.NewSimpleAuth(d.JWTSecret, h.Cookies, h.renew).RequireAuth)
	session.GET("/user", h.CurrentUser)
}
