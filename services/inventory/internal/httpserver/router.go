package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/pkg/health"
	jwthelp "github.com/Skotchmaster/inventory/pkg/jwt"
	middleware "github.com/Skotchmaster/inventory/pkg/middleware/auth"
)

type Deps struct {
	InventoryHandler *InventoryHTTP
	JWTSecret        []byte
	AuthClient       middleware.Refresher
	Cookies          jwthelp.Cookies
	Ready            health.Check
}

func Register(e *echo.Echo, d *Deps) {
	health.Register(e, d.Ready)

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient, d.Cookies)

	items := e.Group("/inventory", authMW.RequireAuth)
	items.GET("", d.InventoryHandler.ListItems)
	items.POST("", d.InventoryHandler.CreateItem)
	items.GET("/search", d.InventoryHandler.SearchItems)
	items.PATCH("/:id", d.InventoryHandler.PatchItem)
	items.DELETE("/:id", d.InventoryHandler.DeleteItem)
}
