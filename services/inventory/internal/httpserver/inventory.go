package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/pkg/logging"
	"github.com/Skotchmaster/inventory/services/inventory/internal/search"
	"github.com/Skotchmaster/inventory/services/inventory/internal/service"
	"github.com/Skotchmaster/inventory/services/inventory/internal/transport"
	"github.com/Skotchmaster/inventory/services/inventory/internal/util"
)

type InventoryHTTP struct {
	Svc *service.InventoryService
}

func (h *InventoryHTTP) ListItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.list_items")

	items, err := h.Svc.ListItems(ctx)
	if err != nil {
		l.Error("list_items_error", "status", 500, "reason", "cannot read inventory", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read inventory")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.create_item")

	var req transport.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.CreateItem(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_item_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "name is required")
		}
		l.Error("create_item_error", "status", 500, "reason", "cannot add item to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add item to db")
	}

	l.Info("create_item_success", "item_id", item.ID.String())
	return c.JSON(http.StatusCreated, item)
}

func (h *InventoryHTTP) PatchItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.patch_item")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("patch_item_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	var req transport.PatchItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.PatchItem(ctx, req, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("patch_item_error", "status", 404, "item_id", id.String())
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_item_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "name cannot be empty")
		default:
			l.Error("patch_item_error", "status", 500, "reason", "cannot update item", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update item")
		}
	}

	l.Info("patch_item_success", "item_id", id.String())
	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHTTP) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.delete_item")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_item_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	if err := h.Svc.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_item_error", "status", 404, "item_id", id.String())
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		l.Error("delete_item_error", "status", 500, "reason", "cannot delete item from db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete item from db")
	}

	l.Info("delete_item_success", "item_id", id.String())
	return c.NoContent(http.StatusNoContent)
}

func (h *InventoryHTTP) SearchItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.search_items")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchItems(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "query is required")
		case errors.Is(err, search.ErrDisabled):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
		default:
			l.Error("search_items_error", "status", 502, "error", err)
			return echo.NewHTTPError(http.StatusBadGateway, "search failed")
		}
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Items: items})
}
