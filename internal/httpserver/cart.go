package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Veldkraal/farm_shop/internal/events"
	"github.com/Veldkraal/farm_shop/internal/logging"
	mwauth "github.com/Veldkraal/farm_shop/internal/middleware/auth"
	"github.com/Veldkraal/farm_shop/internal/service"
	"github.com/Veldkraal/farm_shop/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *events.Producer
}

// GetCart tolerates anonymous callers; they get the empty view.
func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	view, err := h.Svc.View(ctx, mwauth.CurrentUserID(c))
	if err != nil {
		return mapError(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")
	userID := mwauth.CurrentUserID(c)

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.AddItem(ctx, userID, req)
	if err != nil {
		return mapError(l, "add_to_cart_error", err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":       "cart_item_added",
		"userID":     userID,
		"productID":  req.ProductID,
		"totalItems": view.TotalItems,
	})
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")
	userID := mwauth.CurrentUserID(c)

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		l.Warn("update_cart_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.UpdateItem(ctx, userID, uint(itemID), req)
	if err != nil {
		return mapError(l, "update_cart_item_error", err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":     "cart_item_updated",
		"userID":   userID,
		"itemID":   itemID,
		"quantity": req.Quantity,
	})
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")
	userID := mwauth.CurrentUserID(c)

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		l.Warn("remove_cart_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	view, err := h.Svc.RemoveItem(ctx, userID, uint(itemID))
	if err != nil {
		return mapError(l, "remove_cart_item_error", err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":   "cart_item_removed",
		"userID": userID,
		"itemID": itemID,
	})
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")
	userID := mwauth.CurrentUserID(c)

	view, err := h.Svc.Clear(ctx, userID)
	if err != nil {
		return mapError(l, "clear_cart_error", err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})
	return c.JSON(http.StatusOK, view)
}
