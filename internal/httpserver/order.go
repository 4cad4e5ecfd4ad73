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
	"github.com/Veldkraal/farm_shop/internal/util"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) Place(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")
	userID := mwauth.CurrentUserID(c)

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.Place(ctx, userID, req)
	if err != nil {
		return mapError(l, "place_order_error", err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(userID), map[string]any{
		"type":       "order_created",
		"userID":     userID,
		"orderID":    resp.Order.ID,
		"number":     resp.Order.Number,
		"totalCents": resp.Order.TotalCents,
	})

	l.Info("place_order_success", "orderID", resp.Order.ID, "number", resp.Order.Number)
	return c.JSON(http.StatusCreated, resp)
}

func (h *OrderHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_mine")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, err := h.Svc.ListMine(ctx, mwauth.CurrentUserID(c), offset, limit)
	if err != nil {
		return mapError(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_mine")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("get_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	resp, err := h.Svc.GetMine(ctx, mwauth.CurrentUserID(c), uint(id))
	if err != nil {
		return mapError(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_all")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListAll(ctx, offset, limit)
	if err != nil {
		return mapError(l, "list_all_orders_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

// UpdateStatus sits behind the admin middleware; the status value is checked
// before any mutation.
func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("update_order_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, uint(id), req.Status)
	if err != nil {
		return mapError(l, "update_order_status_error", err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(order.UserID), map[string]any{
		"type":    "order_status_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})
	return c.JSON(http.StatusOK, order)
}
