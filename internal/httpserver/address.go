package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Veldkraal/farm_shop/internal/logging"
	mwauth "github.com/Veldkraal/farm_shop/internal/middleware/auth"
	"github.com/Veldkraal/farm_shop/internal/service"
	"github.com/Veldkraal/farm_shop/internal/transport"
)

type AddressHTTP struct {
	Svc *service.AddressService
}

func (h *AddressHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.list")

	addrs, err := h.Svc.List(ctx, mwauth.CurrentUserID(c))
	if err != nil {
		return mapError(l, "list_addresses_error", err)
	}
	return c.JSON(http.StatusOK, addrs)
}

func (h *AddressHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.create")

	var req transport.CreateAddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_address_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Svc.Create(ctx, mwauth.CurrentUserID(c), req)
	if err != nil {
		return mapError(l, "create_address_error", err)
	}
	return c.JSON(http.StatusCreated, addr)
}

func (h *AddressHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("update_address_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateAddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_address_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Svc.Update(ctx, mwauth.CurrentUserID(c), uint(id), req)
	if err != nil {
		return mapError(l, "update_address_error", err)
	}
	return c.JSON(http.StatusOK, addr)
}

func (h *AddressHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("delete_address_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.Delete(ctx, mwauth.CurrentUserID(c), uint(id)); err != nil {
		return mapError(l, "delete_address_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
