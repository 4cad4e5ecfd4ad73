package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Veldkraal/farm_shop/internal/logging"
	mwauth "github.com/Veldkraal/farm_shop/internal/middleware/auth"
	"github.com/Veldkraal/farm_shop/internal/service"
	"github.com/Veldkraal/farm_shop/internal/transport"
	"github.com/Veldkraal/farm_shop/internal/util"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		l.Warn("list_reviews_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, reviews, err := h.Svc.ListByProduct(ctx, uint(productID), offset, limit)
	if err != nil {
		return mapError(l, "list_reviews_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"total": total, "reviews": reviews})
}

func (h *ReviewHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		l.Warn("create_review_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_review_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.Create(ctx, mwauth.CurrentUserID(c), uint(productID), req)
	if err != nil {
		return mapError(l, "create_review_error", err)
	}
	return c.JSON(http.StatusCreated, review)
}
