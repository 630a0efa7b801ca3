package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bikeshop/internal/service"
	"bikeshop/internal/storage"
)

type OrderHandler struct {
	Store       storage.Store
	Fulfillment *service.Fulfillment
}

type placeOrderRequest struct {
	UserID uint                  `json:"user_id"`
	Lines  []service.LineRequest `json:"lines"`
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	result, err := h.Fulfillment.PlaceOrder(c.Request().Context(), req.UserID, req.Lines)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	order, lines, err := h.Store.Orders().Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"order": order,
		"lines": lines,
	})
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	if userID := parseIntDefault(c.QueryParam("user_id"), 0); userID > 0 {
		orders, err := h.Store.Orders().ListByUser(c.Request().Context(), uint(userID))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, orders)
	}

	orders, err := h.Store.Orders().List(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}
