package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bikeshop/internal/service"
)

type AuthHandler struct {
	Accounts *service.Accounts
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	user, err := h.Accounts.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	user, err := h.Accounts.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, user)
}
