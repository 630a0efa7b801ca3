package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

type StaffHandler struct {
	Store storage.Store
}

type staffRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	UserID   *uint  `json:"user_id"`
}

func (h *StaffHandler) GetStaff(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	staff, err := h.Store.Staff().Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) ListStaff(c echo.Context) error {
	staff, err := h.Store.Staff().List(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) SearchStaff(c echo.Context) error {
	field := c.QueryParam("field")
	value := c.QueryParam("value")

	staff, err := h.Store.Staff().FindByField(c.Request().Context(), field, value, matchMode(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) CreateStaff(c echo.Context) error {
	var req staffRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	staff := models.Staff{
		Name:     req.Name,
		Position: req.Position,
		UserID:   req.UserID,
	}
	if _, err := h.Store.Staff().Create(c.Request().Context(), &staff); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, staff)
}

func (h *StaffHandler) UpdateStaff(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req staffRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	staff := models.Staff{
		Name:     req.Name,
		Position: req.Position,
		UserID:   req.UserID,
	}
	if err := h.Store.Staff().Update(c.Request().Context(), id, &staff); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) DeleteStaff(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.Store.Staff().Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
