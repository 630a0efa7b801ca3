package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bikeshop/internal/events"
	"bikeshop/internal/models"
	"bikeshop/internal/service/search"
	"bikeshop/internal/storage"
	"bikeshop/internal/util"
)

type PartHandler struct {
	Store    storage.Store
	Producer *events.Producer
	Search   *search.Service
}

type partRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity uint    `json:"quantity"`
}

func (h *PartHandler) GetPart(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	part, err := h.Store.Parts().Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, part)
}

func (h *PartHandler) GetParts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	parts, err := h.Store.Parts().List(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}

	total := len(parts)
	if from > total {
		from = total
	}
	end := from + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": parts[from:end],
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *PartHandler) SearchParts(c echo.Context) error {
	field := c.QueryParam("field")
	value := c.QueryParam("value")

	parts, err := h.Store.Parts().FindByField(c.Request().Context(), field, value, matchMode(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, parts)
}

func (h *PartHandler) CreatePart(c echo.Context) error {
	var req partRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	part := models.Part{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	id, err := h.Store.Parts().Create(c.Request().Context(), &part)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.Search.IndexPart(c.Request().Context(), &part); err != nil {
		c.Logger().Errorf("search index error: %v", err)
	}
	publish(c, h.Producer, events.TopicInventory, "part", map[string]any{
		"type":    "part_created",
		"part_id": id,
		"name":    part.Name,
	})

	return c.JSON(http.StatusCreated, part)
}

func (h *PartHandler) UpdatePart(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req partRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	part := models.Part{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	if err := h.Store.Parts().Update(c.Request().Context(), id, &part); err != nil {
		return errorResponse(c, err)
	}

	if err := h.Search.IndexPart(c.Request().Context(), &part); err != nil {
		c.Logger().Errorf("search index error: %v", err)
	}
	publish(c, h.Producer, events.TopicInventory, "part", map[string]any{
		"type":    "part_updated",
		"part_id": id,
		"name":    part.Name,
	})

	return c.JSON(http.StatusOK, part)
}

func (h *PartHandler) DeletePart(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.Store.Parts().Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}

	if err := h.Search.Remove(c.Request().Context(), models.KindPart, id); err != nil {
		c.Logger().Errorf("search index error: %v", err)
	}
	publish(c, h.Producer, events.TopicInventory, "part", map[string]any{
		"type":    "part_deleted",
		"part_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}
