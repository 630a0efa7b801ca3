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

type BikeHandler struct {
	Store    storage.Store
	Producer *events.Producer
	Search   *search.Service
}

type bikeRequest struct {
	Model    string  `json:"model"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Quantity uint    `json:"quantity"`
}

func (h *BikeHandler) GetBike(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	bike, err := h.Store.Bikes().Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, bike)
}

func (h *BikeHandler) GetBikes(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	bikes, err := h.Store.Bikes().List(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}

	total := len(bikes)
	if from > total {
		from = total
	}
	end := from + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": bikes[from:end],
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *BikeHandler) SearchBikes(c echo.Context) error {
	field := c.QueryParam("field")
	value := c.QueryParam("value")

	bikes, err := h.Store.Bikes().FindByField(c.Request().Context(), field, value, matchMode(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, bikes)
}

func (h *BikeHandler) CreateBike(c echo.Context) error {
	var req bikeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	bike := models.Bike{
		Model:    req.Model,
		Brand:    req.Brand,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	id, err := h.Store.Bikes().Create(c.Request().Context(), &bike)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.Search.IndexBike(c.Request().Context(), &bike); err != nil {
		c.Logger().Errorf("search index error: %v", err)
	}
	publish(c, h.Producer, events.TopicInventory, "bike", map[string]any{
		"type":    "bike_created",
		"bike_id": id,
		"model":   bike.Model,
	})

	return c.JSON(http.StatusCreated, bike)
}

func (h *BikeHandler) UpdateBike(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req bikeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	bike := models.Bike{
		Model:    req.Model,
		Brand:    req.Brand,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	if err := h.Store.Bikes().Update(c.Request().Context(), id, &bike); err != nil {
		return errorResponse(c, err)
	}

	if err := h.Search.IndexBike(c.Request().Context(), &bike); err != nil {
		c.Logger().Errorf("search index error: %v", err)
	}
	publish(c, h.Producer, events.TopicInventory, "bike", map[string]any{
		"type":    "bike_updated",
		"bike_id": id,
		"model":   bike.Model,
	})

	return c.JSON(http.StatusOK, bike)
}

func (h *BikeHandler) DeleteBike(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.Store.Bikes().Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}

	if err := h.Search.Remove(c.Request().Context(), models.KindBike, id); err != nil {
		c.Logger().Errorf("search index error: %v", err)
	}
	publish(c, h.Producer, events.TopicInventory, "bike", map[string]any{
		"type":    "bike_deleted",
		"bike_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}
