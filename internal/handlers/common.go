package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"bikeshop/internal/events"
	"bikeshop/internal/storage"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, err error) error {
	return c.JSON(statusFor(err), Response{
		Status:  "error",
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrAuthFailure):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrDuplicateUsername),
		errors.Is(err, storage.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, storage.ErrValidation),
		errors.Is(err, storage.ErrUnknownItem):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", storage.ErrValidation)
	}
	return uint(id), nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// matchMode maps the ?match= query param; edit flows use exact, browse
// flows substring.
func matchMode(c echo.Context) storage.Match {
	if c.QueryParam("match") == "exact" {
		return storage.MatchExact
	}
	return storage.MatchSubstring
}

func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.Publish(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
