package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bikeshop/internal/events"
	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

type LedgerHandler struct {
	Store    storage.Store
	Producer *events.Producer
}

type transactionRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

func (h *LedgerHandler) GetTransaction(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	tx, err := h.Store.Transactions().Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, tx)
}

func (h *LedgerHandler) ListTransactions(c echo.Context) error {
	txs, err := h.Store.Transactions().List(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, txs)
}

func (h *LedgerHandler) SearchTransactions(c echo.Context) error {
	field := c.QueryParam("field")
	value := c.QueryParam("value")

	txs, err := h.Store.Transactions().FindByField(c.Request().Context(), field, value, matchMode(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, txs)
}

func (h *LedgerHandler) CreateTransaction(c echo.Context) error {
	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	tx := models.Transaction{
		Date:        req.Date,
		Amount:      req.Amount,
		Description: req.Description,
	}
	id, err := h.Store.Transactions().Create(c.Request().Context(), &tx)
	if err != nil {
		return errorResponse(c, err)
	}

	publish(c, h.Producer, events.TopicLedger, "transaction", map[string]any{
		"type":           "transaction_created",
		"transaction_id": id,
		"amount":         tx.Amount,
	})

	return c.JSON(http.StatusCreated, tx)
}

func (h *LedgerHandler) UpdateTransaction(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	tx := models.Transaction{
		Date:        req.Date,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := h.Store.Transactions().Update(c.Request().Context(), id, &tx); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, tx)
}

func (h *LedgerHandler) DeleteTransaction(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.Store.Transactions().Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
