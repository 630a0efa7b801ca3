package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bikeshop/internal/events"
	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

// LineRequest is one (item, kind, quantity) entry of an order.
type LineRequest struct {
	ItemID   uint            `json:"item_id"`
	Kind     models.ItemKind `json:"item_kind"`
	Quantity uint            `json:"quantity"`
}

type OrderResult struct {
	OrderID uint    `json:"order_id"`
	Total   float64 `json:"total"`
}

// Fulfillment places orders: it resolves every line, checks stock,
// totals the prices, decrements inventory and persists the order with
// its lines, all inside one scoped transaction. A failed line fails the
// whole call and leaves inventory untouched.
type Fulfillment struct {
	Store  storage.Store
	Events *events.Producer
	Log    *slog.Logger
}

func (f *Fulfillment) PlaceOrder(ctx context.Context, userID uint, lines []LineRequest) (*OrderResult, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order has no lines", storage.ErrValidation)
	}

	var result OrderResult
	err := f.Store.Atomically(ctx, func(s storage.Store) error {
		items := map[models.ItemKind]storage.ItemStore{
			models.KindBike: s.Bikes(),
			models.KindPart: s.Parts(),
		}

		// Resolve and price every line before touching stock, so the
		// total never reads an already-decremented record.
		infos := make([]storage.ItemInfo, len(lines))
		for i, ln := range lines {
			if ln.Quantity == 0 {
				return fmt.Errorf("%w: quantity must be > 0", storage.ErrValidation)
			}
			store, ok := items[ln.Kind]
			if !ok {
				return fmt.Errorf("%w: item kind %q", storage.ErrValidation, ln.Kind)
			}
			info, err := store.Lookup(ctx, ln.ItemID)
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: %s %d", storage.ErrUnknownItem, ln.Kind, ln.ItemID)
			}
			if err != nil {
				return err
			}
			if info.Quantity < ln.Quantity {
				return fmt.Errorf("%w: %s %d has %d, requested %d",
					storage.ErrInsufficientStock, ln.Kind, ln.ItemID, info.Quantity, ln.Quantity)
			}
			infos[i] = info
		}

		var total float64
		for i, ln := range lines {
			total += infos[i].Price * float64(ln.Quantity)
			if err := items[ln.Kind].AdjustQuantity(ctx, ln.ItemID, -int(ln.Quantity)); err != nil {
				return err
			}
		}

		order := &models.Order{
			UserID:    userID,
			CreatedAt: time.Now().Unix(),
			Total:     total,
		}
		orderLines := make([]models.OrderLine, len(lines))
		for i, ln := range lines {
			orderLines[i] = models.OrderLine{
				ItemID:   ln.ItemID,
				ItemKind: ln.Kind,
				Quantity: ln.Quantity,
			}
		}
		orderID, err := s.Orders().Create(ctx, order, orderLines)
		if err != nil {
			return err
		}

		result = OrderResult{OrderID: orderID, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.log().Info("order placed",
		"order_id", result.OrderID, "user_id", userID,
		"lines", len(lines), "total", result.Total)
	f.publish(ctx, events.TopicOrders, fmt.Sprint(userID), map[string]any{
		"type":     "order_placed",
		"order_id": result.OrderID,
		"user_id":  userID,
		"total":    result.Total,
	})

	return &result, nil
}

func (f *Fulfillment) log() *slog.Logger {
	if f.Log != nil {
		return f.Log
	}
	return slog.Default()
}

func (f *Fulfillment) publish(ctx context.Context, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := f.Events.Publish(ctx, topic, key, event); err != nil {
		f.log().Error("kafka publish failed", "topic", topic, "error", err)
	}
}
