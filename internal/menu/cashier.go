package menu

import (
	"context"
	"errors"
	"strings"

	"bikeshop/internal/models"
	"bikeshop/internal/service"
	"bikeshop/internal/storage"
)

func (s *Session) cashierMenu(ctx context.Context) {
	for !s.closed {
		s.printf("\n--- Cashier ---")
		s.printf("1. View bikes")
		s.printf("2. View parts")
		s.printf("3. Place order")
		s.printf("4. View order")
		s.printf("5. List orders")
		s.printf("0. Back")

		switch s.prompt("Choice: ") {
		case "1":
			s.listBikes(ctx, false)
		case "2":
			s.listParts(ctx, false)
		case "3":
			s.placeOrder(ctx)
		case "4":
			s.showOrder(ctx)
		case "5":
			s.listOrders(ctx)
		case "0":
			return
		default:
			if !s.closed {
				s.printf("Invalid choice, try again.")
			}
		}
	}
}

// placeOrder collects lines interactively and submits them in one shot.
// Availability is pre-checked per line so the cashier can adjust a
// quantity before committing, but the final word belongs to PlaceOrder.
func (s *Session) placeOrder(ctx context.Context) {
	userID := s.promptUint("Customer user id: ")
	if _, err := s.Store.Users().Get(ctx, userID); err != nil {
		s.printf("User %d not found.", userID)
		return
	}

	var lines []service.LineRequest
	for !s.closed {
		raw := strings.ToLower(strings.TrimSpace(s.prompt("Item kind (bike/part, or done): ")))
		if raw == "done" || raw == "" {
			break
		}
		kind, err := models.ParseItemKind(raw)
		if err != nil {
			s.printf("Unknown kind %q, try again.", raw)
			continue
		}

		id := s.promptUint("Item id: ")
		info, err := s.itemStore(kind).Lookup(ctx, id)
		if err != nil {
			s.printf("No %s with id %d, try again.", kind, id)
			continue
		}

		qty := s.promptUint("Quantity: ")
		if qty == 0 {
			s.printf("Quantity must be positive, try again.")
			continue
		}
		if qty > info.Quantity {
			s.printf("Only %d in stock, try again.", info.Quantity)
			continue
		}

		lines = append(lines, service.LineRequest{ItemID: id, Kind: kind, Quantity: qty})
		s.printf("Added %d x %s %d (%.2f each).", qty, kind, id, info.Price)
	}

	if len(lines) == 0 {
		s.printf("No lines, order cancelled.")
		return
	}

	res, err := s.Fulfillment.PlaceOrder(ctx, userID, lines)
	if err != nil {
		if errors.Is(err, storage.ErrInsufficientStock) {
			s.printf("Order rejected, stock changed: %v", err)
		} else {
			s.printf("Order failed: %v", err)
		}
		return
	}
	s.printf("Order %d placed, total %.2f.", res.OrderID, res.Total)
}

func (s *Session) showOrder(ctx context.Context) {
	id := s.promptUint("Order id: ")
	order, lines, err := s.Store.Orders().Get(ctx, id)
	if err != nil {
		s.printf("Order %d not found.", id)
		return
	}
	s.printOrder(order, lines)
}

func (s *Session) listOrders(ctx context.Context) {
	orders, err := s.Store.Orders().List(ctx)
	if err != nil {
		s.printf("Could not list orders: %v", err)
		return
	}
	if len(orders) == 0 {
		s.printf("No orders.")
		return
	}
	for _, o := range orders {
		s.printf("Order %d: user %d, total %.2f", o.ID, o.UserID, o.Total)
	}
}

func (s *Session) printOrder(order *models.Order, lines []models.OrderLine) {
	s.printf("Order %d: user %d, total %.2f", order.ID, order.UserID, order.Total)
	for _, l := range lines {
		s.printf("  %d x %s %d", l.Quantity, l.ItemKind, l.ItemID)
	}
}
