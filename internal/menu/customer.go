package menu

import (
	"context"
	"strings"

	"bikeshop/internal/storage"
)

func (s *Session) customerMenu(ctx context.Context) {
	if s.user == nil {
		s.printf("Log in first (option 8 on the main menu).")
		return
	}
	for !s.closed {
		s.printf("\n--- Customer ---")
		s.printf("1. Browse bikes")
		s.printf("2. Browse parts")
		s.printf("3. My orders")
		s.printf("4. Search catalog")
		s.printf("0. Back")

		switch s.prompt("Choice: ") {
		case "1":
			s.listBikes(ctx, true)
		case "2":
			s.listParts(ctx, true)
		case "3":
			s.myOrders(ctx)
		case "4":
			s.searchCatalog(ctx)
		case "0":
			return
		default:
			if !s.closed {
				s.printf("Invalid choice, try again.")
			}
		}
	}
}

func (s *Session) myOrders(ctx context.Context) {
	orders, err := s.Store.Orders().ListByUser(ctx, s.user.ID)
	if err != nil {
		s.printf("Could not list orders: %v", err)
		return
	}
	if len(orders) == 0 {
		s.printf("No orders yet.")
		return
	}
	for _, o := range orders {
		order, lines, err := s.Store.Orders().Get(ctx, o.ID)
		if err != nil {
			s.printf("Order %d: could not load lines: %v", o.ID, err)
			continue
		}
		s.printOrder(order, lines)
	}
}

// searchCatalog does a substring match across both item families, so a
// customer typing "trail" finds Trail bikes and trail tires alike.
func (s *Session) searchCatalog(ctx context.Context) {
	term := strings.TrimSpace(s.prompt("Search for: "))
	if term == "" {
		s.printf("Nothing to search for.")
		return
	}

	found := false
	for _, field := range []string{"model", "brand"} {
		bikes, err := s.Store.Bikes().FindByField(ctx, field, term, storage.MatchSubstring)
		if err != nil {
			s.printf("Search failed: %v", err)
			return
		}
		for _, b := range bikes {
			s.printf("bike %d: %s %s — %.2f, %d in stock", b.ID, b.Brand, b.Model, b.Price, b.Quantity)
			found = true
		}
	}
	for _, field := range []string{"name", "category"} {
		parts, err := s.Store.Parts().FindByField(ctx, field, term, storage.MatchSubstring)
		if err != nil {
			s.printf("Search failed: %v", err)
			return
		}
		for _, p := range parts {
			s.printf("part %d: %s (%s) — %.2f, %d in stock", p.ID, p.Name, p.Category, p.Price, p.Quantity)
			found = true
		}
	}
	if !found {
		s.printf("Nothing matched %q.", term)
	}
}
