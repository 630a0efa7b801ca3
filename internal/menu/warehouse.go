package menu

import (
	"context"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

func (s *Session) warehouseMenu(ctx context.Context) {
	for !s.closed {
		s.printf("\n--- Warehouse manager ---")
		s.printf("1. List bikes")
		s.printf("2. List parts")
		s.printf("3. Add bike")
		s.printf("4. Add part")
		s.printf("5. Modify item")
		s.printf("6. Delete item")
		s.printf("7. Search items")
		s.printf("0. Back")

		switch s.prompt("Choice: ") {
		case "1":
			s.listBikes(ctx, false)
		case "2":
			s.listParts(ctx, false)
		case "3":
			s.addBike(ctx)
		case "4":
			s.addPart(ctx)
		case "5":
			s.modifyItem(ctx)
		case "6":
			s.deleteItem(ctx)
		case "7":
			s.searchItemExact(ctx)
		case "0":
			return
		default:
			if !s.closed {
				s.printf("Invalid choice, try again.")
			}
		}
	}
}

func (s *Session) listBikes(ctx context.Context, inStockOnly bool) {
	var (
		bikes []models.Bike
		err   error
	)
	if inStockOnly {
		bikes, err = s.Store.Bikes().ListInStock(ctx)
	} else {
		bikes, err = s.Store.Bikes().List(ctx)
	}
	if err != nil {
		s.printf("Could not list bikes: %v", err)
		return
	}
	if len(bikes) == 0 {
		s.printf("No bikes.")
		return
	}
	s.printf("Bikes:")
	for _, b := range bikes {
		s.printf("%d. %s %s — %.2f, %d in stock", b.ID, b.Brand, b.Model, b.Price, b.Quantity)
	}
}

func (s *Session) listParts(ctx context.Context, inStockOnly bool) {
	var (
		parts []models.Part
		err   error
	)
	if inStockOnly {
		parts, err = s.Store.Parts().ListInStock(ctx)
	} else {
		parts, err = s.Store.Parts().List(ctx)
	}
	if err != nil {
		s.printf("Could not list parts: %v", err)
		return
	}
	if len(parts) == 0 {
		s.printf("No parts.")
		return
	}
	s.printf("Parts:")
	for _, p := range parts {
		s.printf("%d. %s (%s) — %.2f, %d in stock", p.ID, p.Name, p.Category, p.Price, p.Quantity)
	}
}

func (s *Session) addBike(ctx context.Context) {
	bike := models.Bike{
		Model:    s.prompt("Model: "),
		Brand:    s.prompt("Brand: "),
		Price:    s.promptFloat("Price: "),
		Quantity: s.promptUint("Quantity: "),
	}
	id, err := s.Store.Bikes().Create(ctx, &bike)
	if err != nil {
		s.printf("Could not add bike: %v", err)
		return
	}
	s.printf("Bike %d added.", id)
}

func (s *Session) addPart(ctx context.Context) {
	part := models.Part{
		Name:     s.prompt("Name: "),
		Category: s.prompt("Category: "),
		Price:    s.promptFloat("Price: "),
		Quantity: s.promptUint("Quantity: "),
	}
	id, err := s.Store.Parts().Create(ctx, &part)
	if err != nil {
		s.printf("Could not add part: %v", err)
		return
	}
	s.printf("Part %d added.", id)
}

func (s *Session) modifyItem(ctx context.Context) {
	kind, ok := s.promptKind("Item kind (bike/part): ")
	if !ok {
		return
	}
	id := s.promptUint("Item id: ")

	switch kind {
	case models.KindBike:
		if _, err := s.Store.Bikes().Get(ctx, id); err != nil {
			s.printf("Bike %d not found.", id)
			return
		}
		bike := models.Bike{
			Model:    s.prompt("New model: "),
			Brand:    s.prompt("New brand: "),
			Price:    s.promptFloat("New price: "),
			Quantity: s.promptUint("New quantity: "),
		}
		if err := s.Store.Bikes().Update(ctx, id, &bike); err != nil {
			s.printf("Could not update bike: %v", err)
			return
		}
		s.printf("Bike %d updated.", id)
	case models.KindPart:
		if _, err := s.Store.Parts().Get(ctx, id); err != nil {
			s.printf("Part %d not found.", id)
			return
		}
		part := models.Part{
			Name:     s.prompt("New name: "),
			Category: s.prompt("New category: "),
			Price:    s.promptFloat("New price: "),
			Quantity: s.promptUint("New quantity: "),
		}
		if err := s.Store.Parts().Update(ctx, id, &part); err != nil {
			s.printf("Could not update part: %v", err)
			return
		}
		s.printf("Part %d updated.", id)
	}
}

func (s *Session) deleteItem(ctx context.Context) {
	kind, ok := s.promptKind("Item kind (bike/part): ")
	if !ok {
		return
	}
	id := s.promptUint("Item id: ")

	var err error
	if kind == models.KindBike {
		err = s.Store.Bikes().Delete(ctx, id)
	} else {
		err = s.Store.Parts().Delete(ctx, id)
	}
	if err != nil {
		s.printf("Could not delete %s %d: %v", kind, id, err)
		return
	}
	s.printf("Deleted %s %d.", kind, id)
}

// searchItemExact is the edit-flow search: exact attribute match.
func (s *Session) searchItemExact(ctx context.Context) {
	kind, ok := s.promptKind("Item kind (bike/part): ")
	if !ok {
		return
	}

	switch kind {
	case models.KindBike:
		field := s.prompt("Search field (model/brand): ")
		value := s.prompt("Value: ")
		bikes, err := s.Store.Bikes().FindByField(ctx, field, value, storage.MatchExact)
		if err != nil {
			s.printf("Search failed: %v", err)
			return
		}
		if len(bikes) == 0 {
			s.printf("No bikes found.")
			return
		}
		for _, b := range bikes {
			s.printf("%d. %s %s — %.2f, %d in stock", b.ID, b.Brand, b.Model, b.Price, b.Quantity)
		}
	case models.KindPart:
		field := s.prompt("Search field (name/category): ")
		value := s.prompt("Value: ")
		parts, err := s.Store.Parts().FindByField(ctx, field, value, storage.MatchExact)
		if err != nil {
			s.printf("Search failed: %v", err)
			return
		}
		if len(parts) == 0 {
			s.printf("No parts found.")
			return
		}
		for _, p := range parts {
			s.printf("%d. %s (%s) — %.2f, %d in stock", p.ID, p.Name, p.Category, p.Price, p.Quantity)
		}
	}
}
