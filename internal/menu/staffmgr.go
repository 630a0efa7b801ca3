package menu

import (
	"context"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

func (s *Session) staffMenu(ctx context.Context) {
	for !s.closed {
		s.printf("\n--- Staff manager ---")
		s.printf("1. List staff")
		s.printf("2. Add staff member")
		s.printf("3. Modify staff member")
		s.printf("4. Delete staff member")
		s.printf("5. Search staff")
		s.printf("0. Back")

		switch s.prompt("Choice: ") {
		case "1":
			s.listStaff(ctx)
		case "2":
			s.addStaff(ctx)
		case "3":
			s.modifyStaff(ctx)
		case "4":
			s.deleteStaff(ctx)
		case "5":
			s.searchStaff(ctx)
		case "0":
			return
		default:
			if !s.closed {
				s.printf("Invalid choice, try again.")
			}
		}
	}
}

func (s *Session) listStaff(ctx context.Context) {
	staff, err := s.Store.Staff().List(ctx)
	if err != nil {
		s.printf("Could not list staff: %v", err)
		return
	}
	s.printf("Staff:")
	for _, m := range staff {
		if m.UserID != nil {
			s.printf("%d. %s, %s (user %d)", m.ID, m.Name, m.Position, *m.UserID)
		} else {
			s.printf("%d. %s, %s", m.ID, m.Name, m.Position)
		}
	}
}

func (s *Session) addStaff(ctx context.Context) {
	staff := models.Staff{
		Name:     s.prompt("Name: "),
		Position: s.prompt("Position: "),
		UserID:   s.promptUserRef("Linked user id (optional): "),
	}
	id, err := s.Store.Staff().Create(ctx, &staff)
	if err != nil {
		s.printf("Could not add staff member: %v", err)
		return
	}
	s.printf("Staff member %d added.", id)
}

func (s *Session) modifyStaff(ctx context.Context) {
	id := s.promptUint("Staff id: ")
	if _, err := s.Store.Staff().Get(ctx, id); err != nil {
		s.printf("Staff member %d not found.", id)
		return
	}

	staff := models.Staff{
		Name:     s.prompt("New name: "),
		Position: s.prompt("New position: "),
		UserID:   s.promptUserRef("Linked user id (optional): "),
	}
	if err := s.Store.Staff().Update(ctx, id, &staff); err != nil {
		s.printf("Could not update staff member: %v", err)
		return
	}
	s.printf("Staff member %d updated.", id)
}

func (s *Session) deleteStaff(ctx context.Context) {
	id := s.promptUint("Staff id: ")
	if err := s.Store.Staff().Delete(ctx, id); err != nil {
		s.printf("Could not delete staff member: %v", err)
		return
	}
	s.printf("Staff member %d deleted.", id)
}

func (s *Session) searchStaff(ctx context.Context) {
	field := s.prompt("Search field (name/position): ")
	value := s.prompt("Value contains: ")
	staff, err := s.Store.Staff().FindByField(ctx, field, value, storage.MatchSubstring)
	if err != nil {
		s.printf("Search failed: %v", err)
		return
	}
	if len(staff) == 0 {
		s.printf("No staff found.")
		return
	}
	for _, m := range staff {
		s.printf("%d. %s, %s", m.ID, m.Name, m.Position)
	}
}
