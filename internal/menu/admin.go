package menu

import (
	"context"

	"bikeshop/internal/hash"
	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

func (s *Session) adminMenu(ctx context.Context) {
	for !s.closed {
		s.printf("\n--- Administrator ---")
		s.printf("1. List users")
		s.printf("2. Add user")
		s.printf("3. Modify user")
		s.printf("4. Delete user")
		s.printf("5. Search users")
		s.printf("0. Back")

		switch s.prompt("Choice: ") {
		case "1":
			s.listUsers(ctx)
		case "2":
			s.register(ctx)
		case "3":
			s.modifyUser(ctx)
		case "4":
			s.deleteUser(ctx)
		case "5":
			s.searchUsers(ctx)
		case "0":
			return
		default:
			if !s.closed {
				s.printf("Invalid choice, try again.")
			}
		}
	}
}

func (s *Session) listUsers(ctx context.Context) {
	users, err := s.Store.Users().List(ctx)
	if err != nil {
		s.printf("Could not list users: %v", err)
		return
	}
	s.printf("Users:")
	for _, u := range users {
		s.printf("%d. %s (%s)", u.ID, u.Username, u.Role)
	}
}

func (s *Session) modifyUser(ctx context.Context) {
	id := s.promptUint("User id: ")
	user, err := s.Store.Users().Get(ctx, id)
	if err != nil {
		s.printf("User %d not found.", id)
		return
	}

	username := s.prompt("New username: ")
	password := s.prompt("New password: ")
	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		s.printf("Could not update user: %v", err)
		return
	}

	updated := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         user.Role,
	}
	if err := s.Store.Users().Update(ctx, id, &updated); err != nil {
		s.printf("Could not update user: %v", err)
		return
	}
	s.printf("User %d updated.", id)
}

func (s *Session) deleteUser(ctx context.Context) {
	id := s.promptUint("User id: ")
	if err := s.Store.Users().Delete(ctx, id); err != nil {
		s.printf("Could not delete user: %v", err)
		return
	}
	s.printf("User %d deleted.", id)
}

func (s *Session) searchUsers(ctx context.Context) {
	value := s.prompt("Username contains: ")
	users, err := s.Store.Users().FindByField(ctx, "username", value, storage.MatchSubstring)
	if err != nil {
		s.printf("Search failed: %v", err)
		return
	}
	if len(users) == 0 {
		s.printf("No users found.")
		return
	}
	for _, u := range users {
		s.printf("%d. %s (%s)", u.ID, u.Username, u.Role)
	}
}
