// Package menu is the interactive text surface: a role-selection loop
// over per-role action menus. Every storage or service error is
// reported as a message and falls back to the current menu; nothing
// here terminates the process except the explicit quit choice.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"bikeshop/internal/models"
	"bikeshop/internal/service"
	"bikeshop/internal/storage"
)

type Session struct {
	Store       storage.Store
	Accounts    *service.Accounts
	Fulfillment *service.Fulfillment
	Log         *slog.Logger

	in     *bufio.Scanner
	out    io.Writer
	closed bool

	// user is the identity from the last successful login, held for
	// the rest of the session.
	user *models.User
}

func NewSession(store storage.Store, accounts *service.Accounts, fulfillment *service.Fulfillment, in io.Reader, out io.Writer, log *slog.Logger) *Session {
	return &Session{
		Store:       store,
		Accounts:    accounts,
		Fulfillment: fulfillment,
		Log:         log,
		in:          bufio.NewScanner(in),
		out:         out,
	}
}

func (s *Session) Run(ctx context.Context) {
	for !s.closed {
		s.printf("\nSelect a role:")
		s.printf("1. Administrator")
		s.printf("2. Staff manager")
		s.printf("3. Warehouse manager")
		s.printf("4. Cashier")
		s.printf("5. Accountant")
		s.printf("6. Customer")
		s.printf("7. Register")
		s.printf("8. Log in")
		s.printf("0. Quit")

		switch s.prompt("Choice: ") {
		case "1":
			s.adminMenu(ctx)
		case "2":
			s.staffMenu(ctx)
		case "3":
			s.warehouseMenu(ctx)
		case "4":
			s.cashierMenu(ctx)
		case "5":
			s.accountantMenu(ctx)
		case "6":
			s.customerMenu(ctx)
		case "7":
			s.register(ctx)
		case "8":
			s.login(ctx)
		case "0":
			return
		default:
			if !s.closed {
				s.printf("Invalid choice, try again.")
			}
		}
	}
}

func (s *Session) register(ctx context.Context) {
	username := s.prompt("Username: ")
	password := s.prompt("Password: ")
	user, err := s.Accounts.Register(ctx, username, password)
	if err != nil {
		s.printf("Registration failed: %v", err)
		return
	}
	s.printf("Registered user %d.", user.ID)
}

func (s *Session) login(ctx context.Context) {
	username := s.prompt("Username: ")
	password := s.prompt("Password: ")
	user, err := s.Accounts.Authenticate(ctx, username, password)
	if err != nil {
		s.printf("Login failed: %v", err)
		return
	}
	s.user = user
	s.printf("Logged in as %s.", user.Username)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

// prompt reads one trimmed line; on EOF it marks the session closed and
// returns "" so every menu loop unwinds.
func (s *Session) prompt(label string) string {
	if s.closed {
		return ""
	}
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		s.closed = true
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func (s *Session) promptUint(label string) uint {
	for !s.closed {
		raw := s.prompt(label)
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			return uint(v)
		}
		s.printf("Enter a non-negative number.")
	}
	return 0
}

func (s *Session) promptFloat(label string) float64 {
	for !s.closed {
		raw := s.prompt(label)
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			return v
		}
		s.printf("Enter a non-negative amount.")
	}
	return 0
}

// promptUserRef reads an optional user id; empty input means no link.
func (s *Session) promptUserRef(label string) *uint {
	for !s.closed {
		raw := s.prompt(label)
		if raw == "" {
			return nil
		}
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			return &id
		}
		s.printf("Enter a user id or leave empty.")
	}
	return nil
}

func (s *Session) promptKind(label string) (models.ItemKind, bool) {
	for !s.closed {
		raw := strings.ToLower(s.prompt(label))
		if raw == "done" || raw == "" {
			return "", false
		}
		kind, err := models.ParseItemKind(raw)
		if err != nil {
			s.printf("Enter 'bike', 'part' or 'done'.")
			continue
		}
		return kind, true
	}
	return "", false
}

func (s *Session) itemStore(kind models.ItemKind) storage.ItemStore {
	if kind == models.KindPart {
		return s.Store.Parts()
	}
	return s.Store.Bikes()
}
