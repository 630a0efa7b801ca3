package menu

import (
	"context"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

func (s *Session) accountantMenu(ctx context.Context) {
	for !s.closed {
		s.printf("\n--- Accountant ---")
		s.printf("1. List transactions")
		s.printf("2. Add transaction")
		s.printf("3. Modify transaction")
		s.printf("4. Delete transaction")
		s.printf("5. Search transactions")
		s.printf("0. Back")

		switch s.prompt("Choice: ") {
		case "1":
			s.listTransactions(ctx)
		case "2":
			s.addTransaction(ctx)
		case "3":
			s.modifyTransaction(ctx)
		case "4":
			s.deleteTransaction(ctx)
		case "5":
			s.searchTransactions(ctx)
		case "0":
			return
		default:
			if !s.closed {
				s.printf("Invalid choice, try again.")
			}
		}
	}
}

func (s *Session) listTransactions(ctx context.Context) {
	txs, err := s.Store.Transactions().List(ctx)
	if err != nil {
		s.printf("Could not list transactions: %v", err)
		return
	}
	if len(txs) == 0 {
		s.printf("No transactions.")
		return
	}
	for _, t := range txs {
		s.printf("%d. %s %.2f — %s", t.ID, t.Date, t.Amount, t.Description)
	}
}

func (s *Session) addTransaction(ctx context.Context) {
	tx := models.Transaction{
		Date:        s.prompt("Date (YYYY-MM-DD): "),
		Amount:      s.promptFloat("Amount: "),
		Description: s.prompt("Description: "),
	}
	id, err := s.Store.Transactions().Create(ctx, &tx)
	if err != nil {
		s.printf("Could not add transaction: %v", err)
		return
	}
	s.printf("Transaction %d recorded.", id)
}

func (s *Session) modifyTransaction(ctx context.Context) {
	id := s.promptUint("Transaction id: ")
	if _, err := s.Store.Transactions().Get(ctx, id); err != nil {
		s.printf("Transaction %d not found.", id)
		return
	}
	tx := models.Transaction{
		Date:        s.prompt("New date (YYYY-MM-DD): "),
		Amount:      s.promptFloat("New amount: "),
		Description: s.prompt("New description: "),
	}
	if err := s.Store.Transactions().Update(ctx, id, &tx); err != nil {
		s.printf("Could not update transaction: %v", err)
		return
	}
	s.printf("Transaction %d updated.", id)
}

func (s *Session) deleteTransaction(ctx context.Context) {
	id := s.promptUint("Transaction id: ")
	if err := s.Store.Transactions().Delete(ctx, id); err != nil {
		s.printf("Could not delete transaction %d: %v", id, err)
		return
	}
	s.printf("Transaction %d deleted.", id)
}

func (s *Session) searchTransactions(ctx context.Context) {
	field := s.prompt("Search field (date/description): ")
	value := s.prompt("Value: ")
	txs, err := s.Store.Transactions().FindByField(ctx, field, value, storage.MatchExact)
	if err != nil {
		s.printf("Search failed: %v", err)
		return
	}
	if len(txs) == 0 {
		s.printf("No transactions found.")
		return
	}
	for _, t := range txs {
		s.printf("%d. %s %.2f — %s", t.ID, t.Date, t.Amount, t.Description)
	}
}
