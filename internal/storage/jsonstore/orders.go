package jsonstore

import (
	"context"
	"fmt"
	"sort"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

type orderRepo struct {
	s *Store
}

func (r *orderRepo) Create(_ context.Context, order *models.Order, lines []models.OrderLine) (uint, error) {
	err := r.s.mutate(func(st *state) error {
		order.ID = st.orders.next()
		st.orders.Records[order.ID] = *order
		for i := range lines {
			lines[i].ID = st.orderLines.next()
			lines[i].OrderID = order.ID
			st.orderLines.Records[lines[i].ID] = lines[i]
		}
		return nil
	}, colOrders, colOrderLines)
	if err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *orderRepo) Get(_ context.Context, id uint) (*models.Order, []models.OrderLine, error) {
	var (
		order models.Order
		lines []models.OrderLine
	)
	err := r.s.view(func(st *state) error {
		o, ok := st.orders.Records[id]
		if !ok {
			return storage.ErrNotFound
		}
		order = o
		for _, ln := range st.orderLines.Records {
			if ln.OrderID == id {
				lines = append(lines, ln)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return &order, lines, nil
}

func (r *orderRepo) List(_ context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.s.view(func(st *state) error {
		for _, o := range st.orders.Records {
			orders = append(orders, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *orderRepo) ListByUser(_ context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.s.view(func(st *state) error {
		for _, o := range st.orders.Records {
			if o.UserID == userID {
				orders = append(orders, o)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt > orders[j].CreatedAt })
	return orders, nil
}

type transactionRepo struct {
	s *Store
}

func (r *transactionRepo) Create(_ context.Context, tx *models.Transaction) (uint, error) {
	err := r.s.mutate(func(st *state) error {
		tx.ID = st.transactions.next()
		st.transactions.Records[tx.ID] = *tx
		return nil
	}, colTransactions)
	if err != nil {
		return 0, err
	}
	return tx.ID, nil
}

func (r *transactionRepo) Get(_ context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.s.view(func(st *state) error {
		rec, ok := st.transactions.Records[id]
		if !ok {
			return storage.ErrNotFound
		}
		tx = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepo) List(ctx context.Context) ([]models.Transaction, error) {
	return r.list(func(models.Transaction) bool { return true })
}

func (r *transactionRepo) list(keep func(models.Transaction) bool) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.s.view(func(st *state) error {
		for _, tx := range st.transactions.Records {
			if keep(tx) {
				txs = append(txs, tx)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID < txs[j].ID })
	return txs, nil
}

func (r *transactionRepo) Update(_ context.Context, id uint, tx *models.Transaction) error {
	return r.s.mutate(func(st *state) error {
		if _, ok := st.transactions.Records[id]; !ok {
			return storage.ErrNotFound
		}
		tx.ID = id
		st.transactions.Records[id] = *tx
		return nil
	}, colTransactions)
}

func (r *transactionRepo) Delete(_ context.Context, id uint) error {
	return r.s.mutate(func(st *state) error {
		if _, ok := st.transactions.Records[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.transactions.Records, id)
		return nil
	}, colTransactions)
}

func (r *transactionRepo) FindByField(_ context.Context, field, value string, match storage.Match) ([]models.Transaction, error) {
	switch field {
	case "date":
		return r.list(func(tx models.Transaction) bool { return matches(match, value, tx.Date) })
	case "description":
		return r.list(func(tx models.Transaction) bool { return matches(match, value, tx.Description) })
	}
	return nil, fmt.Errorf("%w: unsearchable field %q", storage.ErrValidation, field)
}
