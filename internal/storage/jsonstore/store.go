// Package jsonstore is the document backend: one JSON file per
// collection under a data directory, records keyed by auto-increment
// integer id. The whole data set is held in memory; files are rewritten
// on mutation via temp-file rename. A mutex plus snapshot/rollback
// stands in for the transactions the format lacks, so Atomically keeps
// the same all-or-nothing contract as the relational backend.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

const (
	colUsers        = "users"
	colStaff        = "staff"
	colBikes        = "bikes"
	colParts        = "parts"
	colOrders       = "orders"
	colOrderLines   = "order_lines"
	colTransactions = "transactions"
)

type collection[T any] struct {
	LastID  uint       `json:"last_id"`
	Records map[uint]T `json:"records"`
}

func (c *collection[T]) next() uint {
	c.LastID++
	return c.LastID
}

func cloneCollection[T any](c collection[T]) collection[T] {
	out := collection[T]{LastID: c.LastID, Records: make(map[uint]T, len(c.Records))}
	for k, v := range c.Records {
		out.Records[k] = v
	}
	return out
}

type state struct {
	users        collection[models.User]
	staff        collection[models.Staff]
	bikes        collection[models.Bike]
	parts        collection[models.Part]
	orders       collection[models.Order]
	orderLines   collection[models.OrderLine]
	transactions collection[models.Transaction]

	dirty map[string]bool
}

func (st *state) clone() *state {
	dirty := make(map[string]bool, len(st.dirty))
	for k, v := range st.dirty {
		dirty[k] = v
	}
	return &state{
		users:        cloneCollection(st.users),
		staff:        cloneCollection(st.staff),
		bikes:        cloneCollection(st.bikes),
		parts:        cloneCollection(st.parts),
		orders:       cloneCollection(st.orders),
		orderLines:   cloneCollection(st.orderLines),
		transactions: cloneCollection(st.transactions),
		dirty:        dirty,
	}
}

type Store struct {
	mu  sync.Mutex
	dir string
	st  *state

	// tx marks the store handed to an Atomically closure: the parent
	// already holds the lock and flushes on commit.
	tx bool
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: %w", err)
	}
	st := &state{dirty: make(map[string]bool)}
	var err error
	if st.users, err = loadCollection[models.User](dir, colUsers); err != nil {
		return nil, err
	}
	if st.staff, err = loadCollection[models.Staff](dir, colStaff); err != nil {
		return nil, err
	}
	if st.bikes, err = loadCollection[models.Bike](dir, colBikes); err != nil {
		return nil, err
	}
	if st.parts, err = loadCollection[models.Part](dir, colParts); err != nil {
		return nil, err
	}
	if st.orders, err = loadCollection[models.Order](dir, colOrders); err != nil {
		return nil, err
	}
	if st.orderLines, err = loadCollection[models.OrderLine](dir, colOrderLines); err != nil {
		return nil, err
	}
	if st.transactions, err = loadCollection[models.Transaction](dir, colTransactions); err != nil {
		return nil, err
	}
	return &Store{dir: dir, st: st}, nil
}

func loadCollection[T any](dir, name string) (collection[T], error) {
	c := collection[T]{Records: make(map[uint]T)}
	data, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("jsonstore: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("jsonstore: decode %s: %w", name, err)
	}
	if c.Records == nil {
		c.Records = make(map[uint]T)
	}
	return c, nil
}

func saveCollection[T any](dir, name string, c collection[T]) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("jsonstore: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonstore: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonstore: write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name+".json")); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonstore: write %s: %w", name, err)
	}
	return nil
}

func (s *Store) Bikes() storage.BikeRepository               { return &bikeRepo{s: s} }
func (s *Store) Parts() storage.PartRepository               { return &partRepo{s: s} }
func (s *Store) Users() storage.UserRepository               { return &userRepo{s: s} }
func (s *Store) Staff() storage.StaffRepository              { return &staffRepo{s: s} }
func (s *Store) Orders() storage.OrderRepository             { return &orderRepo{s: s} }
func (s *Store) Transactions() storage.TransactionRepository { return &transactionRepo{s: s} }

func (s *Store) Atomically(_ context.Context, fn func(storage.Store) error) error {
	if s.tx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.st.clone()
	child := &Store{dir: s.dir, st: s.st, tx: true}
	if err := fn(child); err != nil {
		s.st = snap
		return err
	}
	if err := s.flushLocked(); err != nil {
		s.st = snap
		return fmt.Errorf("%w: %v", storage.ErrWriteFailure, err)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *Store) lock() {
	if !s.tx {
		s.mu.Lock()
	}
}

func (s *Store) unlock() {
	if !s.tx {
		s.mu.Unlock()
	}
}

// view runs a read against a stable state.
func (s *Store) view(fn func(st *state) error) error {
	s.lock()
	defer s.unlock()
	return fn(s.st)
}

// mutate runs fn against the state and persists the named collections.
// Outside a transaction the state is snapshotted first and restored if
// fn or the flush fails; inside one the collections are only marked
// dirty and the enclosing Atomically commits or rolls back.
func (s *Store) mutate(fn func(st *state) error, cols ...string) error {
	s.lock()
	defer s.unlock()

	if s.tx {
		if err := fn(s.st); err != nil {
			return err
		}
		for _, c := range cols {
			s.st.dirty[c] = true
		}
		return nil
	}

	snap := s.st.clone()
	if err := fn(s.st); err != nil {
		s.st = snap
		return err
	}
	for _, c := range cols {
		s.st.dirty[c] = true
	}
	if err := s.flushLocked(); err != nil {
		s.st = snap
		return fmt.Errorf("%w: %v", storage.ErrWriteFailure, err)
	}
	return nil
}

func (s *Store) flushLocked() error {
	for col := range s.st.dirty {
		var err error
		switch col {
		case colUsers:
			err = saveCollection(s.dir, col, s.st.users)
		case colStaff:
			err = saveCollection(s.dir, col, s.st.staff)
		case colBikes:
			err = saveCollection(s.dir, col, s.st.bikes)
		case colParts:
			err = saveCollection(s.dir, col, s.st.parts)
		case colOrders:
			err = saveCollection(s.dir, col, s.st.orders)
		case colOrderLines:
			err = saveCollection(s.dir, col, s.st.orderLines)
		case colTransactions:
			err = saveCollection(s.dir, col, s.st.transactions)
		}
		if err != nil {
			return err
		}
		delete(s.st.dirty, col)
	}
	return nil
}
