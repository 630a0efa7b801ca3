package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

// Store is the relational backend. The dialector (postgres or sqlite)
// is chosen by the caller at configuration time.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Staff{},
		&models.Bike{},
		&models.Part{},
		&models.Order{},
		&models.OrderLine{},
		&models.Transaction{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Bikes() storage.BikeRepository               { return &bikeRepo{db: s.db} }
func (s *Store) Parts() storage.PartRepository               { return &partRepo{db: s.db} }
func (s *Store) Users() storage.UserRepository               { return &userRepo{db: s.db} }
func (s *Store) Staff() storage.StaffRepository              { return &staffRepo{db: s.db} }
func (s *Store) Orders() storage.OrderRepository             { return &orderRepo{db: s.db} }
func (s *Store) Transactions() storage.TransactionRepository { return &transactionRepo{db: s.db} }

func (s *Store) Atomically(ctx context.Context, fn func(storage.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}

func writeErr(err error) error {
	return fmt.Errorf("%w: %v", storage.ErrWriteFailure, err)
}

// searchClause builds the WHERE fragment for FindByField. field must
// already be validated against the repository's column whitelist.
func searchClause(q *gorm.DB, field, value string, match storage.Match) *gorm.DB {
	if match == storage.MatchSubstring {
		// lower() keeps substring search case-insensitive on postgres
		// and sqlite alike
		return q.Where("lower("+field+") LIKE lower(?)", "%"+value+"%")
	}
	return q.Where(field+" = ?", value)
}

func checkField(field string, allowed ...string) error {
	for _, a := range allowed {
		if field == a {
			return nil
		}
	}
	return fmt.Errorf("%w: unsearchable field %q", storage.ErrValidation, field)
}
