package storage

import (
	"context"

	"bikeshop/internal/models"
)

// Match selects how FindByField compares values: exact for edit flows,
// substring for customer browsing.
type Match int

const (
	MatchExact Match = iota
	MatchSubstring
)

// ItemInfo is the slice of an inventory record that order fulfillment
// needs: unit price and stock on hand.
type ItemInfo struct {
	Price    float64
	Quantity uint
}

// ItemStore is the narrow inventory view fulfillment dispatches through,
// one instance per ItemKind. AdjustQuantity applies delta only if the
// resulting quantity stays >= 0, otherwise it returns
// ErrInsufficientStock and leaves the record untouched.
type ItemStore interface {
	Lookup(ctx context.Context, id uint) (ItemInfo, error)
	AdjustQuantity(ctx context.Context, id uint, delta int) error
}

type BikeRepository interface {
	ItemStore
	Create(ctx context.Context, bike *models.Bike) (uint, error)
	Get(ctx context.Context, id uint) (*models.Bike, error)
	List(ctx context.Context) ([]models.Bike, error)
	ListInStock(ctx context.Context) ([]models.Bike, error)
	Update(ctx context.Context, id uint, bike *models.Bike) error
	Delete(ctx context.Context, id uint) error
	FindByField(ctx context.Context, field, value string, match Match) ([]models.Bike, error)
}

type PartRepository interface {
	ItemStore
	Create(ctx context.Context, part *models.Part) (uint, error)
	Get(ctx context.Context, id uint) (*models.Part, error)
	List(ctx context.Context) ([]models.Part, error)
	ListInStock(ctx context.Context) ([]models.Part, error)
	Update(ctx context.Context, id uint, part *models.Part) error
	Delete(ctx context.Context, id uint) error
	FindByField(ctx context.Context, field, value string, match Match) ([]models.Part, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (uint, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uint, user *models.User) error
	Delete(ctx context.Context, id uint) error
	FindByField(ctx context.Context, field, value string, match Match) ([]models.User, error)
}

type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) (uint, error)
	Get(ctx context.Context, id uint) (*models.Staff, error)
	List(ctx context.Context) ([]models.Staff, error)
	Update(ctx context.Context, id uint, staff *models.Staff) error
	Delete(ctx context.Context, id uint) error
	FindByField(ctx context.Context, field, value string, match Match) ([]models.Staff, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) (uint, error)
	Get(ctx context.Context, id uint) (*models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
	Update(ctx context.Context, id uint, tx *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	FindByField(ctx context.Context, field, value string, match Match) ([]models.Transaction, error)
}

// OrderRepository creates orders only together with their lines; orders
// are never mutated or deleted afterwards.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (uint, error)
	Get(ctx context.Context, id uint) (*models.Order, []models.OrderLine, error)
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
}

// Store aggregates the repositories over one persistent backend.
// Atomically runs fn inside a scoped transaction: every repository
// mutation made through the passed Store is either fully applied or
// fully discarded.
type Store interface {
	Bikes() BikeRepository
	Parts() PartRepository
	Users() UserRepository
	Staff() StaffRepository
	Orders() OrderRepository
	Transactions() TransactionRepository

	Atomically(ctx context.Context, fn func(Store) error) error
	Close() error
}
