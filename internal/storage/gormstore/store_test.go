package gormstore

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	s, err := New(db)
	require.NoError(t, err)
	return s
}

func TestBikes_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Bikes().Create(ctx, &models.Bike{
		Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	bike, err := s.Bikes().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Trail X", bike.Model)
	assert.Equal(t, uint(3), bike.Quantity)

	bike.Price = 450
	require.NoError(t, s.Bikes().Update(ctx, id, bike))

	bike, err = s.Bikes().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 450.0, bike.Price)

	require.NoError(t, s.Bikes().Delete(ctx, id))

	_, err = s.Bikes().Get(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBikes_FindByField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3})
	require.NoError(t, err)
	_, err = s.Bikes().Create(ctx, &models.Bike{Model: "City Cruiser", Brand: "Summit", Price: 300, Quantity: 1})
	require.NoError(t, err)

	exact, err := s.Bikes().FindByField(ctx, "model", "Trail X", storage.MatchExact)
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "Trail X", exact[0].Model)

	none, err := s.Bikes().FindByField(ctx, "model", "Trail", storage.MatchExact)
	require.NoError(t, err)
	assert.Empty(t, none)

	sub, err := s.Bikes().FindByField(ctx, "model", "Trail", storage.MatchSubstring)
	require.NoError(t, err)
	require.Len(t, sub, 1)

	byBrand, err := s.Bikes().FindByField(ctx, "brand", "Summit", storage.MatchExact)
	require.NoError(t, err)
	assert.Len(t, byBrand, 2)

	_, err = s.Bikes().FindByField(ctx, "price", "500", storage.MatchExact)
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestBikes_AdjustQuantity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, s.Bikes().AdjustQuantity(ctx, id, -2))

	info, err := s.Bikes().Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(1), info.Quantity)
	assert.Equal(t, 500.0, info.Price)

	err = s.Bikes().AdjustQuantity(ctx, id, -2)
	assert.ErrorIs(t, err, storage.ErrInsufficientStock)

	info, err = s.Bikes().Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(1), info.Quantity, "failed adjustment must not change stock")

	require.NoError(t, s.Bikes().AdjustQuantity(ctx, id, 5))
	info, err = s.Bikes().Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(6), info.Quantity)
}

func TestParts_ListInStock(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Parts().Create(ctx, &models.Part{Name: "Chain", Category: "drivetrain", Price: 25, Quantity: 10})
	require.NoError(t, err)
	_, err = s.Parts().Create(ctx, &models.Part{Name: "Brake pad", Category: "brakes", Price: 15, Quantity: 0})
	require.NoError(t, err)

	all, err := s.Parts().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inStock, err := s.Parts().ListInStock(ctx)
	require.NoError(t, err)
	require.Len(t, inStock, 1)
	assert.Equal(t, "Chain", inStock[0].Name)
}

func TestUsers_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().Create(ctx, &models.User{Username: "alice", PasswordHash: "x", Role: "customer"})
	require.NoError(t, err)

	_, err = s.Users().Create(ctx, &models.User{Username: "alice", PasswordHash: "y", Role: "customer"})
	assert.ErrorIs(t, err, storage.ErrDuplicateUsername)

	u, err := s.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "x", u.PasswordHash)

	_, err = s.Users().GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOrders_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid, err := s.Users().Create(ctx, &models.User{Username: "alice", PasswordHash: "x", Role: "customer"})
	require.NoError(t, err)

	orderID, err := s.Orders().Create(ctx,
		&models.Order{UserID: uid, CreatedAt: 1700000000, Total: 1000},
		[]models.OrderLine{
			{ItemID: 1, ItemKind: models.KindBike, Quantity: 2},
			{ItemID: 4, ItemKind: models.KindPart, Quantity: 1},
		})
	require.NoError(t, err)

	order, lines, err := s.Orders().Get(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, uid, order.UserID)
	assert.Equal(t, 1000.0, order.Total)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, orderID, l.OrderID)
	}

	mine, err := s.Orders().ListByUser(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	other, err := s.Orders().ListByUser(ctx, uid+1)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAtomically_RollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Atomically(ctx, func(tx storage.Store) error {
		if err := tx.Bikes().AdjustQuantity(ctx, id, -3); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	info, err := s.Bikes().Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(3), info.Quantity)
}

func TestTransactions_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Transactions().Create(ctx, &models.Transaction{
		Date: "2026-08-01", Amount: 199.99, Description: "tune-up",
	})
	require.NoError(t, err)

	got, err := s.Transactions().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 199.99, got.Amount)

	byDate, err := s.Transactions().FindByField(ctx, "date", "2026-08-01", storage.MatchExact)
	require.NoError(t, err)
	assert.Len(t, byDate, 1)

	require.NoError(t, s.Transactions().Delete(ctx, id))
	_, err = s.Transactions().Get(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
