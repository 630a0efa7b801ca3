package jsonstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestOpen_EmptyDir(t *testing.T) {
	s := newTestStore(t)

	bikes, err := s.Bikes().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bikes)
}

func TestBikes_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3})
	require.NoError(t, err)
	require.NotZero(t, id)

	bike, err := s.Bikes().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Trail X", bike.Model)

	bike.Price = 450
	require.NoError(t, s.Bikes().Update(ctx, id, bike))

	bike, err = s.Bikes().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 450.0, bike.Price)

	require.NoError(t, s.Bikes().Delete(ctx, id))
	_, err = s.Bikes().Get(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIDs_NeverReused(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Parts().Create(ctx, &models.Part{Name: "Chain", Category: "drivetrain", Price: 25, Quantity: 10})
	require.NoError(t, err)
	require.NoError(t, s.Parts().Delete(ctx, first))

	second, err := s.Parts().Create(ctx, &models.Part{Name: "Cassette", Category: "drivetrain", Price: 40, Quantity: 5})
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestPersistence_AcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)

	id, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3})
	require.NoError(t, err)
	uid, err := s.Users().Create(ctx, &models.User{Username: "alice", PasswordHash: "x", Role: "customer"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)

	bike, err := s2.Bikes().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Trail X", bike.Model)
	assert.Equal(t, uint(3), bike.Quantity)

	u, err := s2.Users().Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestUsers_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().Create(ctx, &models.User{Username: "alice", PasswordHash: "x", Role: "customer"})
	require.NoError(t, err)

	_, err = s.Users().Create(ctx, &models.User{Username: "alice", PasswordHash: "y", Role: "customer"})
	assert.ErrorIs(t, err, storage.ErrDuplicateUsername)
}

func TestFindByField_Modes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Parts().Create(ctx, &models.Part{Name: "Trail Tire", Category: "wheels", Price: 30, Quantity: 4})
	require.NoError(t, err)
	_, err = s.Parts().Create(ctx, &models.Part{Name: "Road Tire", Category: "wheels", Price: 28, Quantity: 2})
	require.NoError(t, err)

	exact, err := s.Parts().FindByField(ctx, "name", "Trail Tire", storage.MatchExact)
	require.NoError(t, err)
	require.Len(t, exact, 1)

	none, err := s.Parts().FindByField(ctx, "name", "tire", storage.MatchExact)
	require.NoError(t, err)
	assert.Empty(t, none)

	sub, err := s.Parts().FindByField(ctx, "name", "tire", storage.MatchSubstring)
	require.NoError(t, err)
	assert.Len(t, sub, 2)

	_, err = s.Parts().FindByField(ctx, "price", "30", storage.MatchExact)
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestAdjustQuantity_NeverNegative(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 1})
	require.NoError(t, err)

	err = s.Bikes().AdjustQuantity(ctx, id, -2)
	assert.ErrorIs(t, err, storage.ErrInsufficientStock)

	info, err := s.Bikes().Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(1), info.Quantity)
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
		if _, err := tx.Users().Create(ctx, &models.User{Username: "ghost", PasswordHash: "x"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	info, err := s.Bikes().Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(3), info.Quantity)

	_, err = s.Users().GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAtomically_CommitsAndPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)

	id, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3})
	require.NoError(t, err)

	err = s.Atomically(ctx, func(tx storage.Store) error {
		return tx.Bikes().AdjustQuantity(ctx, id, -2)
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	info, err := s2.Bikes().Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(1), info.Quantity)
}

func TestOrders_CreateAndListByUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid, err := s.Users().Create(ctx, &models.User{Username: "alice", PasswordHash: "x", Role: "customer"})
	require.NoError(t, err)

	orderID, err := s.Orders().Create(ctx,
		&models.Order{UserID: uid, CreatedAt: 1700000000, Total: 530},
		[]models.OrderLine{
			{ItemID: 1, ItemKind: models.KindBike, Quantity: 1},
			{ItemID: 2, ItemKind: models.KindPart, Quantity: 2},
		})
	require.NoError(t, err)

	order, lines, err := s.Orders().Get(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, 530.0, order.Total)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, orderID, l.OrderID)
		assert.NotZero(t, l.ID)
	}

	mine, err := s.Orders().ListByUser(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
