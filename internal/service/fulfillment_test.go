package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
	"bikeshop/internal/storage/gormstore"
)

func newTestStore(t *testing.T) storage.Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	s, err := gormstore.New(db)
	require.NoError(t, err)
	return s
}

func seedCustomer(t *testing.T, s storage.Store) uint {
	uid, err := s.Users().Create(context.Background(), &models.User{
		Username: "alice", PasswordHash: "x", Role: RoleCustomer,
	})
	require.NoError(t, err)
	return uid
}

func TestPlaceOrder_DecrementsStockAndTotals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := seedCustomer(t, s)

	bikeID, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3})
	require.NoError(t, err)

	f := &Fulfillment{Store: s}
	res, err := f.PlaceOrder(ctx, uid, []LineRequest{
		{ItemID: bikeID, Kind: models.KindBike, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, res.Total)

	info, err := s.Bikes().Lookup(ctx, bikeID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), info.Quantity)

	order, lines, err := s.Orders().Get(ctx, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, uid, order.UserID)
	assert.Equal(t, 1000.0, order.Total)
	require.Len(t, lines, 1)
	assert.Equal(t, bikeID, lines[0].ItemID)
	assert.Equal(t, models.KindBike, lines[0].ItemKind)
	assert.Equal(t, uint(2), lines[0].Quantity)
}

func TestPlaceOrder_MixedKinds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := seedCustomer(t, s)

	bikeID, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 2})
	require.NoError(t, err)
	partID, err := s.Parts().Create(ctx, &models.Part{Name: "Chain", Category: "drivetrain", Price: 25, Quantity: 10})
	require.NoError(t, err)

	f := &Fulfillment{Store: s}
	res, err := f.PlaceOrder(ctx, uid, []LineRequest{
		{ItemID: bikeID, Kind: models.KindBike, Quantity: 1},
		{ItemID: partID, Kind: models.KindPart, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 550.0, res.Total)

	bikeInfo, err := s.Bikes().Lookup(ctx, bikeID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), bikeInfo.Quantity)

	partInfo, err := s.Parts().Lookup(ctx, partID)
	require.NoError(t, err)
	assert.Equal(t, uint(8), partInfo.Quantity)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := seedCustomer(t, s)

	bikeID, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 1})
	require.NoError(t, err)

	f := &Fulfillment{Store: s}
	res, err := f.PlaceOrder(ctx, uid, []LineRequest{
		{ItemID: bikeID, Kind: models.KindBike, Quantity: 2},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrInsufficientStock)
	assert.Nil(t, res)

	info, err := s.Bikes().Lookup(ctx, bikeID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), info.Quantity)

	orders, err := s.Orders().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrder_AllOrNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := seedCustomer(t, s)

	bikeID, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 5})
	require.NoError(t, err)
	partID, err := s.Parts().Create(ctx, &models.Part{Name: "Chain", Category: "drivetrain", Price: 25, Quantity: 1})
	require.NoError(t, err)

	// second line exceeds stock, so the first must not stick
	f := &Fulfillment{Store: s}
	_, err = f.PlaceOrder(ctx, uid, []LineRequest{
		{ItemID: bikeID, Kind: models.KindBike, Quantity: 2},
		{ItemID: partID, Kind: models.KindPart, Quantity: 3},
	})
	require.ErrorIs(t, err, storage.ErrInsufficientStock)

	bikeInfo, err := s.Bikes().Lookup(ctx, bikeID)
	require.NoError(t, err)
	assert.Equal(t, uint(5), bikeInfo.Quantity)

	partInfo, err := s.Parts().Lookup(ctx, partID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), partInfo.Quantity)

	orders, err := s.Orders().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrder_UnknownItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := seedCustomer(t, s)

	f := &Fulfillment{Store: s}
	_, err := f.PlaceOrder(ctx, uid, []LineRequest{
		{ItemID: 99, Kind: models.KindBike, Quantity: 1},
	})
	assert.ErrorIs(t, err, storage.ErrUnknownItem)
}

func TestPlaceOrder_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := seedCustomer(t, s)

	f := &Fulfillment{Store: s}

	_, err := f.PlaceOrder(ctx, uid, nil)
	assert.ErrorIs(t, err, storage.ErrValidation)

	bikeID, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3})
	require.NoError(t, err)

	_, err = f.PlaceOrder(ctx, uid, []LineRequest{
		{ItemID: bikeID, Kind: models.KindBike, Quantity: 0},
	})
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = f.PlaceOrder(ctx, uid, []LineRequest{
		{ItemID: bikeID, Kind: models.ItemKind("frame"), Quantity: 1},
	})
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestPlaceOrder_RepeatedLineSameItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := seedCustomer(t, s)

	bikeID, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3})
	require.NoError(t, err)

	f := &Fulfillment{Store: s}
	res, err := f.PlaceOrder(ctx, uid, []LineRequest{
		{ItemID: bikeID, Kind: models.KindBike, Quantity: 1},
		{ItemID: bikeID, Kind: models.KindBike, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, res.Total)

	info, err := s.Bikes().Lookup(ctx, bikeID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), info.Quantity)
}
