package menu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bikeshop/internal/models"
	"bikeshop/internal/service"
	"bikeshop/internal/storage"
	"bikeshop/internal/storage/gormstore"
)

// runScript feeds one line of input per prompt and returns everything
// the session printed.
func runScript(t *testing.T, s storage.Store, lines ...string) string {
	accounts := &service.Accounts{Store: s}
	fulfillment := &service.Fulfillment{Store: s}
	var out bytes.Buffer

	session := NewSession(s, accounts, fulfillment, strings.NewReader(strings.Join(lines, "\n")), &out, nil)
	session.Run(context.Background())
	return out.String()
}

func newTestStore(t *testing.T) storage.Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	s, err := gormstore.New(db)
	require.NoError(t, err)
	return s
}

func TestRun_Quit(t *testing.T) {
	s := newTestStore(t)
	out := runScript(t, s, "0")
	assert.Contains(t, out, "Select a role:")
}

func TestRun_EOFUnwinds(t *testing.T) {
	s := newTestStore(t)
	// input ends inside the warehouse menu
	out := runScript(t, s, "3")
	assert.Contains(t, out, "Warehouse manager")
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestStore(t)
	out := runScript(t, s,
		"7", "alice", "secret",
		"8", "alice", "secret",
		"8", "alice", "wrong",
		"0",
	)
	assert.Contains(t, out, "Registered user 1.")
	assert.Contains(t, out, "Logged in as alice.")
	assert.Contains(t, out, "Login failed")
}

func TestWarehouse_AddAndListBike(t *testing.T) {
	s := newTestStore(t)
	out := runScript(t, s,
		"3",
		"3", "Trail X", "Summit", "500", "3",
		"1",
		"0",
		"0",
	)
	assert.Contains(t, out, "Bike 1 added.")
	assert.Contains(t, out, "Summit Trail X — 500.00, 3 in stock")
}

func TestCashier_PlaceOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid, err := s.Users().Create(ctx, &models.User{Username: "alice", PasswordHash: "x", Role: "customer"})
	require.NoError(t, err)
	bikeID, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 3})
	require.NoError(t, err)

	out := runScript(t, s,
		"4",
		"3", "1", // place order, customer 1
		"bike", "1", "2",
		"done",
		"0",
		"0",
	)
	assert.Contains(t, out, "Order 1 placed, total 1000.00.")

	info, err := s.Bikes().Lookup(ctx, bikeID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), info.Quantity)

	orders, err := s.Orders().ListByUser(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCashier_InsufficientStockRetries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().Create(ctx, &models.User{Username: "alice", PasswordHash: "x", Role: "customer"})
	require.NoError(t, err)
	_, err = s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 1})
	require.NoError(t, err)

	out := runScript(t, s,
		"4",
		"3", "1",
		"bike", "1", "5", // over stock, line rejected
		"bike", "1", "1",
		"done",
		"0",
		"0",
	)
	assert.Contains(t, out, "Only 1 in stock, try again.")
	assert.Contains(t, out, "Order 1 placed, total 500.00.")
}

func TestCustomer_RequiresLogin(t *testing.T) {
	s := newTestStore(t)
	out := runScript(t, s, "6", "0")
	assert.Contains(t, out, "Log in first")
}

func TestCustomer_BrowseAndOrders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Bikes().Create(ctx, &models.Bike{Model: "Trail X", Brand: "Summit", Price: 500, Quantity: 2})
	require.NoError(t, err)
	_, err = s.Bikes().Create(ctx, &models.Bike{Model: "City Cruiser", Brand: "Summit", Price: 300, Quantity: 0})
	require.NoError(t, err)

	out := runScript(t, s,
		"7", "alice", "secret",
		"8", "alice", "secret",
		"6",
		"1", // browse bikes, in stock only
		"4", "trail", // catalog search
		"0",
		"0",
	)
	assert.Contains(t, out, "Trail X")
	assert.NotContains(t, out, "City Cruiser — 300.00, 0 in stock")
	assert.Contains(t, out, "bike 1: Summit Trail X")
}
