package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/testdb"
)

func TestReserveInventory(t *testing.T) {
	db := testdb.Open(t)
	r := repo.New(db)
	ctx := context.Background()
	p := testdb.SeedProduct(t, db, "mug", 1000, 5, nil)

	require.NoError(t, r.ReserveInventory(ctx, p.InventoryID, 3))
	assert.Equal(t, int64(2), testdb.Stock(t, db, p))

	err := r.ReserveInventory(ctx, p.InventoryID, 3)
	assert.ErrorIs(t, err, repo.ErrInsufficientStock)
	assert.Equal(t, int64(2), testdb.Stock(t, db, p))

	require.NoError(t, r.ReserveInventory(ctx, p.InventoryID, 2))
	assert.Equal(t, int64(0), testdb.Stock(t, db, p))

	assert.ErrorIs(t, r.ReserveInventory(ctx, p.InventoryID, 1), repo.ErrInsufficientStock)
	assert.Error(t, r.ReserveInventory(ctx, p.InventoryID, 0))
}

// A competing buyer takes the last units after the stock was read but
// before the reservation statement runs.
func TestReserveInventoryAfterConcurrentDrain(t *testing.T) {
	db := testdb.Open(t)
	r := repo.New(db)
	ctx := context.Background()
	p := testdb.SeedProduct(t, db, "mug", 1000, 1, nil)

	drained := false
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:drain_stock", func(tx *gorm.DB) {
		if drained || tx.Statement.Table != "product_inventories" {
			return
		}
		drained = true
		err := tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE product_inventories SET quantity = 0 WHERE id = ?", p.InventoryID).Error
		require.NoError(t, err)
	}))

	err := r.ReserveInventory(ctx, p.InventoryID, 1)
	assert.True(t, drained)
	assert.ErrorIs(t, err, repo.ErrInsufficientStock)
	assert.Equal(t, int64(0), testdb.Stock(t, db, p))
}

func TestReserveInventoryRollsBackWithTransaction(t *testing.T) {
	db := testdb.Open(t)
	r := repo.New(db)
	ctx := context.Background()
	p := testdb.SeedProduct(t, db, "mug", 1000, 5, nil)

	err := r.Transaction(ctx, func(tx *repo.GormRepo) error {
		require.NoError(t, tx.ReserveInventory(ctx, p.InventoryID, 4))
		return tx.ReserveInventory(ctx, p.InventoryID, 4)
	})
	assert.ErrorIs(t, err, repo.ErrInsufficientStock)
	assert.Equal(t, int64(5), testdb.Stock(t, db, p))
}

func TestFindProductPreloads(t *testing.T) {
	db := testdb.Open(t)
	r := repo.New(db)
	d := testdb.SeedDiscount(t, db, 10, 0, 500)
	p := testdb.SeedProduct(t, db, "kettle", 20000, 7, d)

	got, err := r.FindProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Inventory.Quantity)
	require.NotNil(t, got.Discount)
	assert.Equal(t, int64(10), got.Discount.Percentage)

	_, err = r.FindProduct(context.Background(), p.ID+100)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOwnerScopedLookups(t *testing.T) {
	db := testdb.Open(t)
	r := repo.New(db)
	ctx := context.Background()
	alice := testdb.SeedUser(t, db, "alice", models.RoleUser)
	bob := testdb.SeedUser(t, db, "bob", models.RoleUser)
	addr := testdb.SeedAddress(t, db, alice.ID)
	pay := testdb.SeedPayment(t, db, alice.ID)

	_, err := r.FindAddress(ctx, alice.ID, addr.ID)
	require.NoError(t, err)
	_, err = r.FindAddress(ctx, bob.ID, addr.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = r.FindPayment(ctx, alice.ID, pay.ID)
	require.NoError(t, err)
	_, err = r.FindPayment(ctx, bob.ID, pay.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = r.FindUserByUsername(ctx, "carol")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCreateUserIfNotExists(t *testing.T) {
	db := testdb.Open(t)
	r := repo.New(db)
	ctx := context.Background()

	u := &models.User{Username: "dave", Email: "dave@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, r.CreateUserIfNotExists(ctx, u))
	assert.NotZero(t, u.ID)

	dup := &models.User{Username: "dave", Email: "other@example.com", PasswordHash: "y", Role: models.RoleUser}
	assert.ErrorIs(t, r.CreateUserIfNotExists(ctx, dup), repo.ErrUserAlreadyExist)
}

func seedOrder(t *testing.T, r *repo.GormRepo, user *models.User, addr *models.Address, pay *models.Payment, p *models.Product) *models.Order {
	t.Helper()
	o := &models.Order{
		Status:    models.OrderCreated,
		UserID:    user.ID,
		AddressID: addr.ID,
		PaymentID: pay.ID,
		Total:     p.Price,
		Items:     []models.OrderItem{{ProductID: p.ID, Quantity: 1, Price: p.Price}},
	}
	require.NoError(t, r.CreateOrder(context.Background(), o))
	return o
}

func TestOrderScopes(t *testing.T) {
	db := testdb.Open(t)
	r := repo.New(db)
	ctx := context.Background()

	alice := testdb.SeedUser(t, db, "alice", models.RoleUser)
	bob := testdb.SeedUser(t, db, "bob", models.RoleUser)
	p := testdb.SeedProduct(t, db, "mug", 1000, 50, nil)

	aAddr, aPay := testdb.SeedAddress(t, db, alice.ID), testdb.SeedPayment(t, db, alice.ID)
	bAddr, bPay := testdb.SeedAddress(t, db, bob.ID), testdb.SeedPayment(t, db, bob.ID)

	for i := 0; i < 3; i++ {
		seedOrder(t, r, alice, aAddr, aPay, p)
	}
	bobOrder := seedOrder(t, r, bob, bAddr, bPay, p)

	_, total, err := r.FindOrders(ctx, repo.AnyOrder(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	orders, total, err := r.FindOrders(ctx, repo.OwnedBy(alice.ID), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	assert.Greater(t, orders[0].ID, orders[1].ID)
	for _, o := range orders {
		assert.Equal(t, "alice", o.User.Username)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "mug", o.Items[0].Product.Name)
	}

	orders, _, err = r.FindOrders(ctx, repo.OwnedBy(alice.ID), 2, 2)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, alice.ID, orders[0].UserID)

	orders, _, err = r.FindOrders(ctx, repo.OwnedBy(alice.ID), 4, 2)
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, total, err = r.FindOrders(ctx, repo.Scope{}, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = r.FindOrder(ctx, repo.OwnedBy(alice.ID), bobOrder.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	got, err := r.FindOrder(ctx, repo.OwnedBy(bob.ID), bobOrder.ID)
	require.NoError(t, err)
	assert.Equal(t, bAddr.ID, got.Address.ID)
	assert.Equal(t, bPay.ID, got.Payment.ID)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := testdb.Open(t)
	r := repo.New(db)
	ctx := context.Background()

	u := testdb.SeedUser(t, db, "alice", models.RoleUser)
	p := testdb.SeedProduct(t, db, "mug", 1000, 5, nil)
	o := seedOrder(t, r, u, testdb.SeedAddress(t, db, u.ID), testdb.SeedPayment(t, db, u.ID), p)

	require.NoError(t, r.UpdateOrderStatus(ctx, o.ID, models.OrderShipped))
	got, err := r.FindOrder(ctx, repo.AnyOrder(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, got.Status)
	assert.NotNil(t, got.LastModifiedBy)

	assert.ErrorIs(t, r.UpdateOrderStatus(ctx, o.ID+100, models.OrderPaid), repo.ErrNotFound)
}

func TestOutboxRoundTrip(t *testing.T) {
	db := testdb.Open(t)
	r := repo.New(db)
	ctx := context.Background()

	require.NoError(t, r.InsertOutbox(ctx, "order_events", "1", map[string]any{"type": "order_created"}))
	require.NoError(t, r.InsertOutbox(ctx, "order_events", "2", map[string]any{"type": "order_created"}))

	pending, err := r.FetchPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "1", pending[0].Key)
	assert.JSONEq(t, `{"type":"order_created"}`, string(pending[0].Payload))
	assert.NotEmpty(t, pending[0].EventID)

	require.NoError(t, r.MarkSent(ctx, pending[0].ID))

	pending, err = r.FetchPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "2", pending[0].Key)
}
