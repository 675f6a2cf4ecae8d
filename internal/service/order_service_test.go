package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/testutil"
)

func newOrderService(gdb *gorm.DB, atomic bool) (OrderService, *repository.Repositories) {
	repos := repository.New(gdb)
	return NewOrderService(repos.Orders, repos.Carts, repos, atomic, logging.Discard()), repos
}

func TestOrderService_CreateClearsOnlyCallersPendingCart(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, repos := newOrderService(gdb, false)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	other := testutil.CreateUser(t, gdb, "o@example.com", model.RoleUser)
	p1 := testutil.CreateProduct(t, gdb, "p1", 10)
	p2 := testutil.CreateProduct(t, gdb, "p2", 4)

	testutil.CreateCartEntry(t, gdb, u, p1, 2)
	testutil.CreateCartEntry(t, gdb, u, p2, 1)
	ordered := testutil.CreateCartEntry(t, gdb, other, p2, 3)
	ordered.Status = model.CartStatusOrdered
	require.NoError(t, repos.Carts.Update(ctx, ordered))
	testutil.CreateCartEntry(t, gdb, other, p1, 1)

	// the payload names a single line but the whole pending cart is consumed
	order, err := svc.CreateOrder(ctx, u, OrderInput{
		Cart:  []model.CartLine{{ProductID: p1.ID, Quantity: 2}},
		Total: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, order.UserID)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	mine, err := repos.Carts.ListAll(ctx, repository.CartFilter{UserID: &u.ID})
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := repos.Carts.ListAll(ctx, repository.CartFilter{UserID: &other.ID})
	require.NoError(t, err)
	assert.Len(t, theirs, 2)

	stored, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Cart, stored.Cart)
}

func TestOrderService_CreateIgnoresPayloadOwner(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, _ := newOrderService(gdb, false)

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	order, err := svc.CreateOrder(context.Background(), u, OrderInput{Total: decimal.Zero})
	require.NoError(t, err)
	assert.Equal(t, u.ID, order.UserID)
	assert.NotNil(t, order.Cart)
}

func TestOrderService_FailedOrderWrite(t *testing.T) {
	tests := []struct {
		name          string
		atomic        bool
		remainingCart int
	}{
		{name: "non-atomic leaves the cart cleared", atomic: false, remainingCart: 0},
		{name: "atomic rolls the cart back", atomic: true, remainingCart: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb := testutil.NewDB(t)
			svc, repos := newOrderService(gdb, tt.atomic)
			ctx := context.Background()

			u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
			p := testutil.CreateProduct(t, gdb, "p", 10)
			testutil.CreateCartEntry(t, gdb, u, p, 1)
			require.NoError(t, gdb.Migrator().DropTable(&model.Order{}))

			_, err := svc.CreateOrder(ctx, u, OrderInput{Total: decimal.NewFromInt(10)})
			require.Error(t, err)

			entries, err := repos.Carts.ListAll(ctx, repository.CartFilter{UserID: &u.ID})
			require.NoError(t, err)
			assert.Len(t, entries, tt.remainingCart)
		})
	}
}

func TestOrderService_ListScopesNonAdmins(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, _ := newOrderService(gdb, false)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	admin := testutil.CreateUser(t, gdb, "a@example.com", model.RoleAdmin)
	_, err := svc.CreateOrder(ctx, u, OrderInput{})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, admin, OrderInput{})
	require.NoError(t, err)

	_, total, err := svc.ListOrders(ctx, u, repository.OrderFilter{UserID: &admin.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.ListOrders(ctx, admin, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestOrderService_UpdateAndOwner(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, _ := newOrderService(gdb, false)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	order, err := svc.CreateOrder(ctx, u, OrderInput{})
	require.NoError(t, err)

	confirmed := model.OrderStatusConfirmed
	updated, err := svc.UpdateOrder(ctx, order.ID, UpdateOrderInput{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, updated.Status)

	owner, err := svc.OwnerOf(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))
	_, err = svc.OwnerOf(ctx, order.ID)
	assert.Error(t, err)
}
