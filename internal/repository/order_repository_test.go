package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/testutil"
)

func TestOrderRepository_RoundTripsCartSnapshot(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewOrderRepository(gdb)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	p := testutil.CreateProduct(t, gdb, "p", 10)

	order := &model.Order{
		Cart:   []model.CartLine{{ProductID: p.ID, Quantity: 2}},
		Total:  decimal.NewFromInt(20),
		UserID: u.ID,
	}
	require.NoError(t, repo.Create(ctx, order))
	assert.Equal(t, model.OrderStatusPending, order.Status)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Cart, found.Cart)
	assert.True(t, decimal.NewFromInt(20).Equal(found.Total))
}

func TestOrderRepository_ListScopesByUser(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewOrderRepository(gdb)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	other := testutil.CreateUser(t, gdb, "o@example.com", model.RoleUser)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.Order{UserID: u.ID, Total: decimal.NewFromInt(int64(i))}))
	}
	require.NoError(t, repo.Create(ctx, &model.Order{UserID: other.ID, Total: decimal.Zero}))

	orders, total, err := repo.List(ctx, OrderFilter{UserID: &u.ID, Page: Page{Page: 2, PerPage: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 1)
}

func TestRepositories_WithTransactionRollsBack(t *testing.T) {
	gdb := testutil.NewDB(t)
	repos := New(gdb)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	p := testutil.CreateProduct(t, gdb, "p", 10)
	testutil.CreateCartEntry(t, gdb, u, p, 1)

	boom := errors.New("boom")
	err := repos.WithTransaction(ctx, func(ctx context.Context, tx *Repositories) error {
		if _, err := tx.Carts.DeletePendingByUser(ctx, u.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	entries, err := repos.Carts.ListAll(ctx, CartFilter{UserID: &u.ID})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
