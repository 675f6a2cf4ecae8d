package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/testutil"
)

func newCartService(gdb *gorm.DB) (CartService, repository.CartRepository) {
	repos := repository.New(gdb)
	return NewCartService(repos.Carts, NewStorePrices(repos.Products)), repos.Carts
}

func TestCartService_TotalToPay(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, _ := newCartService(gdb)

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	p1 := testutil.CreateProduct(t, gdb, "p1", 10)
	testutil.CreateCartEntry(t, gdb, u, p1, 2)

	listing, err := svc.ListCart(context.Background(), u, repository.CartFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), listing.TotalCount)
	assert.True(t, decimal.NewFromInt(20).Equal(listing.TotalToPay), "got %s", listing.TotalToPay)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "p1", listing.Items[0].Product.Name)
	assert.True(t, decimal.NewFromInt(20).Equal(listing.Items[0].Subtotal))
}

func TestCartService_TotalsCoverEveryPage(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, _ := newCartService(gdb)

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	for i, price := range []int64{1, 2, 3, 4, 5} {
		p := testutil.CreateProduct(t, gdb, string(rune('a'+i)), price)
		testutil.CreateCartEntry(t, gdb, u, p, 2)
	}

	listing, err := svc.ListCart(context.Background(), u, repository.CartFilter{Page: repository.Page{Page: 2, PerPage: 2}})
	require.NoError(t, err)
	assert.Len(t, listing.Items, 2)
	assert.Equal(t, int64(5), listing.TotalCount)
	assert.True(t, decimal.NewFromInt(30).Equal(listing.TotalToPay))

	listing, err = svc.ListCart(context.Background(), u, repository.CartFilter{Page: repository.Page{Page: 9, PerPage: 2}})
	require.NoError(t, err)
	assert.Empty(t, listing.Items)
	assert.Equal(t, int64(5), listing.TotalCount)
}

func TestCartService_ScopesNonAdmins(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, _ := newCartService(gdb)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	other := testutil.CreateUser(t, gdb, "o@example.com", model.RoleUser)
	admin := testutil.CreateUser(t, gdb, "a@example.com", model.RoleAdmin)
	p := testutil.CreateProduct(t, gdb, "p", 3)
	testutil.CreateCartEntry(t, gdb, u, p, 1)
	testutil.CreateCartEntry(t, gdb, other, p, 1)

	listing, err := svc.ListCart(ctx, u, repository.CartFilter{UserID: &other.ID})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, u.ID, listing.Items[0].UserID)

	listing, err = svc.ListCart(ctx, admin, repository.CartFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), listing.TotalCount)
}

func TestCartService_MissingProductFailsListing(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, carts := newCartService(gdb)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	require.NoError(t, carts.Create(ctx, &model.CartEntry{UserID: u.ID, ProductID: uuid.New(), Amount: 1}))

	_, err := svc.ListCart(ctx, u, repository.CartFilter{})
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestCartService_AddToCart(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, _ := newCartService(gdb)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	other := testutil.CreateUser(t, gdb, "o@example.com", model.RoleUser)
	admin := testutil.CreateUser(t, gdb, "a@example.com", model.RoleAdmin)
	p := testutil.CreateProduct(t, gdb, "p", 3)

	entry, err := svc.AddToCart(ctx, u, CartInput{ProductID: p.ID, Amount: 2, UserID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, u.ID, entry.UserID)
	assert.Equal(t, model.CartStatusPending, entry.Status)

	_, err = svc.AddToCart(ctx, u, CartInput{ProductID: p.ID, Amount: 1})
	require.Error(t, err)
	var appErr *errors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.KindConflict, appErr.Kind)
	assert.Equal(t, "productId", appErr.Fields[0].Field)

	entry, err = svc.AddToCart(ctx, admin, CartInput{ProductID: p.ID, Amount: 1, UserID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, entry.UserID)

	_, err = svc.AddToCart(ctx, admin, CartInput{ProductID: uuid.New(), Amount: 1})
	assert.True(t, errors.IsKind(err, errors.KindNotFound))

	_, err = svc.AddToCart(ctx, admin, CartInput{ProductID: p.ID, Amount: model.MaxCartAmount + 1})
	assert.True(t, errors.IsKind(err, errors.KindValidation))
}

func TestCartService_AddToCartReusesOrderedEntry(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, _ := newCartService(gdb)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	p := testutil.CreateProduct(t, gdb, "p", 3)
	first := testutil.CreateCartEntry(t, gdb, u, p, 1)

	ordered := model.CartStatusOrdered
	_, err := svc.UpdateEntry(ctx, first.ID, UpdateCartInput{Status: &ordered})
	require.NoError(t, err)

	again, err := svc.AddToCart(ctx, u, CartInput{ProductID: p.ID, Amount: 4})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, model.CartStatusPending, again.Status)
	assert.Equal(t, 4, again.Amount)

	stored, err := svc.GetEntry(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CartStatusPending, stored.Status)
	assert.Equal(t, 4, stored.Amount)

	// the entry is pending again, so a second add is a duplicate
	_, err = svc.AddToCart(ctx, u, CartInput{ProductID: p.ID, Amount: 1})
	assert.True(t, errors.IsKind(err, errors.KindConflict))
}

func TestCartService_UpdateDeleteOwner(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc, _ := newCartService(gdb)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	p := testutil.CreateProduct(t, gdb, "p", 3)
	entry := testutil.CreateCartEntry(t, gdb, u, p, 1)

	amount := 5
	updated, err := svc.UpdateEntry(ctx, entry.ID, UpdateCartInput{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Amount)

	owner, err := svc.OwnerOf(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner)

	require.NoError(t, svc.DeleteEntry(ctx, entry.ID))
	assert.True(t, errors.IsKind(svc.DeleteEntry(ctx, entry.ID), errors.KindNotFound))
}
