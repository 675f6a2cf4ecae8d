package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cache"
	"storefront/internal/errors"
	"storefront/internal/logging"
	"storefront/internal/repository"
	"storefront/internal/testutil"
)

func newProductService(t *testing.T) (ProductService, *miniredis.Miniredis) {
	t.Helper()
	gdb := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return NewProductService(repository.NewProductRepository(gdb), c, logging.Discard()), mr
}

func TestProductService_GetCachesAndUpdateInvalidates(t *testing.T) {
	svc, mr := newProductService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, ProductInput{Name: " Mug ", Category: "kitchen", Price: decimal.NewFromInt(8), Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Name)

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(got.Price))
	assert.True(t, mr.Exists("product:"+p.ID.String()))

	price := decimal.RequireFromString("9.50")
	_, err = svc.UpdateProduct(ctx, p.ID, UpdateProductInput{Price: &price})
	require.NoError(t, err)
	assert.False(t, mr.Exists("product:"+p.ID.String()))

	got, err = svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, price.Equal(got.Price))
}

func TestProductService_NotFoundAndDuplicate(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	_, err := svc.GetProduct(ctx, uuid.New())
	assert.True(t, errors.IsKind(err, errors.KindNotFound))

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Mug", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Mug", Price: decimal.NewFromInt(2)})
	assert.True(t, errors.IsKind(err, errors.KindConflict))

	assert.True(t, errors.IsKind(svc.DeleteProduct(ctx, uuid.New()), errors.KindNotFound))
}

func TestProductService_Import(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductInput{Name: "Mug", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	res, err := svc.ImportProducts(ctx, []ProductInput{
		{Name: "Mug", Category: "kitchen", Price: decimal.NewFromInt(7), Stock: 4},
		{Name: "Kettle", Category: "kitchen", Price: decimal.NewFromInt(30), Stock: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Created: 1, Updated: 1}, res)

	products, total, err := svc.ListProducts(ctx, repository.ProductFilter{Category: "kitchen"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, products, 2)
}
