package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"storefront/internal/cache"
	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const productCacheTTL = 5 * time.Minute

// ProductInput carries the fields of a new or imported product.
type ProductInput struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Stock    int
}

// UpdateProductInput lists the product fields a PATCH may change.
type UpdateProductInput struct {
	Name     *string
	Category *string
	Price    *decimal.Decimal
	Stock    *int
}

// ImportResult summarizes a bulk product import.
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// ProductService handles catalog operations.
type ProductService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	// ImportProducts creates new products and updates existing ones matched by name.
	ImportProducts(ctx context.Context, items []ProductInput) (ImportResult, error)
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
	log   logging.Logger
	group singleflight.Group
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, cache *cache.Client, log logging.Logger) ProductService {
	return &productService{repo: repo, cache: cache, log: log}
}

func (s *productService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

func (s *productService) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	product := &model.Product{
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		Price:    in.Price,
		Stock:    in.Stock,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, repository.CheckDuplicate(err, "name")
	}
	return product, nil
}

// GetProduct reads through the cache; concurrent misses for one id share a single query.
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	key := s.cacheKey(id)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		product, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(product); err == nil {
			_ = s.cache.Set(ctx, key, payload, productCacheTTL)
		}
		return product, nil
	})
	if err != nil {
		return nil, notFound(err, "product")
	}

	// Callers may modify the result; hand each its own copy.
	product := *v.(*model.Product)
	return &product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}

	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, repository.CheckDuplicate(err, "name")
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "product")
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *productService) ImportProducts(ctx context.Context, items []ProductInput) (ImportResult, error) {
	var res ImportResult
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		existing, err := s.repo.FindByName(ctx, name)
		if err != nil && !repository.IsNotFound(err) {
			return res, fmt.Errorf("import product %q: %w", name, err)
		}

		if existing != nil {
			existing.Category = strings.TrimSpace(item.Category)
			existing.Price = item.Price
			existing.Stock = item.Stock
			if err := s.repo.Update(ctx, existing); err != nil {
				return res, fmt.Errorf("update product %q: %w", name, err)
			}
			_ = s.cache.Delete(ctx, s.cacheKey(existing.ID))
			res.Updated++
			continue
		}

		if _, err := s.CreateProduct(ctx, item); err != nil {
			return res, err
		}
		res.Created++
	}

	s.log.Info(ctx, "products imported", "created", res.Created, "updated", res.Updated)
	return res, nil
}

// PriceLookup resolves product prices for cart aggregation.
type PriceLookup interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

type storePrices struct {
	repo repository.ProductRepository
}

// NewStorePrices returns a PriceLookup that reads every product from the store, bypassing the cache.
func NewStorePrices(repo repository.ProductRepository) PriceLookup {
	return storePrices{repo: repo}
}

func (p storePrices) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := p.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	return product, nil
}
