package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// priceLookupConcurrency bounds parallel product lookups per listing.
const priceLookupConcurrency = 8

// CartInput carries a new cart entry. UserID is honored for admins only.
type CartInput struct {
	ProductID uuid.UUID
	Amount    int
	UserID    *uuid.UUID
}

// UpdateCartInput lists the cart entry fields a PATCH may change.
type UpdateCartInput struct {
	Amount *int
	Status *model.CartStatus
}

// CartItem is a cart entry enriched with its product and line subtotal.
type CartItem struct {
	model.CartEntry
	Product  *model.Product  `json:"product"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartListing is one page of cart entries plus totals over every matching entry.
type CartListing struct {
	Items      []CartItem
	TotalCount int64
	TotalToPay decimal.Decimal
	Page       repository.Page
}

// CartService handles shopping cart operations.
type CartService interface {
	ListCart(ctx context.Context, actor *model.User, filter repository.CartFilter) (*CartListing, error)
	AddToCart(ctx context.Context, actor *model.User, in CartInput) (*model.CartEntry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*model.CartEntry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, in UpdateCartInput) (*model.CartEntry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	// OwnerOf returns the user owning cart entry id.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type cartService struct {
	repo     repository.CartRepository
	products PriceLookup
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, products PriceLookup) CartService {
	return &cartService{repo: repo, products: products}
}

// ListCart returns the requested page of entries. Non-admins only ever see their own entries.
// totalToPay is the sum of price × amount over the full filtered set, not just the page.
func (s *cartService) ListCart(ctx context.Context, actor *model.User, filter repository.CartFilter) (*CartListing, error) {
	if !actor.IsAdmin() {
		filter.UserID = &actor.ID
	}

	entries, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	products, err := s.resolveProducts(ctx, entries)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(lineTotal(products[e.ProductID], e.Amount))
	}

	page := filter.Page.Normalize()
	start := min(page.Offset(), len(entries))
	end := min(start+page.PerPage, len(entries))

	items := make([]CartItem, 0, end-start)
	for _, e := range entries[start:end] {
		p := products[e.ProductID]
		items = append(items, CartItem{CartEntry: e, Product: p, Subtotal: lineTotal(p, e.Amount)})
	}

	return &CartListing{
		Items:      items,
		TotalCount: int64(len(entries)),
		TotalToPay: total,
		Page:       page,
	}, nil
}

// resolveProducts loads every distinct product once, in parallel. The first failure wins.
func (s *cartService) resolveProducts(ctx context.Context, entries []model.CartEntry) (map[uuid.UUID]*model.Product, error) {
	ids := make([]uuid.UUID, 0, len(entries))
	seen := make(map[uuid.UUID]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ProductID]; ok {
			continue
		}
		seen[e.ProductID] = struct{}{}
		ids = append(ids, e.ProductID)
	}

	found := make([]*model.Product, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(priceLookupConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := s.products.GetProduct(gctx, id)
			if err != nil {
				return err
			}
			found[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	products := make(map[uuid.UUID]*model.Product, len(ids))
	for i, id := range ids {
		products[id] = found[i]
	}
	return products, nil
}

func lineTotal(p *model.Product, amount int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(amount)))
}

func (s *cartService) AddToCart(ctx context.Context, actor *model.User, in CartInput) (*model.CartEntry, error) {
	owner := actor.ID
	if in.UserID != nil && actor.IsAdmin() {
		owner = *in.UserID
	}
	if err := validAmount(in.Amount); err != nil {
		return nil, err
	}
	if _, err := s.products.GetProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	// The (user, product) pair is unique across statuses, so an ordered entry is
	// returned to the cart instead of blocking the product for good.
	ordered, err := s.repo.ListAll(ctx, repository.CartFilter{
		UserID:    &owner,
		ProductID: &in.ProductID,
		Status:    model.CartStatusOrdered,
	})
	if err != nil {
		return nil, err
	}
	if len(ordered) > 0 {
		entry := &ordered[0]
		entry.Amount = in.Amount
		entry.Status = model.CartStatusPending
		if err := s.repo.Update(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	}

	entry := &model.CartEntry{
		ProductID: in.ProductID,
		Amount:    in.Amount,
		UserID:    owner,
		Status:    model.CartStatusPending,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, repository.CheckDuplicate(err, "productId")
	}
	return entry, nil
}

func (s *cartService) GetEntry(ctx context.Context, id uuid.UUID) (*model.CartEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "cart entry")
	}
	return entry, nil
}

func (s *cartService) UpdateEntry(ctx context.Context, id uuid.UUID, in UpdateCartInput) (*model.CartEntry, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Amount != nil {
		if err := validAmount(*in.Amount); err != nil {
			return nil, err
		}
		entry.Amount = *in.Amount
	}
	if in.Status != nil {
		entry.Status = *in.Status
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *cartService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "cart entry")
	}
	return nil
}

func (s *cartService) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	return entry.UserID, nil
}

func validAmount(amount int) error {
	if amount < 0 || amount > model.MaxCartAmount {
		return errors.Validation("Validation Error", errors.FieldError{
			Field:    "amount",
			Location: errors.LocationBody,
			Messages: []string{fmt.Sprintf("must be between 0 and %d", model.MaxCartAmount)},
		})
	}
	return nil
}
