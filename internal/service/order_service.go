package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// OrderInput is the order payload submitted by a client.
type OrderInput struct {
	Cart   []model.CartLine
	Total  decimal.Decimal
	Status model.OrderStatus
}

// UpdateOrderInput lists the order fields a PATCH may change.
type UpdateOrderInput struct {
	Status *model.OrderStatus
}

// OrderService handles the cart to order transition and order bookkeeping.
type OrderService interface {
	CreateOrder(ctx context.Context, actor *model.User, in OrderInput) (*model.Order, error)
	ListOrders(ctx context.Context, actor *model.User, filter repository.OrderFilter) ([]model.Order, int64, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, in UpdateOrderInput) (*model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	// OwnerOf returns the user owning order id.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type orderService struct {
	orders repository.OrderRepository
	carts  repository.CartRepository
	tx     repository.Transactor
	atomic bool
	log    logging.Logger
}

// NewOrderService creates a new order service. With atomic set, clearing the cart and
// writing the order share one database transaction.
func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	tx repository.Transactor,
	atomic bool,
	log logging.Logger,
) OrderService {
	return &orderService{orders: orders, carts: carts, tx: tx, atomic: atomic, log: log}
}

// CreateOrder turns the caller's pending cart into an order: every pending entry of the
// caller is removed, then the order is stored with the caller as owner.
func (s *orderService) CreateOrder(ctx context.Context, actor *model.User, in OrderInput) (*model.Order, error) {
	order := &model.Order{
		Cart:   in.Cart,
		Total:  in.Total,
		UserID: actor.ID,
		Status: in.Status,
	}
	if order.Cart == nil {
		order.Cart = []model.CartLine{}
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}

	if s.atomic {
		err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx *repository.Repositories) error {
			_, err := s.checkout(ctx, tx.Carts, tx.Orders, order)
			return err
		})
		if err != nil {
			return nil, err
		}
		return order, nil
	}

	cleared, err := s.checkout(ctx, s.carts, s.orders, order)
	if err != nil {
		if cleared > 0 {
			s.log.Warn(ctx, "order write failed after cart was cleared",
				"user_id", actor.ID, "cleared_entries", cleared, "error", err)
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) checkout(
	ctx context.Context,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	order *model.Order,
) (int64, error) {
	cleared, err := carts.DeletePendingByUser(ctx, order.UserID)
	if err != nil {
		return 0, fmt.Errorf("clear pending cart: %w", err)
	}
	if err := orders.Create(ctx, order); err != nil {
		return cleared, fmt.Errorf("create order: %w", err)
	}
	s.log.Info(ctx, "order created", "order_id", order.ID, "user_id", order.UserID, "cleared_entries", cleared)
	return cleared, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor *model.User, filter repository.OrderFilter) ([]model.Order, int64, error) {
	if !actor.IsAdmin() {
		filter.UserID = &actor.ID
	}
	return s.orders.List(ctx, filter)
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return order, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id uuid.UUID, in UpdateOrderInput) (*model.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		order.Status = *in.Status
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return notFound(err, "order")
	}
	return nil
}

func (s *orderService) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	return order.UserID, nil
}
