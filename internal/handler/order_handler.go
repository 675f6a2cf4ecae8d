package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// ListOrdersQuery holds order list filters. userId is ignored for non-admins.
type ListOrdersQuery struct {
	UserID string `query:"userId" validate:"omitempty,uuid"`
	Status string `query:"status" validate:"omitempty,oneof=pending confirmed"`
	PageQuery
}

// CreateOrderRequest represents an order built from the caller's cart.
// Each cart line is a [productId, quantity] pair.
type CreateOrderRequest struct {
	Cart   []model.CartLine `json:"cart" swaggertype:"array,object"`
	Total  *decimal.Decimal `json:"total" swaggertype:"string" example:"20"`
	Status string           `json:"status" validate:"omitempty,oneof=pending confirmed"`
}

// UpdateOrderRequest represents a partial order update.
type UpdateOrderRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending confirmed"`
}

// OrderList is a page of orders.
type OrderList struct {
	Data   []model.Order `json:"data"`
	Totals Totals        `json:"totals"`
}

// ListOrders godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Owner (admins only)"
// @Param status query string false "Status" Enums(pending, confirmed)
// @Param page query int false "Page" minimum(1)
// @Param perPage query int false "Page size" minimum(1) maximum(100)
// @Success 200 {object} OrderList
// @Failure 401 {object} errors.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var q ListOrdersQuery
	if err := bind(c, &q, errors.LocationQuery); err != nil {
		return err
	}

	page := q.page()
	filter := repository.OrderFilter{Status: model.OrderStatus(q.Status), Page: page}
	if filter.UserID, err = parseOptionalID(q.UserID, "userId", errors.LocationQuery); err != nil {
		return err
	}

	orders, total, err := h.svc.ListOrders(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OrderList{Data: orders, Totals: totals(total, page)})
}

// CreateOrder godoc
// @Summary Place an order; the caller's pending cart is emptied
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrderRequest true "Order"
// @Success 201 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req CreateOrderRequest
	if err := bind(c, &req, errors.LocationBody); err != nil {
		return err
	}
	if req.Total == nil {
		return errors.Validation("Validation Error", errors.FieldError{
			Field:    "total",
			Location: errors.LocationBody,
			Messages: []string{"is required"},
		})
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), actor, service.OrderInput{
		Cart:   req.Cart,
		Total:  *req.Total,
		Status: model.OrderStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// GetOrder godoc
// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 200 {object} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{orderId} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	order, err := h.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrder godoc
// @Summary Update order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Param request body UpdateOrderRequest true "Fields to change"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{orderId} [patch]
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	var req UpdateOrderRequest
	if err := bind(c, &req, errors.LocationBody); err != nil {
		return err
	}

	var in service.UpdateOrderInput
	if req.Status != nil {
		status := model.OrderStatus(*req.Status)
		in.Status = &status
	}

	order, err := h.svc.UpdateOrder(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder godoc
// @Summary Delete order
// @Tags orders
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{orderId} [delete]
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteOrder(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
