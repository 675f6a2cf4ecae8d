package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// CartHandler handles shopping cart endpoints.
type CartHandler struct {
	svc service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(svc service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

// ListCartQuery holds cart list filters. userId is ignored for non-admins.
type ListCartQuery struct {
	UserID    string `query:"userId" validate:"omitempty,uuid"`
	ProductID string `query:"productId" validate:"omitempty,uuid"`
	Status    string `query:"status" validate:"omitempty,oneof=pending ordered"`
	Amount    string `query:"amount" validate:"omitempty,number"`
	PageQuery
}

// CreateCartRequest represents a new cart entry.
type CreateCartRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Amount    int    `json:"amount" validate:"min=0,max=10"`
	UserID    string `json:"userId" validate:"omitempty,uuid"`
}

// UpdateCartRequest represents a partial cart entry update.
type UpdateCartRequest struct {
	Amount *int    `json:"amount" validate:"omitempty,min=0,max=10"`
	Status *string `json:"status" validate:"omitempty,oneof=pending ordered"`
}

// CartList is a page of cart items with the amount due for every matching entry.
type CartList struct {
	Data       []service.CartItem `json:"data"`
	Totals     Totals             `json:"totals"`
	TotalToPay decimal.Decimal    `json:"totalToPay" swaggertype:"string"`
}

// ListCart godoc
// @Summary List cart entries with the total to pay
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Owner (admins only)"
// @Param productId query string false "Product"
// @Param status query string false "Status" Enums(pending, ordered)
// @Param amount query int false "Amount"
// @Param page query int false "Page" minimum(1)
// @Param perPage query int false "Page size" minimum(1) maximum(100)
// @Success 200 {object} CartList
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /carts [get]
func (h *CartHandler) ListCart(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var q ListCartQuery
	if err := bind(c, &q, errors.LocationQuery); err != nil {
		return err
	}

	filter := repository.CartFilter{
		Status: model.CartStatus(q.Status),
		Page:   q.page(),
	}
	if q.Amount != "" {
		amount, err := strconv.Atoi(q.Amount)
		if err != nil {
			return errors.Validation("Validation Error", errors.FieldError{
				Field:    "amount",
				Location: errors.LocationQuery,
				Messages: []string{"must be a whole number"},
			})
		}
		filter.Amount = &amount
	}
	if filter.UserID, err = parseOptionalID(q.UserID, "userId", errors.LocationQuery); err != nil {
		return err
	}
	if filter.ProductID, err = parseOptionalID(q.ProductID, "productId", errors.LocationQuery); err != nil {
		return err
	}

	listing, err := h.svc.ListCart(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CartList{
		Data:       listing.Items,
		Totals:     totals(listing.TotalCount, listing.Page),
		TotalToPay: listing.TotalToPay,
	})
}

// CreateCartEntry godoc
// @Summary Add a product to a cart
// @Tags carts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCartRequest true "Cart entry"
// @Success 201 {object} model.CartEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /carts [post]
func (h *CartHandler) CreateCartEntry(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req CreateCartRequest
	if err := bind(c, &req, errors.LocationBody); err != nil {
		return err
	}

	// productId passed the uuid validator
	productID := uuid.MustParse(req.ProductID)
	userID, err := parseOptionalID(req.UserID, "userId", errors.LocationBody)
	if err != nil {
		return err
	}

	entry, err := h.svc.AddToCart(c.Request().Context(), actor, service.CartInput{
		ProductID: productID,
		Amount:    req.Amount,
		UserID:    userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// GetCartEntry godoc
// @Summary Get cart entry
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param cartId path string true "Cart entry ID"
// @Success 200 {object} model.CartEntry
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /carts/{cartId} [get]
func (h *CartHandler) GetCartEntry(c echo.Context) error {
	id, err := pathID(c, "cartId")
	if err != nil {
		return err
	}
	entry, err := h.svc.GetEntry(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// UpdateCartEntry godoc
// @Summary Update cart entry
// @Tags carts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cartId path string true "Cart entry ID"
// @Param request body UpdateCartRequest true "Fields to change"
// @Success 200 {object} model.CartEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /carts/{cartId} [patch]
func (h *CartHandler) UpdateCartEntry(c echo.Context) error {
	id, err := pathID(c, "cartId")
	if err != nil {
		return err
	}
	var req UpdateCartRequest
	if err := bind(c, &req, errors.LocationBody); err != nil {
		return err
	}

	in := service.UpdateCartInput{Amount: req.Amount}
	if req.Status != nil {
		status := model.CartStatus(*req.Status)
		in.Status = &status
	}

	entry, err := h.svc.UpdateEntry(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// DeleteCartEntry godoc
// @Summary Delete cart entry
// @Tags carts
// @Security BearerAuth
// @Param cartId path string true "Cart entry ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /carts/{cartId} [delete]
func (h *CartHandler) DeleteCartEntry(c echo.Context) error {
	id, err := pathID(c, "cartId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteEntry(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
