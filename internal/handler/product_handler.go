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

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	svc service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ListProductsQuery holds product list filters.
type ListProductsQuery struct {
	Name     string `query:"name" validate:"omitempty,max=128"`
	Category string `query:"category" validate:"omitempty,max=64"`
	PageQuery
}

// CreateProductRequest represents a new product.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,max=128"`
	Category string          `json:"category" validate:"omitempty,max=64"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Stock    int             `json:"stock" validate:"min=0"`
}

// UpdateProductRequest represents a partial product update.
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,max=128"`
	Category *string          `json:"category" validate:"omitempty,max=64"`
	Price    *decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Stock    *int             `json:"stock" validate:"omitempty,min=0"`
}

// ImportProductsRequest is a batch of products to create or update by name.
type ImportProductsRequest struct {
	Products []CreateProductRequest `json:"products" validate:"required,min=1,max=1000,dive"`
}

// ProductList is a page of products.
type ProductList struct {
	Data   []model.Product `json:"data"`
	Totals Totals          `json:"totals"`
}

func negativePrice() error {
	return errors.Validation("Validation Error", errors.FieldError{
		Field:    "price",
		Location: errors.LocationBody,
		Messages: []string{"must be at least 0"},
	})
}

func (r CreateProductRequest) input() service.ProductInput {
	return service.ProductInput{Name: r.Name, Category: r.Category, Price: r.Price, Stock: r.Stock}
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param name query string false "Name contains"
// @Param category query string false "Category contains"
// @Param page query int false "Page" minimum(1)
// @Param perPage query int false "Page size" minimum(1) maximum(100)
// @Success 200 {object} ProductList
// @Failure 400 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var q ListProductsQuery
	if err := bind(c, &q, errors.LocationQuery); err != nil {
		return err
	}

	page := q.page()
	products, total, err := h.svc.ListProducts(c.Request().Context(), repository.ProductFilter{
		Name:     q.Name,
		Category: q.Category,
		Page:     page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProductList{Data: products, Totals: totals(total, page)})
}

// GetProduct godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{productId} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	product, err := h.svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct godoc
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := bind(c, &req, errors.LocationBody); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return negativePrice()
	}

	product, err := h.svc.CreateProduct(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param request body UpdateProductRequest true "Fields to change"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /products/{productId} [patch]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	var req UpdateProductRequest
	if err := bind(c, &req, errors.LocationBody); err != nil {
		return err
	}
	if req.Price != nil && req.Price.IsNegative() {
		return negativePrice()
	}

	product, err := h.svc.UpdateProduct(c.Request().Context(), id, service.UpdateProductInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete product
// @Tags products
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{productId} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ImportProducts godoc
// @Summary Bulk create or update products by name
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ImportProductsRequest true "Products"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /products/import [post]
func (h *ProductHandler) ImportProducts(c echo.Context) error {
	var req ImportProductsRequest
	if err := bind(c, &req, errors.LocationBody); err != nil {
		return err
	}

	items := make([]service.ProductInput, 0, len(req.Products))
	for _, p := range req.Products {
		if p.Price.IsNegative() {
			return negativePrice()
		}
		items = append(items, p.input())
	}

	res, err := h.svc.ImportProducts(c.Request().Context(), items)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
