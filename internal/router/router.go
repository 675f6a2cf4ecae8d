package router

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/logging"
)

// OwnerLookup returns the user owning the resource with the given id.
type OwnerLookup func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

// Handlers bundles everything the routes dispatch to.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler

	CartOwner  OwnerLookup
	OrderOwner OwnerLookup
}

// Register wires routes and middleware.
func Register(e *echo.Echo, log logging.Logger, gate *auth.Gate, h Handlers) {
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.Warn(c.Request().Context(), "request", append(args, "error", v.Error)...)
				return nil
			}
			log.Info(c.Request().Context(), "request", args...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh-token", h.Auth.RefreshToken)
	api.GET("/products", h.Product.ListProducts)

	// Secured routes (require a bearer access token)
	secured := api.Group("", gate.Authenticate())

	authed := gate.Require(auth.AnyAuthenticated())
	admin := gate.Require(auth.AdminOnly())
	self := gate.Require(auth.SelfOrAdmin(auth.ParamOwner("userId")))
	cartOwner := gate.Require(auth.SelfOrAdmin(auth.LoadedOwner("cartId", h.CartOwner)))
	orderOwner := gate.Require(auth.SelfOrAdmin(auth.LoadedOwner("orderId", h.OrderOwner)))

	// User routes
	secured.GET("/users/profile", h.User.Profile, authed)
	secured.GET("/users", h.User.ListUsers, admin)
	secured.GET("/users/:userId", h.User.GetUser, self)
	secured.PATCH("/users/:userId", h.User.UpdateUser, self)
	secured.DELETE("/users/:userId", h.User.DeleteUser, self)

	// Product routes
	secured.POST("/products", h.Product.CreateProduct, admin)
	secured.POST("/products/import", h.Product.ImportProducts, admin)
	secured.GET("/products/:productId", h.Product.GetProduct, authed)
	secured.PATCH("/products/:productId", h.Product.UpdateProduct, admin)
	secured.DELETE("/products/:productId", h.Product.DeleteProduct, admin)

	// Cart routes
	secured.GET("/carts", h.Cart.ListCart, authed)
	secured.POST("/carts", h.Cart.CreateCartEntry, authed)
	secured.GET("/carts/:cartId", h.Cart.GetCartEntry, cartOwner)
	secured.PATCH("/carts/:cartId", h.Cart.UpdateCartEntry, cartOwner)
	secured.DELETE("/carts/:cartId", h.Cart.DeleteCartEntry, cartOwner)

	// Order routes
	secured.GET("/orders", h.Order.ListOrders, authed)
	secured.POST("/orders", h.Order.CreateOrder, authed)
	secured.GET("/orders/:orderId", h.Order.GetOrder, orderOwner)
	secured.PATCH("/orders/:orderId", h.Order.UpdateOrder, orderOwner)
	secured.DELETE("/orders/:orderId", h.Order.DeleteOrder, orderOwner)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator reporting fields by their json or query name.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
