// Package app assembles the HTTP service from its explicit dependencies.
package app

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/logging"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
)

// App is the wired service.
type App struct {
	Echo *echo.Echo

	Repos    *repository.Repositories
	Auth     service.AuthService
	Users    service.UserService
	Products service.ProductService
	Carts    service.CartService
	Orders   service.OrderService
}

// New builds repositories, auth, services, handlers and routes on top of gdb and cacheClient.
func New(cfg *config.Config, gdb *gorm.DB, cacheClient *cache.Client, log logging.Logger) *App {
	repos := repository.New(gdb)

	credentials := auth.NewCredentialStore(cfg.BcryptCost)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, nil)
	tokenStore := auth.NewTokenStore(cacheClient, nil)

	users := service.NewUserService(repos.Users, credentials)
	authService := service.NewAuthService(repos.Users, credentials, jwtService, tokenStore, cfg.RefreshTokenTTL, nil, log)
	products := service.NewProductService(repos.Products, cacheClient, log)
	carts := service.NewCartService(repos.Carts, service.NewStorePrices(repos.Products))
	orders := service.NewOrderService(repos.Orders, repos.Carts, repos, cfg.AtomicCheckout, log)

	gate := auth.NewGate(jwtService, repos.Users, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, log, gate, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(users),
		Product:    handler.NewProductHandler(products),
		Cart:       handler.NewCartHandler(carts),
		Order:      handler.NewOrderHandler(orders),
		CartOwner:  carts.OwnerOf,
		OrderOwner: orders.OwnerOf,
	})

	return &App{
		Echo:     e,
		Repos:    repos,
		Auth:     authService,
		Users:    users,
		Products: products,
		Carts:    carts,
		Orders:   orders,
	}
}
