package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/docs"
	"storefront/internal/app"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logging"
)

// @title Storefront API
// @version 1.0
// @description Commerce backend with products, carts, orders and JWT authentication.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Error(ctx, "database init", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	if cfg.ResetDB {
		log.Warn(ctx, "RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Error(ctx, "auto-migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		// Product reads fall through to the database; logins and refreshes fail until redis is back.
		log.Warn(ctx, "redis unavailable", "addr", cfg.RedisAddr, "error", err)
	}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	a := app.New(cfg, gormDB, cacheClient, log)

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info(ctx, "server listening", "addr", addr, "env", cfg.Env,
			"swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info(shutdownCtx, "server stopped")
}
