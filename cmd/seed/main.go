package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// SeedData is the layout of the SEED_FILE document.
type SeedData struct {
	Admin struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"admin"`
	Products []struct {
		Name     string          `json:"name"`
		Category string          `json:"category"`
		Price    decimal.Decimal `json:"price"`
		Stock    int             `json:"stock"`
	} `json:"products"`
}

func main() {
	cfg := config.Load()
	file := flag.String("file", cfg.SeedFile, "path to the seed JSON document")
	flag.Parse()

	log := logging.New(os.Stdout, cfg.LogLevel, false)
	ctx := context.Background()

	if err := run(ctx, cfg, *file, log); err != nil {
		log.Error(ctx, "seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, file string, log logging.Logger) error {
	if file == "" {
		return fmt.Errorf("no seed file: pass -file or set SEED_FILE")
	}
	data, err := loadSeed(file)
	if err != nil {
		return err
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := db.Migrate(gormDB, false); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info(ctx, "database ready", "driver", cfg.DBDriver)

	repos := repository.New(gormDB)

	if data.Admin.Email != "" {
		if err := seedAdmin(ctx, repos.Users, auth.NewCredentialStore(cfg.BcryptCost), data); err != nil {
			return err
		}
		log.Info(ctx, "admin ready", "email", model.NormalizeEmail(data.Admin.Email))
	}

	// The seeder runs without redis; product cache entries expire on their own.
	products := service.NewProductService(repos.Products, (*cache.Client)(nil), log)
	items := make([]service.ProductInput, 0, len(data.Products))
	for _, p := range data.Products {
		items = append(items, service.ProductInput{Name: p.Name, Category: p.Category, Price: p.Price, Stock: p.Stock})
	}
	res, err := products.ImportProducts(ctx, items)
	if err != nil {
		return fmt.Errorf("import products: %w", err)
	}

	log.Info(ctx, "seed completed", "products_created", res.Created, "products_updated", res.Updated)
	return nil
}

func loadSeed(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &data, nil
}

// seedAdmin creates the admin account, or promotes and re-keys an existing one.
func seedAdmin(ctx context.Context, users repository.UserRepository, creds *auth.CredentialStore, data *SeedData) error {
	hash, err := creds.Hash(data.Admin.Password)
	if err != nil {
		return err
	}

	existing, err := users.FindByEmail(ctx, data.Admin.Email)
	if err != nil && !repository.IsNotFound(err) {
		return fmt.Errorf("look up admin: %w", err)
	}
	if existing != nil {
		existing.Role = model.RoleAdmin
		existing.PasswordHash = hash
		if data.Admin.Name != "" {
			existing.Name = data.Admin.Name
		}
		return users.Update(ctx, existing)
	}

	return users.Create(ctx, &model.User{
		Name:         data.Admin.Name,
		Email:        data.Admin.Email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
}
