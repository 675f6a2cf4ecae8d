// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/db"
	"storefront/internal/model"
)

// NewDB returns a migrated in-memory SQLite database.
// A single connection keeps every query on the same in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.NewSQLite(":memory:", true)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb, false); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

// CreateUser inserts a user with the given role.
func CreateUser(t *testing.T, gdb *gorm.DB, email string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{Email: email, Name: email, PasswordHash: "not-a-real-hash", Role: role}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

// CreateProduct inserts a product with the given price.
func CreateProduct(t *testing.T, gdb *gorm.DB, name string, price int64) *model.Product {
	t.Helper()
	p := &model.Product{Name: name, Category: "test", Price: decimal.NewFromInt(price), Stock: 10}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return p
}

// CreateCartEntry inserts a pending cart entry.
func CreateCartEntry(t *testing.T, gdb *gorm.DB, user *model.User, product *model.Product, amount int) *model.CartEntry {
	t.Helper()
	e := &model.CartEntry{UserID: user.ID, ProductID: product.ID, Amount: amount}
	if err := gdb.Create(e).Error; err != nil {
		t.Fatalf("failed to create cart entry: %v", err)
	}
	return e
}
