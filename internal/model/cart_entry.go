package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartStatus represents the status of a cart entry.
type CartStatus string

const (
	CartStatusPending CartStatus = "pending"
	CartStatusOrdered CartStatus = "ordered"
)

// MaxCartAmount bounds the quantity of a single cart entry.
const MaxCartAmount = 10

// Valid reports whether s is a known cart status.
func (s CartStatus) Valid() bool {
	return s == CartStatusPending || s == CartStatusOrdered
}

// CartEntry is one product line in a user's shopping cart.
// A user holds at most one entry per product.
type CartEntry struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	ProductID uuid.UUID  `json:"productId" gorm:"type:char(36);not null;uniqueIndex:idx_cart_user_product,priority:2"`
	Amount    int        `json:"amount" gorm:"not null;default:0"`
	UserID    uuid.UUID  `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_cart_user_product,priority:1"`
	Status    CartStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"-"`
}

// BeforeCreate sets UUID and the default status before creating the record.
func (c *CartEntry) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CartStatusPending
	}
	return nil
}
