package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// CartLine is a product/quantity pair captured into an order.
// On the wire it is a two element array: ["<product id>", <quantity>].
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

func (l CartLine) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{l.ProductID, l.Quantity})
}

func (l *CartLine) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("cart line must be a [productId, quantity] pair: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("cart line must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &l.ProductID); err != nil {
		return fmt.Errorf("cart line product id: %w", err)
	}
	if err := json.Unmarshal(raw[1], &l.Quantity); err != nil {
		return fmt.Errorf("cart line quantity: %w", err)
	}
	return nil
}

// Order is a snapshot of a cart handed over for fulfillment.
type Order struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Cart      []CartLine      `json:"cart" gorm:"type:text;serializer:json"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(20,2);not null"`
	UserID    uuid.UUID       `json:"userId" gorm:"type:char(36);not null;index"`
	Status    OrderStatus     `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"-"`
}

// BeforeCreate sets UUID and the default status before creating the record.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}
