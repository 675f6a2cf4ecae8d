package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/model"
)

// CartFilter narrows a cart listing. Nil pointers leave a column unfiltered.
type CartFilter struct {
	UserID    *uuid.UUID
	ProductID *uuid.UUID
	Status    model.CartStatus
	Amount    *int
	Page
}

// CartRepository defines cart entry persistence operations.
type CartRepository interface {
	Create(ctx context.Context, entry *model.CartEntry) error
	Update(ctx context.Context, entry *model.CartEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CartEntry, error)
	// ListAll returns every entry matching filter, newest first, ignoring the page.
	ListAll(ctx context.Context, filter CartFilter) ([]model.CartEntry, error)
	// DeletePendingByUser removes every pending entry owned by userID.
	DeletePendingByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Create creates a new cart entry.
func (r *cartRepository) Create(ctx context.Context, entry *model.CartEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Update updates an existing cart entry.
func (r *cartRepository) Update(ctx context.Context, entry *model.CartEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes a cart entry by ID.
func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.CartEntry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a cart entry by ID.
func (r *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CartEntry, error) {
	var entry model.CartEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *cartRepository) ListAll(ctx context.Context, filter CartFilter) ([]model.CartEntry, error) {
	q := r.db.WithContext(ctx).Model(&model.CartEntry{})
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Amount != nil {
		q = q.Where("amount = ?", *filter.Amount)
	}

	var entries []model.CartEntry
	if err := q.Order("created_at DESC").Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *cartRepository) DeletePendingByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.CartStatusPending).
		Delete(&model.CartEntry{})
	return res.RowsAffected, res.Error
}
