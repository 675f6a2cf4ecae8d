package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
)

const (
	// DefaultPerPage is used when a list request does not ask for a page size.
	DefaultPerPage = 30
	// MaxPerPage caps the page size of list requests.
	MaxPerPage = 100
)

// Page selects a window of a list ordered by creation time, newest first.
type Page struct {
	Page    int
	PerPage int
}

// Normalize applies defaults and bounds.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	n := p.Normalize()
	return n.PerPage * (n.Page - 1)
}

func (p Page) scope(db *gorm.DB) *gorm.DB {
	n := p.Normalize()
	return db.Offset(n.Offset()).Limit(n.PerPage)
}

// Repositories bundles repositories sharing one database handle.
type Repositories struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository

	db *gorm.DB
}

// New builds every repository on top of db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Products: NewProductRepository(db),
		Carts:    NewCartRepository(db),
		Orders:   NewOrderRepository(db),
		db:       db,
	}
}

// Transactor runs a function against repositories bound to one database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *Repositories) error) error
}

// WithTransaction executes a function within a database transaction.
func (r *Repositories) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, New(tx))
	})
}

// IsDuplicateKey reports whether err is a uniqueness violation from any supported driver.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CheckDuplicate translates a uniqueness violation into a Conflict naming field.
// Any other error is returned unchanged.
func CheckDuplicate(err error, field string) error {
	if IsDuplicateKey(err) {
		return apperrors.Conflict(field, err)
	}
	return err
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
