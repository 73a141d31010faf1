package persistence

import (
	"context"

	appordering "github.com/toystore/backend/internal/application/ordering"
	"github.com/toystore/backend/internal/domain/catalog"
	"github.com/toystore/backend/internal/domain/ordering"
	"github.com/toystore/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormCheckoutScope implements CheckoutScope using GORM transactions.
// It provides atomic execution of the cart-to-order conversion.
type GormCheckoutScope struct {
	db *gorm.DB
}

// NewGormCheckoutScope creates a new GormCheckoutScope
func NewGormCheckoutScope(db *gorm.DB) *GormCheckoutScope {
	return &GormCheckoutScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCheckoutScope) Execute(ctx context.Context, fn func(repos appordering.CheckoutRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormCheckoutRepositories{tx: tx}
		return fn(repos)
	})
}

// gormCheckoutRepositories provides access to the checkout repositories
// scoped to the current transaction.
type gormCheckoutRepositories struct {
	tx *gorm.DB
}

// CartRepo returns the cart repository scoped to the current transaction
func (r *gormCheckoutRepositories) CartRepo() shopping.CartItemRepository {
	return NewGormCartItemRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormCheckoutRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormCheckoutRepositories) OrderRepo() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Ensure GormCheckoutScope implements CheckoutScope
var _ appordering.CheckoutScope = (*GormCheckoutScope)(nil)

// Ensure gormCheckoutRepositories implements CheckoutRepositories
var _ appordering.CheckoutRepositories = (*gormCheckoutRepositories)(nil)
