package ordering

import (
	"context"

	"github.com/toystore/backend/internal/domain/catalog"
	"github.com/toystore/backend/internal/domain/ordering"
	"github.com/toystore/backend/internal/domain/shopping"
)

// CheckoutScope provides transactional access to the repositories that
// checkout touches. When a function runs within the scope, every
// repository operation joins the same database transaction and commits
// or rolls back as one unit.
type CheckoutScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos CheckoutRepositories) error) error
}

// CheckoutRepositories provides access to the cart, catalog and order
// repositories scoped to the current transaction.
type CheckoutRepositories interface {
	// CartRepo returns the cart repository scoped to the current transaction
	CartRepo() shopping.CartItemRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() ordering.OrderRepository
}

// NoOpCheckoutScope runs checkout without a real transaction.
// Useful for tests or when transaction support is not required.
type NoOpCheckoutScope struct {
	cartRepo    shopping.CartItemRepository
	productRepo catalog.ProductRepository
	orderRepo   ordering.OrderRepository
}

// NewNoOpCheckoutScope creates a NoOpCheckoutScope with the given repositories
func NewNoOpCheckoutScope(
	cartRepo shopping.CartItemRepository,
	productRepo catalog.ProductRepository,
	orderRepo ordering.OrderRepository,
) *NoOpCheckoutScope {
	return &NoOpCheckoutScope{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpCheckoutScope) Execute(_ context.Context, fn func(repos CheckoutRepositories) error) error {
	return fn(s)
}

// CartRepo returns the cart repository
func (s *NoOpCheckoutScope) CartRepo() shopping.CartItemRepository {
	return s.cartRepo
}

// ProductRepo returns the product repository
func (s *NoOpCheckoutScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// OrderRepo returns the order repository
func (s *NoOpCheckoutScope) OrderRepo() ordering.OrderRepository {
	return s.orderRepo
}

var _ CheckoutScope = (*NoOpCheckoutScope)(nil)
var _ CheckoutRepositories = (*NoOpCheckoutScope)(nil)
