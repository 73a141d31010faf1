package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartItemRepository defines the interface for cart persistence
type CartItemRepository interface {
	// FindByUser finds all cart items belonging to the user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)

	// FindByUserAndProduct finds the user's cart item for a product
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*CartItem, error)

	// FindByIDForUser finds a cart item by ID scoped to the user
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*CartItem, error)

	// Save creates or updates a cart item
	Save(ctx context.Context, item *CartItem) error

	// Delete removes a cart item by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes all cart items belonging to the user
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
