package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/toystore/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence.
// FindAll and Count support the filter keys "category", "age_range" and
// "is_featured"; Search matches name, description and brand.
type ProductRepository interface {
	shared.Repository[Product]

	// FindFeatured finds all featured products
	FindFeatured(ctx context.Context) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindLowStock finds products whose stock is below the threshold
	FindLowStock(ctx context.Context, threshold int) ([]Product, error)
}
