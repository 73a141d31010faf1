package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/toystore/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence. Reads
// return orders with their items loaded. FindAll and Count support the
// filter keys "status" and "user_id".
type OrderRepository interface {
	shared.Repository[Order]

	// FindByIDForUser finds an order with its items scoped to the user
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Order, error)

	// FindByUser finds all orders belonging to the user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindRecent finds the most recently placed orders
	FindRecent(ctx context.Context, limit int) ([]Order, error)

	// SumTotalByStatus sums order totals for the given status
	SumTotalByStatus(ctx context.Context, status OrderStatus) (decimal.Decimal, error)

	// CountPlacedSince counts orders created at or after the given time
	CountPlacedSince(ctx context.Context, since time.Time) (int64, error)
}
