package catalog

import (
	"context"
	"fmt"

	"github.com/toystore/backend/internal/domain/catalog"
	"github.com/toystore/backend/internal/domain/ordering"
	"github.com/toystore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockAlertHandler reacts to placed orders by scanning the catalog
// for products that have dropped below the restock threshold and
// logging a warning for each one. Orders may drive stock negative, so
// this is the signal operators watch for back-ordered items.
type LowStockAlertHandler struct {
	productRepo catalog.ProductRepository
	threshold   int
	logger      *zap.Logger
}

// NewLowStockAlertHandler creates a new handler for order placed events.
func NewLowStockAlertHandler(
	productRepo catalog.ProductRepository,
	threshold int,
	logger *zap.Logger,
) *LowStockAlertHandler {
	return &LowStockAlertHandler{
		productRepo: productRepo,
		threshold:   threshold,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockAlertHandler) EventTypes() []string {
	return []string{ordering.EventTypeOrderPlaced}
}

// Handle checks stock levels after an order has been placed
func (h *LowStockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*ordering.OrderPlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			ordering.EventTypeOrderPlaced, event.EventType())
	}

	products, err := h.productRepo.FindLowStock(ctx, h.threshold)
	if err != nil {
		return fmt.Errorf("low stock scan failed: %w", err)
	}

	if len(products) == 0 {
		return nil
	}

	for _, p := range products {
		h.logger.Warn("product stock below restock threshold",
			zap.String("product_id", p.ID.String()),
			zap.String("product_name", p.Name),
			zap.Int("stock_quantity", p.StockQuantity),
			zap.Int("threshold", h.threshold),
			zap.String("order_id", placed.OrderID.String()),
		)
	}

	return nil
}
