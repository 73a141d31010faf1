package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/toystore/backend/internal/domain/ordering"
	"github.com/toystore/backend/internal/domain/shared"
	"github.com/toystore/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// OrderService handles order placement and management
type OrderService struct {
	orderRepo ordering.OrderRepository
	checkout  CheckoutScope
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	checkout CheckoutScope,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		checkout:  checkout,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder converts the user's cart into an order. In a single
// transaction it prices every line from the current catalog, snapshots
// the unit prices into order items, decrements product stock and
// empties the cart. Stock is decremented without a floor check; short
// stock is back-ordered rather than rejected.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	var order *ordering.Order

	err := s.checkout.Execute(ctx, func(repos CheckoutRepositories) error {
		items, err := repos.CartRepo().FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return shared.ErrEmptyCart
		}

		order = ordering.NewOrder(userID, req.ShippingAddress, req.PaymentMethod)

		for i := range items {
			product, err := repos.ProductRepo().FindByID(ctx, items[i].ProductID)
			if err != nil {
				return err
			}

			if err := order.AddItem(product.ID, items[i].Quantity, product.GetPriceMoney()); err != nil {
				return err
			}

			if err := product.DecrementStock(items[i].Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
		}

		if err := order.Place(); err != nil {
			return err
		}

		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		return repos.CartRepo().DeleteByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, order.GetDomainEvents()...); err != nil {
			s.logger.Warn("failed to publish order events", zap.Error(err))
		}
		order.ClearDomainEvents()
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("items", order.ItemCount()))

	response := ToOrderResponse(order)
	return &response, nil
}

// ListByUser returns the user's orders, newest first
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToOrderResponses(orders), nil
}

// GetByIDForUser returns one order scoped to its owner
func (s *OrderService) GetByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID returns one order without ownership scoping (admin)
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination (admin)
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.UserID != "" {
		userID, err := uuid.Parse(filter.UserID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid user_id")
		}
		domainFilter.Filters["user_id"] = userID
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// UpdateStatus moves an order to a new status. Unknown statuses are
// rejected and the stored status stays untouched. Cancelling an order
// does not restock its items.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateStatus(ordering.OrderStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, order.GetDomainEvents()...); err != nil {
			s.logger.Warn("failed to publish order events", zap.Error(err))
		}
		order.ClearDomainEvents()
	}

	s.logger.Info("order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", order.Status.String()))

	response := ToOrderResponse(order)
	return &response, nil
}

// Stats summarizes orders for the admin dashboard
func (s *OrderService) Stats(ctx context.Context) (*OrderStatsResponse, error) {
	emptyFilter := shared.Filter{Filters: make(map[string]interface{})}

	total, err := s.orderRepo.Count(ctx, emptyFilter)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64)
	for _, status := range []ordering.OrderStatus{
		ordering.OrderStatusPending,
		ordering.OrderStatusProcessing,
		ordering.OrderStatusShipped,
		ordering.OrderStatusDelivered,
		ordering.OrderStatusCancelled,
	} {
		count, err := s.orderRepo.Count(ctx, shared.Filter{
			Filters: map[string]interface{}{"status": status.String()},
		})
		if err != nil {
			return nil, err
		}
		byStatus[status.String()] = count
	}

	revenue := valueobject.ZeroUSD().Amount()
	for _, status := range []ordering.OrderStatus{
		ordering.OrderStatusPending,
		ordering.OrderStatusProcessing,
		ordering.OrderStatusShipped,
		ordering.OrderStatusDelivered,
	} {
		sum, err := s.orderRepo.SumTotalByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		revenue = revenue.Add(sum)
	}

	recent, err := s.orderRepo.CountPlacedSince(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	return &OrderStatsResponse{
		TotalOrders:  total,
		ByStatus:     byStatus,
		TotalRevenue: revenue,
		RecentOrders: recent,
	}, nil
}
