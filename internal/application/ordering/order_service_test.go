package ordering

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toystore/backend/internal/domain/catalog"
	"github.com/toystore/backend/internal/domain/ordering"
	"github.com/toystore/backend/internal/domain/shared"
	"github.com/toystore/backend/internal/domain/shared/valueobject"
	"github.com/toystore/backend/internal/domain/shopping"
	"go.uber.org/zap"
)

// In-memory repositories backing the checkout scope in tests.

type fakeCartRepo struct {
	items map[uuid.UUID]*shopping.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[uuid.UUID]*shopping.CartItem)}
}

func (r *fakeCartRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]shopping.CartItem, error) {
	var items []shopping.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (r *fakeCartRepo) FindByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*shopping.CartItem, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCartRepo) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*shopping.CartItem, error) {
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (r *fakeCartRepo) Save(_ context.Context, item *shopping.CartItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeCartRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	for _, p := range r.products {
		products = append(products, *p)
	}
	return products, nil
}

func (r *fakeProductRepo) FindFeatured(_ context.Context) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) FindLowStock(_ context.Context, _ int) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*ordering.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*ordering.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*ordering.Order, error) {
	order, ok := r.orders[id]
	if !ok || order.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	var orders []ordering.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	for _, order := range r.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *fakeOrderRepo) FindRecent(_ context.Context, _ int) ([]ordering.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *ordering.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) Count(_ context.Context, filter shared.Filter) (int64, error) {
	if status, ok := filter.Filters["status"].(string); ok {
		var count int64
		for _, order := range r.orders {
			if order.Status.String() == status {
				count++
			}
		}
		return count, nil
	}
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) SumTotalByStatus(_ context.Context, status ordering.OrderStatus) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, order := range r.orders {
		if order.Status == status {
			sum = sum.Add(order.TotalAmount)
		}
	}
	return sum, nil
}

func (r *fakeOrderRepo) CountPlacedSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, order := range r.orders {
		if !order.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type checkoutFixture struct {
	cartRepo    *fakeCartRepo
	productRepo *fakeProductRepo
	orderRepo   *fakeOrderRepo
	service     *OrderService
}

func newCheckoutFixture() *checkoutFixture {
	cartRepo := newFakeCartRepo()
	productRepo := newFakeProductRepo()
	orderRepo := newFakeOrderRepo()
	scope := NewNoOpCheckoutScope(cartRepo, productRepo, orderRepo)
	return &checkoutFixture{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		service:     NewOrderService(orderRepo, scope, nil, zap.NewNop()),
	}
}

func (f *checkoutFixture) addProduct(t *testing.T, name string, price float64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, valueobject.NewMoneyUSDFromFloat(price))
	require.NoError(t, err)
	require.NoError(t, product.SetStockQuantity(stock))
	product.ClearDomainEvents()
	require.NoError(t, f.productRepo.Save(context.Background(), product))
	return product
}

func (f *checkoutFixture) addCartLine(t *testing.T, userID, productID uuid.UUID, quantity int) {
	t.Helper()
	item, err := shopping.NewCartItem(userID, productID, quantity)
	require.NoError(t, err)
	require.NoError(t, f.cartRepo.Save(context.Background(), item))
}

func TestOrderService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one order with a line per cart item", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()

		train := f.addProduct(t, "Wooden Train Set", 10.00, 20)
		bear := f.addProduct(t, "Teddy Bear", 5.00, 20)
		f.addCartLine(t, userID, train.ID, 2)
		f.addCartLine(t, userID, bear.ID, 1)

		resp, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			ShippingAddress: "1 Toy Lane",
		})

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "cash_on_delivery", resp.PaymentMethod)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "25.00", resp.TotalAmount.StringFixed(2))
		assert.Len(t, f.orderRepo.orders, 1)
	})

	t.Run("snapshots unit prices into order items", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()

		train := f.addProduct(t, "Wooden Train Set", 10.00, 20)
		f.addCartLine(t, userID, train.ID, 2)

		resp, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{ShippingAddress: "1 Toy Lane"})
		require.NoError(t, err)

		// A later catalog price change must not touch the order
		require.NoError(t, train.SetPrice(valueobject.NewMoneyUSDFromFloat(99.99)))
		require.NoError(t, f.productRepo.Save(ctx, train))

		stored, err := f.orderRepo.FindByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, "10.00", stored.Items[0].Price.StringFixed(2))
		assert.Equal(t, "20.00", stored.TotalAmount.StringFixed(2))
	})

	t.Run("decrements stock by ordered quantities", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()

		train := f.addProduct(t, "Wooden Train Set", 10.00, 20)
		f.addCartLine(t, userID, train.ID, 3)

		_, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{ShippingAddress: "1 Toy Lane"})
		require.NoError(t, err)

		stored, err := f.productRepo.FindByID(ctx, train.ID)
		require.NoError(t, err)
		assert.Equal(t, 17, stored.StockQuantity)
	})

	t.Run("accepts orders beyond available stock", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()

		kite := f.addProduct(t, "Kite", 5.00, 2)
		f.addCartLine(t, userID, kite.ID, 10)

		resp, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{ShippingAddress: "1 Toy Lane"})
		require.NoError(t, err)
		assert.Equal(t, "50.00", resp.TotalAmount.StringFixed(2))

		stored, err := f.productRepo.FindByID(ctx, kite.ID)
		require.NoError(t, err)
		assert.Equal(t, -8, stored.StockQuantity)
	})

	t.Run("clears the cart", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()

		train := f.addProduct(t, "Wooden Train Set", 10.00, 20)
		f.addCartLine(t, userID, train.ID, 1)

		_, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{ShippingAddress: "1 Toy Lane"})
		require.NoError(t, err)

		remaining, err := f.cartRepo.FindByUser(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		f := newCheckoutFixture()

		_, err := f.service.PlaceOrder(ctx, uuid.New(), PlaceOrderRequest{ShippingAddress: "1 Toy Lane"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_CART", domainErr.Code)
		assert.Empty(t, f.orderRepo.orders)
	})

	t.Run("does not clear another user's cart", func(t *testing.T) {
		f := newCheckoutFixture()
		buyer := uuid.New()
		bystander := uuid.New()

		train := f.addProduct(t, "Wooden Train Set", 10.00, 20)
		f.addCartLine(t, buyer, train.ID, 1)
		f.addCartLine(t, bystander, train.ID, 2)

		_, err := f.service.PlaceOrder(ctx, buyer, PlaceOrderRequest{ShippingAddress: "1 Toy Lane"})
		require.NoError(t, err)

		remaining, err := f.cartRepo.FindByUser(ctx, bystander)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the order to a known status", func(t *testing.T) {
		f := newCheckoutFixture()
		order := ordering.NewOrder(uuid.New(), "1 Toy Lane", "")
		require.NoError(t, order.AddItem(uuid.New(), 1, valueobject.NewMoneyUSDFromFloat(9.99)))
		require.NoError(t, f.orderRepo.Save(ctx, order))

		resp, err := f.service.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "shipped"})

		require.NoError(t, err)
		assert.Equal(t, "shipped", resp.Status)
	})

	t.Run("rejects an unknown status and keeps the stored one", func(t *testing.T) {
		f := newCheckoutFixture()
		order := ordering.NewOrder(uuid.New(), "1 Toy Lane", "")
		require.NoError(t, f.orderRepo.Save(ctx, order))

		_, err := f.service.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "teleported"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)

		stored, err := f.orderRepo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusPending, stored.Status)
	})

	t.Run("cancellation leaves stock untouched", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()

		train := f.addProduct(t, "Wooden Train Set", 10.00, 20)
		f.addCartLine(t, userID, train.ID, 5)

		resp, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{ShippingAddress: "1 Toy Lane"})
		require.NoError(t, err)

		_, err = f.service.UpdateStatus(ctx, resp.ID, UpdateStatusRequest{Status: "cancelled"})
		require.NoError(t, err)

		stored, err := f.productRepo.FindByID(ctx, train.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, stored.StockQuantity)
	})
}

func TestOrderService_GetByIDForUser(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture()
	owner := uuid.New()

	order := ordering.NewOrder(owner, "1 Toy Lane", "")
	require.NoError(t, order.AddItem(uuid.New(), 1, valueobject.NewMoneyUSDFromFloat(9.99)))
	require.NoError(t, f.orderRepo.Save(ctx, order))

	resp, err := f.service.GetByIDForUser(ctx, order.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, order.ID, resp.ID)

	_, err = f.service.GetByIDForUser(ctx, order.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderService_Stats(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture()

	pending := ordering.NewOrder(uuid.New(), "1 Toy Lane", "")
	require.NoError(t, pending.AddItem(uuid.New(), 1, valueobject.NewMoneyUSDFromFloat(10.00)))
	require.NoError(t, f.orderRepo.Save(ctx, pending))

	cancelled := ordering.NewOrder(uuid.New(), "2 Toy Lane", "")
	require.NoError(t, cancelled.AddItem(uuid.New(), 1, valueobject.NewMoneyUSDFromFloat(99.00)))
	require.NoError(t, cancelled.UpdateStatus(ordering.OrderStatusCancelled))
	require.NoError(t, f.orderRepo.Save(ctx, cancelled))

	stats, err := f.service.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.ByStatus["pending"])
	assert.Equal(t, int64(1), stats.ByStatus["cancelled"])
	assert.Equal(t, "10.00", stats.TotalRevenue.StringFixed(2))
}
