package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toystore/backend/internal/domain/identity"
	"github.com/toystore/backend/internal/domain/ordering"
	"gorm.io/gorm"
)

func seedAnalyticsData(t *testing.T, db *gorm.DB) (userID uuid.UUID, productID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	product := mustProduct(t, "Toy Robot", "30.00", 3)
	product.SetAttributes("robots", "6-8", "", "")
	require.NoError(t, NewGormProductRepository(db).Save(ctx, product))

	bear := mustProduct(t, "Teddy Bear", "10.00", 50)
	bear.SetAttributes("plush", "0-2", "", "")
	require.NoError(t, NewGormProductRepository(db).Save(ctx, bear))

	user, err := identity.NewUser("alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(ctx, user))

	orderRepo := NewGormOrderRepository(db)

	order := ordering.NewOrder(user.ID, "12 Toy Lane", "")
	require.NoError(t, order.AddItem(product.ID, 2, product.GetPriceMoney()))
	require.NoError(t, order.Place())
	require.NoError(t, orderRepo.Save(ctx, order))

	cancelled := ordering.NewOrder(user.ID, "12 Toy Lane", "")
	require.NoError(t, cancelled.AddItem(bear.ID, 1, bear.GetPriceMoney()))
	require.NoError(t, cancelled.Place())
	require.NoError(t, cancelled.UpdateStatus(ordering.OrderStatusCancelled))
	require.NoError(t, orderRepo.Save(ctx, cancelled))

	return user.ID, product.ID
}

func TestGormAnalyticsRepository_DashboardStats(t *testing.T) {
	db := newTestDB(t)
	seedAnalyticsData(t, db)
	repo := NewGormAnalyticsRepository(db)

	stats, err := repo.DashboardStats(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("60")), "got %s", stats.TotalRevenue)
}

func TestGormAnalyticsRepository_RevenueByStatus(t *testing.T) {
	db := newTestDB(t)
	seedAnalyticsData(t, db)
	repo := NewGormAnalyticsRepository(db)

	byStatus, err := repo.RevenueByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, byStatus, 2)

	totals := make(map[ordering.OrderStatus]decimal.Decimal)
	for _, row := range byStatus {
		totals[row.Status] = row.Revenue
	}
	assert.True(t, totals[ordering.OrderStatusPending].Equal(decimal.RequireFromString("60")))
	assert.True(t, totals[ordering.OrderStatusCancelled].Equal(decimal.RequireFromString("10")))
}

func TestGormAnalyticsRepository_ProductsByCategory(t *testing.T) {
	db := newTestDB(t)
	seedAnalyticsData(t, db)
	repo := NewGormAnalyticsRepository(db)

	counts, err := repo.ProductsByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	for _, row := range counts {
		assert.Equal(t, int64(1), row.Count)
	}
}

func TestGormAnalyticsRepository_BestSellers(t *testing.T) {
	db := newTestDB(t)
	_, productID := seedAnalyticsData(t, db)
	repo := NewGormAnalyticsRepository(db)

	sellers, err := repo.BestSellers(context.Background(), 10)
	require.NoError(t, err)

	// The cancelled order's bear must not count
	require.Len(t, sellers, 1)
	assert.Equal(t, productID.String(), sellers[0].ProductID)
	assert.Equal(t, int64(2), sellers[0].UnitsSold)
	assert.True(t, sellers[0].Revenue.Equal(decimal.RequireFromString("60")))
}

func TestGormAnalyticsRepository_TotalSpentByUser(t *testing.T) {
	db := newTestDB(t)
	userID, _ := seedAnalyticsData(t, db)
	repo := NewGormAnalyticsRepository(db)

	total, err := repo.TotalSpentByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("60")), "got %s", total)

	total, err = repo.TotalSpentByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
