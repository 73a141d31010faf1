package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/toystore/backend/internal/domain/ordering"
)

// DashboardStats summarizes the store for the admin dashboard
type DashboardStats struct {
	TotalProducts int64           `json:"total_products"`
	TotalUsers    int64           `json:"total_users"`
	TotalOrders   int64           `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	PendingOrders int64           `json:"pending_orders"`
	LowStockCount int64           `json:"low_stock_count"`
}

// DailySales is one day's order count and revenue
type DailySales struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// StatusRevenue is the order count and revenue for one status
type StatusRevenue struct {
	Status  ordering.OrderStatus `json:"status"`
	Orders  int64                `json:"orders"`
	Revenue decimal.Decimal      `json:"revenue"`
}

// MonthlyRevenue is one month's revenue
type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// CategoryCount is the number of products in one category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// BestSeller is a product ranked by units sold
type BestSeller struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitsSold int64           `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// AnalyticsRepository runs aggregate read queries across the store
type AnalyticsRepository interface {
	// DashboardStats computes the dashboard summary.
	// Low stock means a stock quantity below the threshold.
	DashboardStats(ctx context.Context, lowStockThreshold int) (*DashboardStats, error)

	// SalesByDay computes per-day order counts and revenue since the
	// given time, oldest day first
	SalesByDay(ctx context.Context, since time.Time) ([]DailySales, error)

	// RevenueByStatus computes order counts and revenue per status
	RevenueByStatus(ctx context.Context) ([]StatusRevenue, error)

	// RevenueByMonth computes per-month revenue since the given time,
	// oldest month first
	RevenueByMonth(ctx context.Context, since time.Time) ([]MonthlyRevenue, error)

	// ProductsByCategory counts catalog products per category
	ProductsByCategory(ctx context.Context) ([]CategoryCount, error)

	// BestSellers ranks products by units sold, descending
	BestSellers(ctx context.Context, limit int) ([]BestSeller, error)

	// TopSellersSince ranks products by units sold on orders created
	// at or after the given time
	TopSellersSince(ctx context.Context, since time.Time, limit int) ([]BestSeller, error)

	// TotalSpentByUser sums the user's order totals
	TotalSpentByUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}
