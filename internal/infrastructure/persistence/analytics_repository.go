package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/toystore/backend/internal/domain/catalog"
	"github.com/toystore/backend/internal/domain/identity"
	"github.com/toystore/backend/internal/domain/ordering"
	"github.com/toystore/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormAnalyticsRepository implements AnalyticsRepository using GORM
// aggregate queries over the store tables.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GormAnalyticsRepository
func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// DashboardStats computes the dashboard summary
func (r *GormAnalyticsRepository) DashboardStats(ctx context.Context, lowStockThreshold int) (*report.DashboardStats, error) {
	stats := &report.DashboardStats{TotalRevenue: decimal.Zero}
	db := r.db.WithContext(ctx)

	if err := db.Model(&catalog.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&identity.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&ordering.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&ordering.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status <> ?", ordering.OrderStatusCancelled).
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&ordering.Order{}).
		Where("status = ?", ordering.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&catalog.Product{}).
		Where("stock_quantity < ?", lowStockThreshold).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// SalesByDay computes per-day order counts and revenue since the given time
func (r *GormAnalyticsRepository) SalesByDay(ctx context.Context, since time.Time) ([]report.DailySales, error) {
	type dailyResult struct {
		Date    time.Time
		Orders  int64
		Revenue decimal.Decimal
	}

	var results []dailyResult
	err := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as orders,
			COALESCE(SUM(total_amount), 0) as revenue
		`).
		Where("created_at >= ?", since).
		Where("status <> ?", ordering.OrderStatusCancelled).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	sales := make([]report.DailySales, len(results))
	for i, row := range results {
		sales[i] = report.DailySales{
			Date:    row.Date.Format("2006-01-02"),
			Orders:  row.Orders,
			Revenue: row.Revenue,
		}
	}
	return sales, nil
}

// RevenueByStatus computes order counts and revenue per status
func (r *GormAnalyticsRepository) RevenueByStatus(ctx context.Context) ([]report.StatusRevenue, error) {
	var results []report.StatusRevenue
	err := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Select(`
			status,
			COUNT(*) as orders,
			COALESCE(SUM(total_amount), 0) as revenue
		`).
		Group("status").
		Order("status ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// RevenueByMonth computes per-month revenue since the given time
func (r *GormAnalyticsRepository) RevenueByMonth(ctx context.Context, since time.Time) ([]report.MonthlyRevenue, error) {
	var results []report.MonthlyRevenue
	err := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Select(`
			TO_CHAR(created_at, 'YYYY-MM') as month,
			COUNT(*) as orders,
			COALESCE(SUM(total_amount), 0) as revenue
		`).
		Where("created_at >= ?", since).
		Where("status <> ?", ordering.OrderStatusCancelled).
		Group("TO_CHAR(created_at, 'YYYY-MM')").
		Order("month ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ProductsByCategory counts catalog products per category
func (r *GormAnalyticsRepository) ProductsByCategory(ctx context.Context) ([]report.CategoryCount, error) {
	var results []report.CategoryCount
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Order("count DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// BestSellers ranks products by units sold, descending
func (r *GormAnalyticsRepository) BestSellers(ctx context.Context, limit int) ([]report.BestSeller, error) {
	return r.bestSellers(ctx, time.Time{}, limit)
}

// TopSellersSince ranks products by units sold on orders created at or
// after the given time
func (r *GormAnalyticsRepository) TopSellersSince(ctx context.Context, since time.Time, limit int) ([]report.BestSeller, error) {
	return r.bestSellers(ctx, since, limit)
}

func (r *GormAnalyticsRepository) bestSellers(ctx context.Context, since time.Time, limit int) ([]report.BestSeller, error) {
	query := r.db.WithContext(ctx).Table("order_items oi").
		Select(`
			oi.product_id as product_id,
			p.name as name,
			COALESCE(SUM(oi.quantity), 0) as units_sold,
			COALESCE(SUM(oi.price * oi.quantity), 0) as revenue
		`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("o.status <> ?", ordering.OrderStatusCancelled).
		Group("oi.product_id, p.name").
		Order("units_sold DESC").
		Limit(limit)

	if !since.IsZero() {
		query = query.Where("o.created_at >= ?", since)
	}

	var results []report.BestSeller
	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// TotalSpentByUser sums the user's order totals
func (r *GormAnalyticsRepository) TotalSpentByUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("user_id = ?", userID).
		Where("status <> ?", ordering.OrderStatusCancelled).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Ensure GormAnalyticsRepository implements AnalyticsRepository
var _ report.AnalyticsRepository = (*GormAnalyticsRepository)(nil)
