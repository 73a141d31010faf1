package report

import (
	"context"
	"time"

	"github.com/toystore/backend/internal/domain/ordering"
	"github.com/toystore/backend/internal/domain/report"
	"go.uber.org/zap"
)

const (
	dashboardRecentOrders = 10
	dashboardTopSellers   = 5
	bestSellersLimit      = 10
	monthlyRevenueMonths  = 12
)

// AnalyticsService computes admin analytics from the read repositories
type AnalyticsService struct {
	analyticsRepo     report.AnalyticsRepository
	orderRepo         ordering.OrderRepository
	lowStockThreshold int
	logger            *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	analyticsRepo report.AnalyticsRepository,
	orderRepo ordering.OrderRepository,
	lowStockThreshold int,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo:     analyticsRepo,
		orderRepo:         orderRepo,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// Dashboard assembles the admin dashboard: store totals, the most
// recent orders and the week's top sellers
func (s *AnalyticsService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	stats, err := s.analyticsRepo.DashboardStats(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindRecent(ctx, dashboardRecentOrders)
	if err != nil {
		return nil, err
	}

	recent := make([]RecentOrder, len(orders))
	for i := range orders {
		recent[i] = RecentOrder{
			ID:          orders[i].ID,
			UserID:      orders[i].UserID,
			TotalAmount: orders[i].TotalAmount,
			Status:      orders[i].Status.String(),
			CreatedAt:   orders[i].CreatedAt,
		}
	}

	topSellers, err := s.analyticsRepo.TopSellersSince(ctx, time.Now().AddDate(0, 0, -7), dashboardTopSellers)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Stats:        *stats,
		RecentOrders: recent,
		TopSellers:   topSellers,
	}, nil
}

// Sales returns per-day order counts and revenue for the last N days
func (s *AnalyticsService) Sales(ctx context.Context, days int) (*SalesResponse, error) {
	if days <= 0 {
		days = 30
	}

	sales, err := s.analyticsRepo.SalesByDay(ctx, time.Now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	return &SalesResponse{Days: days, Sales: sales}, nil
}

// Revenue returns the revenue split by status and by month over the
// last year
func (s *AnalyticsService) Revenue(ctx context.Context) (*RevenueResponse, error) {
	byStatus, err := s.analyticsRepo.RevenueByStatus(ctx)
	if err != nil {
		return nil, err
	}

	monthly, err := s.analyticsRepo.RevenueByMonth(ctx, time.Now().AddDate(0, -monthlyRevenueMonths, 0))
	if err != nil {
		return nil, err
	}

	return &RevenueResponse{ByStatus: byStatus, Monthly: monthly}, nil
}

// ProductAnalytics returns catalog composition and all-time best sellers
func (s *AnalyticsService) ProductAnalytics(ctx context.Context) (*ProductAnalyticsResponse, error) {
	byCategory, err := s.analyticsRepo.ProductsByCategory(ctx)
	if err != nil {
		return nil, err
	}

	bestSellers, err := s.analyticsRepo.BestSellers(ctx, bestSellersLimit)
	if err != nil {
		return nil, err
	}

	return &ProductAnalyticsResponse{
		ByCategory:  byCategory,
		BestSellers: bestSellers,
	}, nil
}
