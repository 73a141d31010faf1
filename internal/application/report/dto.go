package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/toystore/backend/internal/domain/report"
)

// DashboardResponse is the admin dashboard payload
type DashboardResponse struct {
	Stats        report.DashboardStats `json:"stats"`
	RecentOrders []RecentOrder         `json:"recent_orders"`
	TopSellers   []report.BestSeller   `json:"top_sellers"`
}

// RecentOrder is one row of the dashboard's recent-orders list
type RecentOrder struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SalesResponse is the sales-over-time payload
type SalesResponse struct {
	Days  int                 `json:"days"`
	Sales []report.DailySales `json:"sales"`
}

// RevenueResponse is the revenue breakdown payload
type RevenueResponse struct {
	ByStatus []report.StatusRevenue  `json:"by_status"`
	Monthly  []report.MonthlyRevenue `json:"monthly"`
}

// ProductAnalyticsResponse is the product analytics payload
type ProductAnalyticsResponse struct {
	ByCategory  []report.CategoryCount `json:"by_category"`
	BestSellers []report.BestSeller    `json:"best_sellers"`
}
