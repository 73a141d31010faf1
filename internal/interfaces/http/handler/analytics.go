package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	reportapp "github.com/toystore/backend/internal/application/report"
)

// AnalyticsHandler handles admin analytics endpoints
type AnalyticsHandler struct {
	BaseHandler
	analyticsService *reportapp.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *reportapp.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard returns the store dashboard summary
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Sales returns daily sales for the requested window
func (h *AnalyticsHandler) Sales(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid days parameter")
			return
		}
		days = parsed
	}

	sales, err := h.analyticsService.Sales(c.Request.Context(), days)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, sales)
}

// Revenue returns revenue broken down by status and by month
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	revenue, err := h.analyticsService.Revenue(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, revenue)
}

// Products returns category counts and best sellers
func (h *AnalyticsHandler) Products(c *gin.Context) {
	analytics, err := h.analyticsService.ProductAnalytics(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, analytics)
}
