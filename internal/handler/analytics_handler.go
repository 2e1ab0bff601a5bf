package handler

import (
	"strconv"

	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

// GetRevenueByPeriod aggregates revenue per day and transaction type.
// GET /api/v1/analytics/revenue-by-period?period=week|month
func (h *AnalyticsHandler) GetRevenueByPeriod(c *fiber.Ctx) error {
	data, err := h.service.RevenueByPeriod(c.Query("period", "week"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(data)
}

// GetStockMovement charts inbound vs outbound units per day.
// GET /api/v1/analytics/stock-movement?days=n
func (h *AnalyticsHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(data)
}

// GetStats returns the overview numbers for the dashboard.
// GET /api/v1/analytics/stats
func (h *AnalyticsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
