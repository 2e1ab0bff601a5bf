package service

import (
	"time"

	"go-stockledger/internal/repository"
)

// AnalyticsService is the read-only aggregation surface over transaction
// history and current stock levels. No mutation happens here.
type AnalyticsService interface {
	RevenueByPeriod(period string) ([]repository.RevenueByDay, error)
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetStats() (*repository.AnalyticsStats, error)
}

type analyticsService struct {
	txRepo repository.TransactionRepository
}

func NewAnalyticsService(txRepo repository.TransactionRepository) AnalyticsService {
	return &analyticsService{txRepo: txRepo}
}

// RevenueByPeriod aggregates the last 7 days for "week", the last 30 days
// otherwise.
func (s *analyticsService) RevenueByPeriod(period string) ([]repository.RevenueByDay, error) {
	days := 30
	if period == "week" {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.txRepo.RevenueByPeriod(since)
}

func (s *analyticsService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.txRepo.GetStockMovement(startDate, endDate)
}

func (s *analyticsService) GetStats() (*repository.AnalyticsStats, error) {
	return s.txRepo.GetAnalyticsStats()
}
