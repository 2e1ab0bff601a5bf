package repository

import (
	"time"

	"go-stockledger/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, t *model.StockTransaction) error
	FindAll() ([]model.StockTransaction, error)
	RevenueByPeriod(since time.Time) ([]RevenueByDay, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetAnalyticsStats() (*AnalyticsStats, error)
}

// RevenueByDay is one (day, type) aggregation bucket of transaction history
// priced against the product catalog.
type RevenueByDay struct {
	Date    string  `json:"date"`
	Type    string  `json:"type"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// StockMovementData for chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// AnalyticsStats for overview stats
type AnalyticsStats struct {
	TotalProducts  int64   `json:"total_products"`
	LowStockCount  int64   `json:"low_stock_count"`
	TotalValuation float64 `json:"total_valuation"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, t *model.StockTransaction) error {
	return tx.Create(t).Error
}

func (r *transactionRepo) FindAll() ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	err := r.db.Preload("Product").Preload("Actor").
		Order("created_at DESC").
		Limit(200).
		Find(&transactions).Error
	return transactions, err
}

// RevenueByPeriod aggregates transactions since the given time into per-day,
// per-type revenue buckets. Sales are priced at sale price, everything else
// at purchase price; quantities are stored sign-normalized so ABS recovers
// the unit count.
func (r *transactionRepo) RevenueByPeriod(since time.Time) ([]RevenueByDay, error) {
	var results []RevenueByDay

	rows, err := r.db.Model(&model.StockTransaction{}).
		Select(`
			DATE(stock_transactions.created_at) as date,
			stock_transactions.type as type,
			COALESCE(SUM(ABS(stock_transactions.quantity) * CASE WHEN stock_transactions.type = 'sale' THEN products.sale_price ELSE products.purchase_price END), 0) as revenue,
			COUNT(*) as count
		`).
		Joins("JOIN products ON products.id = stock_transactions.product_id").
		Where("stock_transactions.created_at >= ?", since).
		Group("DATE(stock_transactions.created_at), stock_transactions.type").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data RevenueByDay
		if err := rows.Scan(&data.Date, &data.Type, &data.Revenue, &data.Count); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Aggregate transactions per day: purchases count as inbound units,
	// sales as outbound units.
	rows, err := r.db.Model(&model.StockTransaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type = 'purchase' THEN ABS(quantity) ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'sale' THEN ABS(quantity) ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetAnalyticsStats() (*AnalyticsStats, error) {
	var stats AnalyticsStats

	// Total Products
	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	// Low Stock Count (quantity at or below the reorder level)
	if err := r.db.Model(&model.Inventory{}).
		Where("quantity <= min_level").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	// Total Valuation (SUM of quantity * sale price across locations)
	if err := r.db.Model(&model.Inventory{}).
		Joins("JOIN products ON products.id = inventories.product_id").
		Select("COALESCE(SUM(inventories.quantity * products.sale_price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
