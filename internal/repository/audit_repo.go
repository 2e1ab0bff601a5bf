package repository

import (
	"go-stockledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository stores the append-only change logs. Log rows are only
// ever inserted; there are no update or delete paths.
type AuditRepository interface {
	CreateProductLog(log *model.ProductLog) error
	CreateInventoryLog(log *model.InventoryLog) error
	ProductLogs(productID uuid.UUID) ([]model.ProductLog, error)
	InventoryLogs(productID uuid.UUID) ([]model.InventoryLog, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) CreateProductLog(log *model.ProductLog) error {
	return r.db.Create(log).Error
}

func (r *auditRepo) CreateInventoryLog(log *model.InventoryLog) error {
	return r.db.Create(log).Error
}

func (r *auditRepo) ProductLogs(productID uuid.UUID) ([]model.ProductLog, error) {
	var logs []model.ProductLog
	err := r.db.Preload("Actor").Preload("Product").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *auditRepo) InventoryLogs(productID uuid.UUID) ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	err := r.db.Preload("Actor").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
