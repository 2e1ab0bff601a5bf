package repository

import (
	"go-stockledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	FindAll() ([]model.Supplier, error)
	FindByID(id uuid.UUID) (*model.Supplier, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Supplier, error)
	FindByName(name string) (*model.Supplier, error)
	Save(tx *gorm.DB, supplier *model.Supplier) error
	Delete(tx *gorm.DB, supplier *model.Supplier) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

// supplied preloads the derived product set with the fields the API exposes.
func supplied(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "sku", "sale_price", "purchase_price", "sold_by_id")
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) FindAll() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Preload("ProductsSupplied", supplied).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *supplierRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	err := tx.Preload("ProductsSupplied", supplied).First(&supplier, "id = ?", id).Error
	return &supplier, err
}

func (r *supplierRepo) FindByName(name string) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.First(&supplier, "name = ?", name).Error
	return &supplier, err
}

func (r *supplierRepo) Save(tx *gorm.DB, supplier *model.Supplier) error {
	return tx.Omit("ProductsSupplied").Save(supplier).Error
}

func (r *supplierRepo) Delete(tx *gorm.DB, supplier *model.Supplier) error {
	return tx.Delete(supplier).Error
}
