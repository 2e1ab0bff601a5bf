package repository

import (
	"go-stockledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	Search(q string) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Save(tx *gorm.DB, product *model.Product) error
	Delete(tx *gorm.DB, product *model.Product) error

	// Supplier-link maintenance. The supplier side of the relationship is
	// derived from sold_by_id, so these are the only writes the link needs.
	IDsBySupplier(tx *gorm.DB, supplierID uuid.UUID) ([]uuid.UUID, error)
	AssignSupplier(tx *gorm.DB, productIDs []uuid.UUID, supplierID uuid.UUID, updatedBy string) error
	UnassignSupplier(tx *gorm.DB, productIDs []uuid.UUID, supplierID uuid.UUID, updatedBy string) error
	ClearSupplier(tx *gorm.DB, supplierID uuid.UUID, updatedBy string) error

	// Threshold mirror written back from the inventory side.
	UpdateThresholds(tx *gorm.DB, id uuid.UUID, minLevel, maxLevel *int, updatedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Omit(clause.Associations).Create(product).Error
}

// Search lists products, optionally filtered by a case-insensitive name
// substring, newest first.
func (r *productRepo) Search(q string) ([]model.Product, error) {
	var products []model.Product
	query := r.db.Preload("SoldBy").Order("created_at DESC")
	if q != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+q+"%")
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Preload("SoldBy").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Omit(clause.Associations).Save(product).Error
}

func (r *productRepo) Delete(tx *gorm.DB, product *model.Product) error {
	return tx.Delete(product).Error
}

func (r *productRepo) IDsBySupplier(tx *gorm.DB, supplierID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&model.Product{}).
		Where("sold_by_id = ?", supplierID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *productRepo) AssignSupplier(tx *gorm.DB, productIDs []uuid.UUID, supplierID uuid.UUID, updatedBy string) error {
	if len(productIDs) == 0 {
		return nil
	}
	return tx.Model(&model.Product{}).
		Where("id IN ?", productIDs).
		Updates(map[string]interface{}{
			"sold_by_id": supplierID,
			"updated_by": updatedBy,
		}).Error
}

// UnassignSupplier clears sold_by_id on the given products, but only where
// it still points at supplierID, so a concurrent reassignment is not
// clobbered.
func (r *productRepo) UnassignSupplier(tx *gorm.DB, productIDs []uuid.UUID, supplierID uuid.UUID, updatedBy string) error {
	if len(productIDs) == 0 {
		return nil
	}
	return tx.Model(&model.Product{}).
		Where("id IN ? AND sold_by_id = ?", productIDs, supplierID).
		Updates(map[string]interface{}{
			"sold_by_id": nil,
			"updated_by": updatedBy,
		}).Error
}

func (r *productRepo) ClearSupplier(tx *gorm.DB, supplierID uuid.UUID, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("sold_by_id = ?", supplierID).
		Updates(map[string]interface{}{
			"sold_by_id": nil,
			"updated_by": updatedBy,
		}).Error
}

func (r *productRepo) UpdateThresholds(tx *gorm.DB, id uuid.UUID, minLevel, maxLevel *int, updatedBy string) error {
	updates := map[string]interface{}{"updated_by": updatedBy}
	if minLevel != nil {
		updates["min_level"] = *minLevel
	}
	if maxLevel != nil {
		updates["max_level"] = *maxLevel
	}
	if len(updates) == 1 {
		return nil
	}
	return tx.Model(&model.Product{}).Where("id = ?", id).Updates(updates).Error
}
