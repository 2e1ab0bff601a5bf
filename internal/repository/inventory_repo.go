package repository

import (
	"time"

	"go-stockledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	List(lowStockOnly bool) ([]model.Inventory, error)
	Find(tx *gorm.DB, productID uuid.UUID, location string) (*model.Inventory, error)
	Ensure(tx *gorm.DB, productID uuid.UUID, location string, createdBy string) (*model.Inventory, error)
	ApplyDelta(tx *gorm.DB, productID uuid.UUID, location string, delta int, updatedBy string) (*model.Inventory, error)
	SeedIfAbsent(tx *gorm.DB, productID uuid.UUID, location string, quantity, minLevel, maxLevel int, createdBy string) error
	Upsert(tx *gorm.DB, productID uuid.UUID, location string, quantity, minLevel, maxLevel *int, updatedBy string) (*model.Inventory, error)
	Save(tx *gorm.DB, inv *model.Inventory) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) List(lowStockOnly bool) ([]model.Inventory, error) {
	var items []model.Inventory
	query := r.db.Preload("Product").Order("updated_at DESC")
	if lowStockOnly {
		query = query.Where("quantity <= min_level")
	}
	err := query.Find(&items).Error
	return items, err
}

func (r *inventoryRepo) Find(tx *gorm.DB, productID uuid.UUID, location string) (*model.Inventory, error) {
	var inv model.Inventory
	err := tx.First(&inv, "product_id = ? AND location = ?", productID, location).Error
	return &inv, err
}

// Ensure returns the inventory row for (product, location), creating it
// with quantity 0 when it does not exist yet.
func (r *inventoryRepo) Ensure(tx *gorm.DB, productID uuid.UUID, location string, createdBy string) (*model.Inventory, error) {
	inv, err := r.Find(tx, productID, location)
	if err == nil {
		return inv, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	inv = &model.Inventory{
		ProductID: productID,
		Location:  location,
	}
	inv.CreatedBy = createdBy
	inv.UpdatedBy = createdBy
	if err := tx.Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// ApplyDelta increments the stock level for (product, location) in a single
// conditional statement, creating the row when absent. The increment runs
// inside the database, not as a read-then-write round trip, so concurrent
// deltas on the same key cannot lose updates.
func (r *inventoryRepo) ApplyDelta(tx *gorm.DB, productID uuid.UUID, location string, delta int, updatedBy string) (*model.Inventory, error) {
	row := &model.Inventory{
		ProductID: productID,
		Location:  location,
		Quantity:  delta,
	}
	row.CreatedBy = updatedBy
	row.UpdatedBy = updatedBy
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "location"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_by": updatedBy,
			"updated_at": time.Now(),
		}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	// The upsert keeps the existing primary key, so re-read the row for the
	// final state.
	return r.Find(tx, productID, location)
}

// SeedIfAbsent creates the inventory row with an opening quantity and
// thresholds; an existing row is left untouched.
func (r *inventoryRepo) SeedIfAbsent(tx *gorm.DB, productID uuid.UUID, location string, quantity, minLevel, maxLevel int, createdBy string) error {
	row := &model.Inventory{
		ProductID: productID,
		Location:  location,
		Quantity:  quantity,
		MinLevel:  minLevel,
		MaxLevel:  maxLevel,
	}
	row.CreatedBy = createdBy
	row.UpdatedBy = createdBy
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "location"}},
		DoNothing: true,
	}).Create(row).Error
}

// Upsert applies "set if present" semantics: only the non-nil fields are
// written, absent fields keep their stored value. A missing row is created
// first with defaults.
func (r *inventoryRepo) Upsert(tx *gorm.DB, productID uuid.UUID, location string, quantity, minLevel, maxLevel *int, updatedBy string) (*model.Inventory, error) {
	inv, err := r.Ensure(tx, productID, location, updatedBy)
	if err != nil {
		return nil, err
	}
	if quantity != nil {
		inv.Quantity = *quantity
	}
	if minLevel != nil {
		inv.MinLevel = *minLevel
	}
	if maxLevel != nil {
		inv.MaxLevel = *maxLevel
	}
	inv.UpdatedBy = updatedBy
	if err := tx.Save(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *inventoryRepo) Save(tx *gorm.DB, inv *model.Inventory) error {
	return tx.Save(inv).Error
}
