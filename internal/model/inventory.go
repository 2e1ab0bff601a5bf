package model

import "github.com/google/uuid"

// DefaultLocation is used whenever a request does not name a stock-keeping
// location.
const DefaultLocation = "MAIN"

// Inventory holds the stock level for one (product, location) pair.
// Rows are created lazily on first reference; quantity is signed and may
// go negative (backorders are not rejected).
type Inventory struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_location" json:"productId" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Location  string    `gorm:"type:varchar(50);not null;default:'MAIN';uniqueIndex:idx_inventory_product_location" json:"location"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	MinLevel  int       `gorm:"not null;default:0" json:"minLevel"`
	MaxLevel  int       `gorm:"default:0" json:"maxLevel"`
}

// InventoryLog is an append-only record of one direct stock adjustment
// (the transaction path keeps its own ledger). Never updated or deleted.
type InventoryLog struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Location  string    `gorm:"type:varchar(50);not null;default:'MAIN'" json:"location"`

	QuantityBefore int  `gorm:"not null" json:"quantityBefore"`
	QuantityAfter  int  `gorm:"not null" json:"quantityAfter"`
	MinLevelBefore *int `json:"minLevelBefore,omitempty"`
	MinLevelAfter  *int `json:"minLevelAfter,omitempty"`
	MaxLevelBefore *int `json:"maxLevelBefore,omitempty"`
	MaxLevelAfter  *int `json:"maxLevelAfter,omitempty"`

	Note    string     `gorm:"type:text" json:"note"`
	ActorID *uuid.UUID `gorm:"type:uuid" json:"actorId"`
	Actor   *User      `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// IsLowStock reports whether the record is at or below its reorder level.
func (i *Inventory) IsLowStock() bool {
	return i.Quantity <= i.MinLevel
}
