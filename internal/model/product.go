package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Name          string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU           string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Barcode       string  `gorm:"type:varchar(100)" json:"barcode"`
	Category      string  `gorm:"type:varchar(100)" json:"category"`
	PurchasePrice float64 `gorm:"not null;default:0" json:"purchasePrice"`
	SalePrice     float64 `gorm:"not null;default:0" json:"salePrice"`
	TaxRate       float64 `gorm:"default:0" json:"taxRate"`
	IsActive      bool    `gorm:"default:true" json:"isActive"`

	// Optional link to the supplier this product is sourced from.
	SoldByID *uuid.UUID `gorm:"type:uuid;index" json:"soldBy"`
	SoldBy   *Supplier  `gorm:"foreignKey:SoldByID" json:"soldBySupplier,omitempty" validate:"-"`

	// Mirror of the MAIN inventory thresholds, kept in sync whether the
	// edit arrives through the product form or the inventory side.
	MinLevel int `gorm:"default:0" json:"minLevel"`
	MaxLevel int `gorm:"default:0" json:"maxLevel"`
}
