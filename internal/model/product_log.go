package model

import "github.com/google/uuid"

// ProductSnapshot captures the product fields worth auditing at a point in
// time. A nil snapshot on a log entry means the product did not exist on
// that side of the change (creation or deletion).
type ProductSnapshot struct {
	Name      string     `json:"name"`
	SalePrice float64    `json:"salePrice"`
	SoldByID  *uuid.UUID `json:"soldBy"`
}

// SnapshotOf builds a ProductSnapshot from the product's current state.
func SnapshotOf(p *Product) *ProductSnapshot {
	if p == nil {
		return nil
	}
	return &ProductSnapshot{
		Name:      p.Name,
		SalePrice: p.SalePrice,
		SoldByID:  p.SoldByID,
	}
}

// ProductLog is an append-only before/after record of a product change.
// Never updated or deleted.
type ProductLog struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Before *ProductSnapshot `gorm:"serializer:json" json:"before"`
	After  *ProductSnapshot `gorm:"serializer:json" json:"after"`

	Note    string     `gorm:"type:text" json:"note"`
	ActorID *uuid.UUID `gorm:"type:uuid" json:"actorId"`
	Actor   *User      `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
