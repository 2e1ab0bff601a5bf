package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxPurchase   TransactionType = "purchase"
	TxSale       TransactionType = "sale"
	TxAdjustment TransactionType = "adjustment"
)

// IsValid reports whether t is one of the accepted transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TxPurchase, TxSale, TxAdjustment:
		return true
	}
	return false
}

// EffectiveDelta normalizes a raw quantity into the signed stock change:
// purchases always add, sales always subtract, adjustments pass the
// caller-supplied signed value through untouched.
func (t TransactionType) EffectiveDelta(quantity int) int {
	switch t {
	case TxPurchase:
		return abs(quantity)
	case TxSale:
		return -abs(quantity)
	default:
		return quantity
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// StockTransaction is the immutable record of one stock movement, created
// only by the transaction posting path. Quantity stores the effective
// (sign-normalized) delta, not the raw input.
type StockTransaction struct {
	BaseModel
	Type      TransactionType `gorm:"type:varchar(20);not null" json:"type" validate:"required"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId" validate:"uuid_required"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Location  string          `gorm:"type:varchar(50);not null;default:'MAIN'" json:"location"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Note      string          `gorm:"type:text" json:"note"`
	ActorID   *uuid.UUID      `gorm:"type:uuid" json:"actorId"`
	Actor     *User           `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
