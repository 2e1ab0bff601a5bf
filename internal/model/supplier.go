package model

// Supplier is a vendor that products can be sourced from.
//
// ProductsSupplied is not stored as its own array: it is derived from
// Product.SoldByID, so the supplier side of the link can never drift
// out of sync with the product side.
type Supplier struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Email   string `gorm:"type:varchar(255)" json:"email"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`
	Address string `gorm:"type:text" json:"address"`

	ProductsSupplied []Product `gorm:"foreignKey:SoldByID" json:"productsSupplied,omitempty"`
}
