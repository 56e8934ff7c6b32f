// internal/models/catalog.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Category forms a tree via ParentID: super categories have no parent,
// their children are "parents", whose children are "sons". The menu walks
// two levels down from the supers.
type Category struct {
	BaseModel
	Name     string     `json:"name" gorm:"size:100;not null"`
	ParentID *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`

	Parent   *Category  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

type Product struct {
	BaseModel
	CategoryID  uuid.UUID      `json:"category_id" gorm:"type:uuid;not null;index"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       int64          `json:"price" gorm:"not null"`
	DeliveryFee int64          `json:"delivery_fee" gorm:"default:0"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`

	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Options  []Option `json:"options,omitempty" gorm:"foreignKey:ProductID"`
}

// Option is a purchasable variant of a product and the unit stock is
// tracked against. StockQuantity must never go negative; it is mutated
// only through the option service's deduct/restore operations and the
// admin overwrite.
type Option struct {
	BaseModel
	ProductID     uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Name          string    `json:"name" gorm:"size:255;not null"`
	Price         int64     `json:"price" gorm:"not null"`
	StockQuantity int64     `json:"stock_quantity" gorm:"not null;default:0"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
