// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
)

// CartItem rows are ephemeral: created on add-to-cart and deleted en
// masse when the cart is converted into an order.
type CartItem struct {
	BaseModel
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	OptionID uuid.UUID `json:"option_id" gorm:"type:uuid;not null;index"`
	Quantity int64     `json:"quantity" gorm:"not null"`
	Price    int64     `json:"price" gorm:"not null"`

	Option Option `json:"option,omitempty" gorm:"foreignKey:OptionID"`
}
