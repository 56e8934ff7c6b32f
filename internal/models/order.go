// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Order owns its OrderItems; both are write-once and only removed
// together through cancellation.
type Order struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	OrderedAt time.Time `json:"ordered_at" gorm:"not null"`

	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem references its option but never owns it; quantity and price
// are snapshots taken from the cart row at placement.
type OrderItem struct {
	BaseModel
	OrderID  uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	OptionID uuid.UUID `json:"option_id" gorm:"type:uuid;not null;index"`
	Quantity int64     `json:"quantity" gorm:"not null"`
	Price    int64     `json:"price" gorm:"not null"`

	Option Option `json:"option,omitempty" gorm:"foreignKey:OptionID"`
}

// OrderCheck is the payment-confirmation record for an order.
type OrderCheck struct {
	BaseModel
	OrderID          uuid.UUID     `json:"order_id" gorm:"type:uuid;not null;index"`
	UserID           uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	PaymentReference string        `json:"payment_reference" gorm:"size:255;index"`
	Amount           int64         `json:"amount" gorm:"not null"`
	Status           PaymentStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	ApprovedAt       *time.Time    `json:"approved_at"`

	Order Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}
