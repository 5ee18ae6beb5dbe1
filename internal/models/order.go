package models

import "time"

// OrderStatusPending is the status every order is created with.
const OrderStatusPending = "pending"

// Payment methods accepted by the kiosk.
const (
	PaymentCard = "card"
	PaymentPix  = "pix"
)

// OrderLine is one item of an order. Name and UnitPrice are copied from the
// menu item when the order is created and never change afterwards.
type OrderLine struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Payment records how the customer intends to pay.
type Payment struct {
	Method string `json:"method" validate:"required,oneof=card pix"`
}

// Order is a placed kiosk order. Lines and payment are embedded in the
// order document so an order is always written in one statement.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Items     []OrderLine `json:"items" gorm:"type:text;serializer:json;not null"`
	Total     float64     `json:"total" gorm:"not null"`
	Status    string      `json:"status" gorm:"type:varchar(20);not null"`
	Payment   *Payment    `json:"payment,omitempty" gorm:"type:text;serializer:json"`
	CreatedAt time.Time   `json:"created_at" gorm:"index"`
}

// TableName pins the collection name.
func (Order) TableName() string { return "orders" }

// OrderLineRequest is a single requested line in a new order.
type OrderLineRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the payload accepted by the create order endpoint.
// Quantities and payment are checked by the order service after the item
// references have been resolved.
type OrderRequest struct {
	Items   []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	Payment *Payment           `json:"payment,omitempty" validate:"-"`
}
