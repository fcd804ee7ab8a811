package models

import "time"

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderTransitions is the allowed status graph. Delivered and cancelled
// are terminal.
var OrderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range OrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is the frozen result of a checkout. TotalAmount and the item
// prices are snapshots taken at creation time and are never recomputed.
type Order struct {
	ID                string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string      `json:"user_id" gorm:"index;type:varchar(36);not null"`
	OrderNumber       string      `json:"order_number" gorm:"uniqueIndex;type:varchar(20)"`
	TotalAmount       float64     `json:"total_amount"`
	Status            string      `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Items             []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress   string      `json:"shipping_address" validate:"required"`
	ShippingCity      string      `json:"shipping_city" gorm:"type:varchar(100)" validate:"required"`
	ShippingCountry   string      `json:"shipping_country" gorm:"type:varchar(100)" validate:"required"`
	ShippingZip       string      `json:"shipping_zip" gorm:"type:varchar(20)"`
	TrackingNumber    string      `json:"tracking_number" gorm:"type:varchar(100)"`
	EstimatedDelivery *time.Time  `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// OrderItem is a single order line. Price and Total are copies of the
// product price at order time, immune to later catalog changes.
type OrderItem struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID     string  `json:"order_id" gorm:"index;type:varchar(36);not null"`
	ProductID   string  `json:"product_id" gorm:"type:varchar(36);not null"`
	ProductName string  `json:"product_name" gorm:"type:varchar(200)"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}
