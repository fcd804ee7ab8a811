package models

import "time"

// Event routing keys published to the message broker.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventReviewCreated      = "review.created"
)

// OrderCreatedEvent is published after a checkout commits.
type OrderCreatedEvent struct {
	OrderID     string           `json:"order_id"`
	OrderNumber string           `json:"order_number"`
	UserID      string           `json:"user_id"`
	TotalAmount float64          `json:"total_amount"`
	Items       []OrderEventItem `json:"items"`
	CreatedAt   time.Time        `json:"created_at"`
}

// OrderEventItem carries the per-line data consumers need to maintain
// sales aggregates.
type OrderEventItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderStatusChangedEvent is published on every accepted status transition.
type OrderStatusChangedEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

// ReviewCreatedEvent is published after a review is stored; the worker
// recomputes the product rating aggregate from it.
type ReviewCreatedEvent struct {
	ReviewID  string    `json:"review_id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
