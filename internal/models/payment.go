package models

import "time"

// Payment methods accepted at initialization.
var ValidPaymentMethods = map[string]bool{
	"paypal":      true,
	"credit_card": true,
	"debit_card":  true,
	"mtn":         true,
	"cash":        true,
}

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// Payment records a payment attempt for an order. The unique index on
// OrderID keeps exactly one payment per order; Amount is copied from the
// order total at initialization.
type Payment struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID       string     `json:"order_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	Amount        float64    `json:"amount"`
	Method        string     `json:"method" gorm:"type:varchar(20)"`
	Status        string     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	TransactionID string     `json:"transaction_id" gorm:"uniqueIndex;type:varchar(100)"`
	Reference     string     `json:"reference" gorm:"type:varchar(100)"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
