package repositories

import "bazaar/internal/models"

// PaymentRepository defines the interface for payment data access.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	GetByOrder(orderID string) (*models.Payment, error)
	UpdateStatus(id, status string) error
}
