package repositories

import "bazaar/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order and its items in a single transaction.
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	ListAll() ([]models.Order, error)
	UpdateStatus(id, status string) error
}
