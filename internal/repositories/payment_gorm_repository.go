package repositories

import (
	"errors"
	"fmt"
	"time"

	"bazaar/internal/apperrors"
	"bazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{db: db}
}

// Create inserts a payment. The unique index on order_id keeps one payment
// per order; a second initialization is a conflict.
func (r *GORMPaymentRepository) Create(payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if err := r.db.Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("payment for order %s already exists", payment.OrderID)
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its ID.
func (r *GORMPaymentRepository) GetByID(id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment with ID %s", id)
		}
		return nil, fmt.Errorf("failed to get payment by ID %s: %w", id, err)
	}
	return &payment, nil
}

// GetByOrder retrieves the payment attached to an order.
func (r *GORMPaymentRepository) GetByOrder(orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment for order %s", orderID)
		}
		return nil, fmt.Errorf("failed to get payment for order %s: %w", orderID, err)
	}
	return &payment, nil
}

// UpdateStatus overwrites a payment's status, stamping completed_at for
// terminal completed payments.
func (r *GORMPaymentRepository) UpdateStatus(id, status string) error {
	updates := map[string]interface{}{"status": status}
	if status == models.PaymentStatusCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}
	res := r.db.Model(&models.Payment{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for payment %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("payment with ID %s", id)
	}
	return nil
}
