package services

import (
	"encoding/hex"
	"strings"

	"bazaar/internal/apperrors"
	"bazaar/internal/metrics"
	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gateway is the external payment-gateway collaborator. Verify returns the
// authoritative status for a payment; the real integration is supplied by
// the deployment, not this module.
type Gateway interface {
	Verify(payment *models.Payment) (string, error)
}

// PassthroughGateway reports whatever status is already stored. It stands
// in wherever no real gateway is configured.
type PassthroughGateway struct{}

// Verify returns the stored status unchanged.
func (PassthroughGateway) Verify(payment *models.Payment) (string, error) {
	return payment.Status, nil
}

// PaymentService handles payment initialization and verification.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	gateway     Gateway
}

// NewPaymentService creates a new PaymentService. A nil gateway falls back
// to the pass-through.
func NewPaymentService(paymentRepo repositories.PaymentRepository, orderRepo repositories.OrderRepository, gateway Gateway) *PaymentService {
	if gateway == nil {
		gateway = PassthroughGateway{}
	}
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
	}
}

// Initialize creates the payment for an order: amount copied from the
// order total, status pending, freshly generated transaction id. The order
// must belong to the caller; exactly one payment may exist per order.
func (s *PaymentService) Initialize(callerID, orderID, method string) (*models.Payment, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != callerID {
		return nil, apperrors.NotFound("order with ID %s", orderID)
	}

	if !models.ValidPaymentMethods[method] {
		return nil, apperrors.Validation("invalid payment method: %s", method)
	}

	payment := &models.Payment{
		OrderID:       order.ID,
		Amount:        order.TotalAmount,
		Method:        method,
		Status:        models.PaymentStatusPending,
		TransactionID: GenerateTransactionID(),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	metrics.PaymentsInitializedTotal.WithLabelValues(method).Inc()
	zap.L().Info("payment initialized",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", order.ID),
		zap.String("transaction_id", payment.TransactionID),
		zap.String("method", method))
	return payment, nil
}

// Verify asks the gateway for the authoritative status and persists any
// change. Foreign payments behave as absent for non-admin callers.
func (s *PaymentService) Verify(callerID string, isAdmin bool, paymentID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(payment.OrderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != callerID {
		return nil, apperrors.NotFound("payment with ID %s", paymentID)
	}

	status, err := s.gateway.Verify(payment)
	if err != nil {
		return nil, err
	}
	if status != payment.Status {
		if err := s.paymentRepo.UpdateStatus(payment.ID, status); err != nil {
			return nil, err
		}
		payment.Status = status
	}
	return payment, nil
}

// GenerateTransactionID returns a fresh transaction id: a fixed prefix
// plus twelve uppercase hex characters drawn from a random UUID. The
// unique index on transaction_id backs up the random generation.
func GenerateTransactionID() string {
	u := uuid.New()
	return "TXN-" + strings.ToUpper(hex.EncodeToString(u[:]))[:12]
}
