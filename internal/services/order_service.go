package services

import (
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"bazaar/internal/apperrors"
	"bazaar/internal/metrics"
	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutItem is one requested order line. Prices are not accepted from
// the client; they are re-read from the catalog at checkout time.
type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// ShippingDetails carries the destination fields frozen onto the order.
type ShippingDetails struct {
	Address string `json:"shipping_address" validate:"required"`
	City    string `json:"shipping_city" validate:"required"`
	Country string `json:"shipping_country" validate:"required"`
	Zip     string `json:"shipping_zip"`
}

// OrderService handles checkout, order queries and status transitions.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// Checkout converts the requested lines into a persisted order. Every
// product is re-fetched so the snapshotted prices come from the catalog,
// never from the client. The order and its items commit in one
// transaction; a failure leaves nothing behind.
func (s *OrderService) Checkout(userID string, items []CheckoutItem, shipping ShippingDetails) (*models.Order, error) {
	if len(items) == 0 {
		metrics.OrdersFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, apperrors.Validation("cart is empty")
	}

	var totalAmount float64
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			metrics.OrdersFailedTotal.WithLabelValues("bad_quantity").Inc()
			return nil, apperrors.Validation("quantity for product %s must be at least 1", item.ProductID)
		}

		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				metrics.OrdersFailedTotal.WithLabelValues("unknown_product").Inc()
				return nil, apperrors.Validation("product %s is not available", item.ProductID)
			}
			return nil, err
		}
		if !product.IsActive {
			metrics.OrdersFailedTotal.WithLabelValues("inactive_product").Inc()
			return nil, apperrors.Validation("product %s is not available", item.ProductID)
		}
		if product.StockQuantity < item.Quantity {
			metrics.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
			return nil, apperrors.Validation("insufficient stock for %s (requested %d, available %d)",
				product.Name, item.Quantity, product.StockQuantity)
		}

		lineTotal := product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
			Total:       lineTotal,
		})
		totalAmount += lineTotal
	}

	order := &models.Order{
		UserID:          userID,
		OrderNumber:     GenerateOrderNumber(),
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusPending,
		Items:           orderItems,
		ShippingAddress: shipping.Address,
		ShippingCity:    shipping.City,
		ShippingCountry: shipping.Country,
		ShippingZip:     shipping.Zip,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	zap.L().Info("order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID),
		zap.Float64("total", totalAmount))

	eventItems := make([]models.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		eventItems = append(eventItems, models.OrderEventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	publishEvent(s.publisher, models.EventOrderCreated, models.OrderCreatedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      userID,
		TotalAmount: totalAmount,
		Items:       eventItems,
		CreatedAt:   time.Now(),
	})

	return order, nil
}

// GetOrder returns an order. Non-admin callers only see their own; a
// foreign order behaves as absent.
func (s *OrderService) GetOrder(callerID string, isAdmin bool, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != callerID {
		return nil, apperrors.NotFound("order with ID %s", orderID)
	}
	return order, nil
}

// ListOrders returns every order for admins, the caller's own otherwise.
func (s *OrderService) ListOrders(callerID string, isAdmin bool) ([]models.Order, error) {
	if isAdmin {
		return s.orderRepo.ListAll()
	}
	return s.orderRepo.ListByUser(callerID)
}

// MyOrders returns the caller's orders regardless of role.
func (s *OrderService) MyOrders(callerID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(callerID)
}

// UpdateStatus moves an order along the allowed status graph. Unknown
// targets and unreachable transitions are validation failures.
func (s *OrderService) UpdateStatus(callerID string, isAdmin bool, orderID, newStatus string) (*models.Order, error) {
	if _, known := models.OrderTransitions[newStatus]; !known {
		return nil, apperrors.Validation("invalid order status: %s", newStatus)
	}

	order, err := s.GetOrder(callerID, isAdmin, orderID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(order.Status, newStatus) {
		return nil, apperrors.Validation("cannot transition order from %s to %s", order.Status, newStatus)
	}

	if err := s.orderRepo.UpdateStatus(orderID, newStatus); err != nil {
		return nil, err
	}

	metrics.OrderStatusChangesTotal.WithLabelValues(newStatus).Inc()
	publishEvent(s.publisher, models.EventOrderStatusChanged, models.OrderStatusChangedEvent{
		OrderID:   orderID,
		UserID:    order.UserID,
		OldStatus: order.Status,
		NewStatus: newStatus,
		ChangedAt: time.Now(),
	})

	order.Status = newStatus
	return order, nil
}

// GenerateOrderNumber returns a fresh order number: a fixed prefix plus
// eight uppercase hex characters drawn from a random UUID. Uniqueness is
// probabilistic; the unique index on order_number catches the negligible
// residue of collisions.
func GenerateOrderNumber() string {
	u := uuid.New()
	return "ORD-" + strings.ToUpper(hex.EncodeToString(u[:]))[:8]
}
