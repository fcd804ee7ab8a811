package services_test

import (
	"strings"
	"testing"

	"bazaar/internal/apperrors"
	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testShipping = services.ShippingDetails{
	Address: "1 Test Lane",
	City:    "Testville",
	Country: "Testland",
	Zip:     "12345",
}

func TestOrderService_Checkout_ComputesFrozenTotals(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	service := services.NewOrderService(orderRepo, productRepo, nil)

	productRepo.On("GetByID", "prod-1").Return(activeProduct("prod-1", 10.0), nil).Once()
	productRepo.On("GetByID", "prod-2").Return(activeProduct("prod-2", 5.0), nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := service.Checkout("user-1", []services.CheckoutItem{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 1},
	}, testShipping)

	assert.NoError(t, err)
	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 20.0, order.Items[0].Total)
	assert.Equal(t, 5.0, order.Items[1].Total)
	assert.Equal(t, 10.0, order.Items[0].Price, "line price is the catalog price at checkout")
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, "1 Test Lane", order.ShippingAddress)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_EmptyCartPersistsNothing(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := services.NewOrderService(orderRepo, new(MockProductRepository), nil)

	_, err := service.Checkout("user-1", nil, testShipping)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_Checkout_UnknownProduct(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	service := services.NewOrderService(orderRepo, productRepo, nil)

	productRepo.On("GetByID", "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := service.Checkout("user-1", []services.CheckoutItem{{ProductID: "ghost", Quantity: 1}}, testShipping)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_Checkout_InsufficientStock(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	service := services.NewOrderService(orderRepo, productRepo, nil)

	scarce := activeProduct("prod-1", 10.0)
	scarce.StockQuantity = 1
	productRepo.On("GetByID", "prod-1").Return(scarce, nil).Once()

	_, err := service.Checkout("user-1", []services.CheckoutItem{{ProductID: "prod-1", Quantity: 5}}, testShipping)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.ErrorContains(t, err, "insufficient stock")
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_GetOrder_ForeignOrderIsNotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := services.NewOrderService(orderRepo, new(MockProductRepository), nil)

	order := &models.Order{ID: "ord-1", UserID: "someone-else", Status: models.OrderStatusPending}
	orderRepo.On("GetByID", "ord-1").Return(order, nil).Twice()

	_, err := service.GetOrder("user-1", false, "ord-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Admins bypass the ownership scope.
	got, err := service.GetOrder("user-1", true, "ord-1")
	assert.NoError(t, err)
	assert.Equal(t, "ord-1", got.ID)
}

func TestOrderService_UpdateStatus_Transitions(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := services.NewOrderService(orderRepo, new(MockProductRepository), nil)

	pending := &models.Order{ID: "ord-1", UserID: "user-1", Status: models.OrderStatusPending}

	// pending -> processing is allowed.
	orderRepo.On("GetByID", "ord-1").Return(pending, nil).Once()
	orderRepo.On("UpdateStatus", "ord-1", models.OrderStatusProcessing).Return(nil).Once()
	order, err := service.UpdateStatus("user-1", false, "ord-1", models.OrderStatusProcessing)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)

	// pending -> delivered skips the graph and is rejected.
	fresh := &models.Order{ID: "ord-1", UserID: "user-1", Status: models.OrderStatusPending}
	orderRepo.On("GetByID", "ord-1").Return(fresh, nil).Once()
	_, err = service.UpdateStatus("user-1", false, "ord-1", models.OrderStatusDelivered)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Unknown target status is rejected before any lookup.
	_, err = service.UpdateStatus("user-1", false, "ord-1", "teleported")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Terminal states accept nothing.
	done := &models.Order{ID: "ord-1", UserID: "user-1", Status: models.OrderStatusDelivered}
	orderRepo.On("GetByID", "ord-1").Return(done, nil).Once()
	_, err = service.UpdateStatus("user-1", false, "ord-1", models.OrderStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	orderRepo.AssertExpectations(t)
}

func TestGenerateOrderNumber_FormatAndUniqueness(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		number := services.GenerateOrderNumber()
		assert.Len(t, number, 12)
		assert.True(t, strings.HasPrefix(number, "ORD-"))
		assert.Equal(t, strings.ToUpper(number), number)
		assert.False(t, seen[number], "order numbers must not collide: %s", number)
		seen[number] = true
	}
}
