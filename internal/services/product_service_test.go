package services_test

import (
	"testing"

	"bazaar/internal/apperrors"
	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_CreateProduct_RequiresStore(t *testing.T) {
	productRepo := new(MockProductRepository)
	storeRepo := new(MockStoreRepository)
	service := services.NewProductService(productRepo, storeRepo, nil)

	storeRepo.On("GetByOwner", "user-1").Return(nil, apperrors.ErrNotFound).Once()

	product := &models.Product{Name: "Mug", Price: 4.5, Category: "crafts"}
	_, err := service.CreateProduct("user-1", product)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	productRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProduct_AttachesToOwnStore(t *testing.T) {
	productRepo := new(MockProductRepository)
	storeRepo := new(MockStoreRepository)
	service := services.NewProductService(productRepo, storeRepo, nil)

	storeRepo.On("GetByOwner", "user-1").Return(&models.Store{ID: "store-1", OwnerID: "user-1"}, nil).Once()
	productRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	storeRepo.On("AdjustTotalProducts", "store-1", 1).Return(nil).Once()

	product := &models.Product{Name: "Mug", Price: 4.5, Category: "crafts", IsActive: true}
	created, err := service.CreateProduct("user-1", product)
	assert.NoError(t, err)
	assert.Equal(t, "store-1", created.StoreID)
	storeRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_ForeignStoreIsNotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	storeRepo := new(MockStoreRepository)
	service := services.NewProductService(productRepo, storeRepo, nil)

	productRepo.On("GetByID", "prod-1").Return(&models.Product{ID: "prod-1", StoreID: "store-9"}, nil).Once()
	storeRepo.On("GetByOwner", "user-1").Return(&models.Store{ID: "store-1", OwnerID: "user-1"}, nil).Once()

	_, err := service.UpdateProduct("user-1", "prod-1", &models.Product{Name: "Renamed"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	productRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductService_AddReview(t *testing.T) {
	productRepo := new(MockProductRepository)
	storeRepo := new(MockStoreRepository)
	service := services.NewProductService(productRepo, storeRepo, nil)

	productRepo.On("GetByID", "prod-1").Return(activeProduct("prod-1", 10.0), nil).Once()
	productRepo.On("CreateReview", mock.AnythingOfType("*models.Review")).Return(nil).Once()

	review, err := service.AddReview("user-1", "prod-1", 4, "solid")
	assert.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "prod-1", review.ProductID)
	productRepo.AssertExpectations(t)
}

func TestProductService_AddReview_SecondReviewConflicts(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := services.NewProductService(productRepo, new(MockStoreRepository), nil)

	productRepo.On("GetByID", "prod-1").Return(activeProduct("prod-1", 10.0), nil).Once()
	productRepo.On("CreateReview", mock.AnythingOfType("*models.Review")).Return(apperrors.ErrConflict).Once()

	_, err := service.AddReview("user-1", "prod-1", 5, "again")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestProductService_AddReview_RatingOutOfRange(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := services.NewProductService(productRepo, new(MockStoreRepository), nil)

	_, err := service.AddReview("user-1", "prod-1", 6, "too good")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	productRepo.AssertNotCalled(t, "CreateReview", mock.Anything)
}

func TestProductService_RefreshRating(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := services.NewProductService(productRepo, new(MockStoreRepository), nil)

	productRepo.On("ReviewStats", "prod-1").Return(4.5, 2, nil).Once()
	productRepo.On("UpdateRating", "prod-1", 4.5).Return(nil).Once()

	err := service.RefreshRating("prod-1")
	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestProductService_RecordSales(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := services.NewProductService(productRepo, new(MockStoreRepository), nil)

	productRepo.On("IncrementSales", "prod-1", 2).Return(nil).Once()
	productRepo.On("IncrementSales", "prod-2", 1).Return(nil).Once()

	err := service.RecordSales([]models.OrderEventItem{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 1},
	})
	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}
