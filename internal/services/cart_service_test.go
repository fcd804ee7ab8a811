package services_test

import (
	"testing"

	"bazaar/internal/apperrors"
	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func activeProduct(id string, price float64) *models.Product {
	return &models.Product{ID: id, Name: "Thing " + id, Price: price, StockQuantity: 100, IsActive: true}
}

func TestCartService_AddItem_CreatesNewLine(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCartService(cartRepo, productRepo)

	productRepo.On("GetByID", "prod-1").Return(activeProduct("prod-1", 10.0), nil).Once()
	cartRepo.On("GetByProduct", "user-1", "prod-1").Return(nil, apperrors.ErrNotFound).Once()
	cartRepo.On("Create", mock.AnythingOfType("*models.CartItem")).Return(nil).Once()

	item, err := service.AddItem("user-1", "prod-1", 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 20.0, item.Total())
	cartRepo.AssertExpectations(t)
}

func TestCartService_AddItem_IncrementsExistingLine(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCartService(cartRepo, productRepo)

	product := activeProduct("prod-1", 10.0)
	existing := &models.CartItem{ID: "line-1", UserID: "user-1", ProductID: "prod-1", Product: *product, Quantity: 2}

	productRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	cartRepo.On("GetByProduct", "user-1", "prod-1").Return(existing, nil).Once()
	cartRepo.On("Update", mock.AnythingOfType("*models.CartItem")).Return(nil).Once()

	item, err := service.AddItem("user-1", "prod-1", 3)
	assert.NoError(t, err)
	assert.Equal(t, "line-1", item.ID, "must reuse the existing row, never a second one")
	assert.Equal(t, 5, item.Quantity, "quantities are summed")
	cartRepo.AssertNotCalled(t, "Create", mock.Anything)
	cartRepo.AssertExpectations(t)
}

func TestCartService_AddItem_ConcurrentInsertFoldsIntoWinner(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCartService(cartRepo, productRepo)

	product := activeProduct("prod-1", 10.0)
	winner := &models.CartItem{ID: "line-1", UserID: "user-1", ProductID: "prod-1", Product: *product, Quantity: 1}

	productRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	// First lookup sees nothing, the insert loses the unique-index race,
	// the retry folds into the winner's row.
	cartRepo.On("GetByProduct", "user-1", "prod-1").Return(nil, apperrors.ErrNotFound).Once()
	cartRepo.On("Create", mock.AnythingOfType("*models.CartItem")).Return(apperrors.ErrConflict).Once()
	cartRepo.On("GetByProduct", "user-1", "prod-1").Return(winner, nil).Once()
	cartRepo.On("Update", mock.AnythingOfType("*models.CartItem")).Return(nil).Once()

	item, err := service.AddItem("user-1", "prod-1", 2)
	assert.NoError(t, err)
	assert.Equal(t, "line-1", item.ID)
	assert.Equal(t, 3, item.Quantity)
	cartRepo.AssertExpectations(t)
}

func TestCartService_AddItem_RejectsInactiveProduct(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCartService(cartRepo, productRepo)

	inactive := activeProduct("prod-1", 10.0)
	inactive.IsActive = false
	productRepo.On("GetByID", "prod-1").Return(inactive, nil).Once()

	_, err := service.AddItem("user-1", "prod-1", 1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	cartRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCartService_AddItem_RejectsZeroQuantity(t *testing.T) {
	service := services.NewCartService(new(MockCartRepository), new(MockProductRepository))

	_, err := service.AddItem("user-1", "prod-1", 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCartService_UpdateItem_ForeignLineIsNotFound(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := services.NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("GetByID", "user-1", "line-9").Return(nil, apperrors.ErrNotFound).Once()

	_, err := service.UpdateItem("user-1", "line-9", 4)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	cartRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestCartService_RemoveItem_ForeignLineIsNotFound(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := services.NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("Delete", "user-1", "line-9").Return(apperrors.ErrNotFound).Once()

	err := service.RemoveItem("user-1", "line-9")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_GetCart_SumsLineTotals(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := services.NewCartService(cartRepo, new(MockProductRepository))

	lines := []models.CartItem{
		{ID: "l1", Quantity: 2, Product: models.Product{ID: "p1", Price: 10.0}},
		{ID: "l2", Quantity: 1, Product: models.Product{ID: "p2", Price: 5.0}},
	}
	cartRepo.On("ListByUser", "user-1").Return(lines, nil).Once()

	summary, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 25.0, summary.Total)
}

func TestCartService_AddToWishlist_GetOrCreate(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCartService(cartRepo, productRepo)

	product := activeProduct("prod-1", 10.0)

	// First add creates.
	productRepo.On("GetByID", "prod-1").Return(product, nil).Twice()
	cartRepo.On("GetWishlistByProduct", "user-1", "prod-1").Return(nil, apperrors.ErrNotFound).Once()
	cartRepo.On("CreateWishlist", mock.AnythingOfType("*models.Wishlist")).Return(nil).Once()

	entry, created, err := service.AddToWishlist("user-1", "prod-1")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "prod-1", entry.ProductID)

	// Second add returns the existing entry.
	cartRepo.On("GetWishlistByProduct", "user-1", "prod-1").Return(&models.Wishlist{ID: "w1", ProductID: "prod-1"}, nil).Once()

	entry, created, err = service.AddToWishlist("user-1", "prod-1")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "w1", entry.ID)
	cartRepo.AssertExpectations(t)
}
