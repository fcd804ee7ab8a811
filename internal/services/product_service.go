package services

import (
	"errors"
	"time"

	"bazaar/internal/apperrors"
	"bazaar/internal/metrics"
	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"go.uber.org/zap"
)

// ProductService handles business logic for the catalog and its reviews.
type ProductService struct {
	productRepo repositories.ProductRepository
	storeRepo   repositories.StoreRepository
	publisher   EventPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, storeRepo repositories.StoreRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storeRepo:   storeRepo,
		publisher:   publisher,
	}
}

// ListProducts returns active products matching the filter. Public surface:
// inactive products stay hidden here regardless of the filter.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	filter.IncludeInactive = false
	return s.productRepo.GetAll(filter)
}

// GetProduct returns a product with its reviews.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct attaches a product to the caller's store. Callers without
// a store cannot list products.
func (s *ProductService) CreateProduct(ownerID string, product *models.Product) (*models.Product, error) {
	store, err := s.storeRepo.GetByOwner(ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Validation("user does not have a store")
		}
		return nil, err
	}

	product.StoreID = store.ID
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	if err := s.storeRepo.AdjustTotalProducts(store.ID, 1); err != nil {
		zap.L().Warn("failed to bump store product count",
			zap.String("store_id", store.ID), zap.Error(err))
	}
	return product, nil
}

// UpdateProduct applies updates to a product of the caller's store. A
// product in someone else's store behaves as absent.
func (s *ProductService) UpdateProduct(ownerID, productID string, updates *models.Product) (*models.Product, error) {
	product, err := s.ownedProduct(ownerID, productID)
	if err != nil {
		return nil, err
	}

	product.Name = updates.Name
	product.Description = updates.Description
	product.Price = updates.Price
	product.Category = updates.Category
	product.StockQuantity = updates.StockQuantity
	product.IsActive = updates.IsActive

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product of the caller's store.
func (s *ProductService) DeleteProduct(ownerID, productID string) error {
	product, err := s.ownedProduct(ownerID, productID)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(productID); err != nil {
		return err
	}
	if err := s.storeRepo.AdjustTotalProducts(product.StoreID, -1); err != nil {
		zap.L().Warn("failed to drop store product count",
			zap.String("store_id", product.StoreID), zap.Error(err))
	}
	return nil
}

// MyProducts returns every product of the caller's store, active or not.
func (s *ProductService) MyProducts(ownerID string) ([]models.Product, error) {
	store, err := s.storeRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetByStore(store.ID)
}

// AddReview stores a rating for a product. One review per (product, user);
// a repeat attempt is a conflict. The rating aggregate itself is not
// touched here: the background worker recomputes it from the published
// event.
func (s *ProductService) AddReview(userID, productID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.Validation("rating must be between 1 and 5")
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.productRepo.CreateReview(review); err != nil {
		return nil, err
	}

	metrics.ReviewsCreatedTotal.Inc()
	publishEvent(s.publisher, models.EventReviewCreated, models.ReviewCreatedEvent{
		ReviewID:  review.ID,
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		CreatedAt: time.Now(),
	})
	return review, nil
}

// RefreshRating recomputes the denormalized rating aggregate from the
// stored reviews. Called by the background worker.
func (s *ProductService) RefreshRating(productID string) error {
	avg, _, err := s.productRepo.ReviewStats(productID)
	if err != nil {
		return err
	}
	return s.productRepo.UpdateRating(productID, avg)
}

// RecordSales bumps total_sales for each ordered line. Called by the
// background worker on order.created events.
func (s *ProductService) RecordSales(items []models.OrderEventItem) error {
	for _, item := range items {
		if err := s.productRepo.IncrementSales(item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProductService) ownedProduct(ownerID, productID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	store, err := s.storeRepo.GetByOwner(ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product with ID %s", productID)
		}
		return nil, err
	}
	if product.StoreID != store.ID {
		return nil, apperrors.NotFound("product with ID %s", productID)
	}
	return product, nil
}
