package repositories

import (
	"errors"
	"fmt"
	"strings"

	"bazaar/internal/apperrors"
	"bazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// GetAll retrieves products matching the filter, newest first.
func (r *GORMProductRepository) GetAll(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.StoreID != "" {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its reviews.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Reviews").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product with ID %s", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByStore retrieves every product of a store, active or not.
func (r *GORMProductRepository) GetByStore(storeID string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("store_id = ?", storeID).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products for store %s: %w", storeID, err)
	}
	return products, nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s", product.ID)
	}
	return nil
}

// Delete removes a product by ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s", id)
	}
	return nil
}

// CreateReview inserts a review. The composite unique index turns a second
// review by the same user on the same product into a conflict.
func (r *GORMProductRepository) CreateReview(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("user %s already reviewed product %s", review.UserID, review.ProductID)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ReviewStats returns the review average and count for a product.
func (r *GORMProductRepository) ReviewStats(productID string) (float64, int, error) {
	var stats struct {
		Avg   float64
		Count int
	}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute review stats for product %s: %w", productID, err)
	}
	return stats.Avg, stats.Count, nil
}

// UpdateRating overwrites the denormalized rating aggregate.
func (r *GORMProductRepository) UpdateRating(productID string, rating float64) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("rating", rating)
	if res.Error != nil {
		return fmt.Errorf("failed to update rating for product %s: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s", productID)
	}
	return nil
}

// IncrementSales shifts the total_sales counter by the ordered quantity.
func (r *GORMProductRepository) IncrementSales(productID string, quantity int) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("total_sales", gorm.Expr("total_sales + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to increment sales for product %s: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s", productID)
	}
	return nil
}
