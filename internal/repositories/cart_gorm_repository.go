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

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// ListByUser retrieves the caller's cart lines with products preloaded.
func (r *GORMCartRepository) ListByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("user_id = ?", userID).
		Order("added_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart for user %s: %w", userID, err)
	}
	return items, nil
}

// GetByID retrieves one cart line, scoped to the owning user.
func (r *GORMCartRepository) GetByID(userID, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").
		First(&item, "id = ? AND user_id = ?", itemID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item %s", itemID)
		}
		return nil, fmt.Errorf("failed to get cart item %s: %w", itemID, err)
	}
	return &item, nil
}

// GetByProduct retrieves the line for (user, product) if one exists.
func (r *GORMCartRepository) GetByProduct(userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").
		First(&item, "user_id = ? AND product_id = ?", userID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item for product %s", productID)
		}
		return nil, fmt.Errorf("failed to get cart item for product %s: %w", productID, err)
	}
	return &item, nil
}

// Create inserts a cart line. A concurrent insert for the same
// (user, product) pair hits the unique index and surfaces as a conflict,
// which the service resolves by re-reading and incrementing.
func (r *GORMCartRepository) Create(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	// The Product association is read-only; only the line itself is written.
	if err := r.db.Omit("Product").Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("cart line for product %s already exists", item.ProductID)
		}
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// Update saves a cart line's quantity.
func (r *GORMCartRepository) Update(item *models.CartItem) error {
	res := r.db.Model(&models.CartItem{}).Where("id = ?", item.ID).
		Updates(map[string]interface{}{"quantity": item.Quantity, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %s: %w", item.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item %s", item.ID)
	}
	return nil
}

// Delete removes a cart line, scoped to the owning user.
func (r *GORMCartRepository) Delete(userID, itemID string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ? AND user_id = ?", itemID, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item %s", itemID)
	}
	return nil
}

// ListWishlist retrieves the caller's wishlist with products preloaded.
func (r *GORMCartRepository) ListWishlist(userID string) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	if err := r.db.Preload("Product").Where("user_id = ?", userID).
		Order("added_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list wishlist for user %s: %w", userID, err)
	}
	return entries, nil
}

// GetWishlistByProduct retrieves the entry for (user, product) if present.
func (r *GORMCartRepository) GetWishlistByProduct(userID, productID string) (*models.Wishlist, error) {
	var entry models.Wishlist
	if err := r.db.Preload("Product").
		First(&entry, "user_id = ? AND product_id = ?", userID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("wishlist entry for product %s", productID)
		}
		return nil, fmt.Errorf("failed to get wishlist entry for product %s: %w", productID, err)
	}
	return &entry, nil
}

// CreateWishlist inserts a wishlist entry.
func (r *GORMCartRepository) CreateWishlist(entry *models.Wishlist) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Omit("Product").Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("wishlist entry for product %s already exists", entry.ProductID)
		}
		return fmt.Errorf("failed to create wishlist entry: %w", err)
	}
	return nil
}

// DeleteWishlist removes a wishlist entry, scoped to the owning user.
func (r *GORMCartRepository) DeleteWishlist(userID, entryID string) error {
	res := r.db.Delete(&models.Wishlist{}, "id = ? AND user_id = ?", entryID, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete wishlist entry %s: %w", entryID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("wishlist entry %s", entryID)
	}
	return nil
}
