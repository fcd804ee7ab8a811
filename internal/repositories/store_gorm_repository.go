package repositories

import (
	"errors"
	"fmt"

	"bazaar/internal/apperrors"
	"bazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{db: db}
}

// Create inserts a new store. The unique index on owner_id makes a second
// store for the same user a conflict, including under concurrent creates.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.Create(store).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("user %s already has a store", store.OwnerID)
		}
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// GetByID retrieves a store by its ID.
func (r *GORMStoreRepository) GetByID(id string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store with ID %s", id)
		}
		return nil, fmt.Errorf("failed to get store by ID %s: %w", id, err)
	}
	return &store, nil
}

// GetByOwner retrieves the store owned by the given user.
func (r *GORMStoreRepository) GetByOwner(ownerID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store for user %s", ownerID)
		}
		return nil, fmt.Errorf("failed to get store for user %s: %w", ownerID, err)
	}
	return &store, nil
}

// GetAll retrieves all stores.
func (r *GORMStoreRepository) GetAll() ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.Order("created_at DESC").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to get all stores: %w", err)
	}
	return stores, nil
}

// Update saves an existing store.
func (r *GORMStoreRepository) Update(store *models.Store) error {
	res := r.db.Save(store)
	if res.Error != nil {
		return fmt.Errorf("failed to update store: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("store with ID %s", store.ID)
	}
	return nil
}

// AdjustTotalProducts shifts the denormalized product counter by delta.
func (r *GORMStoreRepository) AdjustTotalProducts(id string, delta int) error {
	res := r.db.Model(&models.Store{}).Where("id = ?", id).
		UpdateColumn("total_products", gorm.Expr("total_products + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust product count for store %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("store with ID %s", id)
	}
	return nil
}
