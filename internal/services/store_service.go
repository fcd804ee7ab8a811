package services

import (
	"errors"
	"fmt"

	"bazaar/internal/apperrors"
	"bazaar/internal/models"
	"bazaar/internal/repositories"
)

// StoreService handles business logic for seller storefronts.
type StoreService struct {
	storeRepo repositories.StoreRepository
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo repositories.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// CreateStore opens a store for the caller. A user may own at most one
// store; the unique index on owner_id backs the check under concurrency.
func (s *StoreService) CreateStore(ownerID string, store *models.Store) (*models.Store, error) {
	if _, err := s.storeRepo.GetByOwner(ownerID); err == nil {
		return nil, apperrors.Conflict("user already has a store")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing store: %w", err)
	}

	store.OwnerID = ownerID
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// MyStore returns the caller's store.
func (s *StoreService) MyStore(ownerID string) (*models.Store, error) {
	return s.storeRepo.GetByOwner(ownerID)
}

// GetStore returns a store by ID.
func (s *StoreService) GetStore(id string) (*models.Store, error) {
	return s.storeRepo.GetByID(id)
}

// ListStores returns all stores.
func (s *StoreService) ListStores() ([]models.Store, error) {
	return s.storeRepo.GetAll()
}

// UpdateStore applies updates to the caller's own store. A store owned by
// someone else behaves as absent.
func (s *StoreService) UpdateStore(ownerID, storeID string, updates *models.Store) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != ownerID {
		return nil, apperrors.NotFound("store with ID %s", storeID)
	}

	store.Name = updates.Name
	store.Description = updates.Description
	store.Country = updates.Country
	if updates.Language != "" {
		store.Language = updates.Language
	}
	store.ContactEmail = updates.ContactEmail
	store.ContactPhone = updates.ContactPhone
	store.IsActive = updates.IsActive

	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}
