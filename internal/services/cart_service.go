package services

import (
	"errors"

	"bazaar/internal/apperrors"
	"bazaar/internal/metrics"
	"bazaar/internal/models"
	"bazaar/internal/repositories"
)

// CartSummary is the cart listing payload: all lines plus aggregates.
type CartSummary struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

// CartService handles business logic for carts and wishlists.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem merges a product into the caller's cart: an existing line gets
// its quantity incremented, otherwise a new line is created. A concurrent
// duplicate insert loses the race on the unique index and is retried as
// an increment, so two simultaneous adds never produce two rows.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, apperrors.Validation("product %s is not available", productID)
	}

	item, err := s.cartRepo.GetByProduct(userID, productID)
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.cartRepo.Update(item); err != nil {
			return nil, err
		}
	case errors.Is(err, apperrors.ErrNotFound):
		item = &models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Product:   *product,
			Quantity:  quantity,
		}
		if createErr := s.cartRepo.Create(item); createErr != nil {
			if !errors.Is(createErr, apperrors.ErrConflict) {
				return nil, createErr
			}
			// Lost the race against a concurrent add: fold into the
			// line the winner inserted.
			item, err = s.cartRepo.GetByProduct(userID, productID)
			if err != nil {
				return nil, err
			}
			item.Quantity += quantity
			if err := s.cartRepo.Update(item); err != nil {
				return nil, err
			}
		}
	default:
		return nil, err
	}

	metrics.CartAddsTotal.Inc()
	item.Product = *product
	return item, nil
}

// UpdateItem overwrites a line's quantity. Lines owned by other users
// behave as absent.
func (s *CartService) UpdateItem(userID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	item, err := s.cartRepo.GetByID(userID, itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a line under the same ownership rule.
func (s *CartService) RemoveItem(userID, itemID string) error {
	return s.cartRepo.Delete(userID, itemID)
}

// GetCart returns the caller's lines with per-line totals summed into an
// aggregate total and count.
func (s *CartService) GetCart(userID string) (*CartSummary, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Items: items, Count: len(items)}
	for _, item := range items {
		summary.Total += item.Total()
	}
	return summary, nil
}

// AddToWishlist is get-or-create on (user, product). The returned bool
// reports whether a new entry was created.
func (s *CartService) AddToWishlist(userID, productID string) (*models.Wishlist, bool, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, false, err
	}

	entry, err := s.cartRepo.GetWishlistByProduct(userID, productID)
	if err == nil {
		return entry, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	entry = &models.Wishlist{
		UserID:    userID,
		ProductID: productID,
		Product:   *product,
	}
	if createErr := s.cartRepo.CreateWishlist(entry); createErr != nil {
		if errors.Is(createErr, apperrors.ErrConflict) {
			// Concurrent add: the entry exists now, return it.
			entry, err = s.cartRepo.GetWishlistByProduct(userID, productID)
			return entry, false, err
		}
		return nil, false, createErr
	}
	return entry, true, nil
}

// GetWishlist returns the caller's wishlist entries.
func (s *CartService) GetWishlist(userID string) ([]models.Wishlist, error) {
	return s.cartRepo.ListWishlist(userID)
}

// RemoveFromWishlist deletes an entry; foreign entries behave as absent.
func (s *CartService) RemoveFromWishlist(userID, entryID string) error {
	return s.cartRepo.DeleteWishlist(userID, entryID)
}
