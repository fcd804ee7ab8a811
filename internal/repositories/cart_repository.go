package repositories

import "bazaar/internal/models"

// CartRepository defines the interface for cart and wishlist data access.
// Lookups by ID are always scoped to a user so a foreign line behaves as
// absent rather than leaking across accounts.
type CartRepository interface {
	ListByUser(userID string) ([]models.CartItem, error)
	GetByID(userID, itemID string) (*models.CartItem, error)
	GetByProduct(userID, productID string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	Delete(userID, itemID string) error

	ListWishlist(userID string) ([]models.Wishlist, error)
	GetWishlistByProduct(userID, productID string) (*models.Wishlist, error)
	CreateWishlist(entry *models.Wishlist) error
	DeleteWishlist(userID, entryID string) error
}
