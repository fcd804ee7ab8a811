package models

import "time"

// CartItem associates a quantity of a product with a user's cart.
// The composite unique index guarantees a single line per (user, product);
// repeated adds increment Quantity instead of inserting a second row.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_cart_user_product;type:varchar(36);not null"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex:idx_cart_user_product;type:varchar(36);not null"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" gorm:"default:1" validate:"required,min=1"`
	AddedAt   time.Time `json:"added_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Total is the line total at current product price.
func (c CartItem) Total() float64 {
	return float64(c.Quantity) * c.Product.Price
}

// Wishlist marks a product a user wants to keep an eye on. Presence only,
// no quantity; one row per (user, product).
type Wishlist struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_wishlist_user_product;type:varchar(36);not null"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex:idx_wishlist_user_product;type:varchar(36);not null"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	AddedAt   time.Time `json:"added_at" gorm:"autoCreateTime"`
}
