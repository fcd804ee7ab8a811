package models

import "time"

// Store is a seller's storefront. The unique index on OwnerID enforces
// one store per user; a concurrent second create surfaces as a duplicate key.
type Store struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID       string    `json:"owner_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	Name          string    `json:"name" gorm:"type:varchar(200)" validate:"required,min=2,max=200"`
	Description   string    `json:"description"`
	Country       string    `json:"country" gorm:"type:varchar(100)" validate:"required"`
	Language      string    `json:"language" gorm:"type:varchar(10);default:'en'"`
	ContactEmail  string    `json:"contact_email" gorm:"type:varchar(255)" validate:"omitempty,email"`
	ContactPhone  string    `json:"contact_phone" gorm:"type:varchar(20)"`
	// No column default, same reason as Product.IsActive: an explicit
	// false must survive the insert.
	IsActive      bool      `json:"is_active"`
	IsVerified    bool      `json:"is_verified" gorm:"default:false"`
	Rating        float64   `json:"rating" gorm:"default:0"`
	TotalProducts int       `json:"total_products" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
