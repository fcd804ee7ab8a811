package models

import "time"

// Product categories accepted by the catalog.
var ValidCategories = map[string]bool{
	"fashion":     true,
	"beauty":      true,
	"crafts":      true,
	"food":        true,
	"electronics": true,
	"homedecor":   true,
	"accessories": true,
	"other":       true,
}

// Product is a catalog entry owned by a Store.
type Product struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	StoreID       string    `json:"store_id" gorm:"index;type:varchar(36);not null"`
	Name          string    `json:"name" gorm:"type:varchar(200)" validate:"required,min=2,max=200"`
	Description   string    `json:"description" validate:"omitempty,max=2000"`
	Price         float64   `json:"price" validate:"required,gte=0"`
	Category      string    `json:"category" gorm:"type:varchar(50)" validate:"required,oneof=fashion beauty crafts food electronics homedecor accessories other"`
	StockQuantity int       `json:"stock_quantity" gorm:"default:0" validate:"gte=0"`
	Rating        float64   `json:"rating" gorm:"default:0"`
	TotalSales    int       `json:"total_sales" gorm:"default:0"`
	// No column default: GORM skips zero-valued fields that carry one,
	// which would silently flip an explicit false back to true on insert.
	IsActive      bool      `json:"is_active"`
	Reviews       []Review  `json:"reviews,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Review is a buyer's rating of a product. The composite unique index keeps
// one review per (product, user) pair.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex:idx_review_product_user;type:varchar(36);not null"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_review_product_user;type:varchar(36);not null"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}
