package repositories

import "bazaar/internal/models"

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	Category        string
	StoreID         string
	Search          string // matches name, case-insensitive substring
	IncludeInactive bool
}

// ProductRepository defines the interface for product and review data access.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByStore(storeID string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error

	CreateReview(review *models.Review) error
	ReviewStats(productID string) (avg float64, count int, err error)
	UpdateRating(productID string, rating float64) error
	IncrementSales(productID string, quantity int) error
}
