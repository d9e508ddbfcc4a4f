package repositories

import "catalogue/internal/models"

// ProductListParams narrows and pages a product listing.
type ProductListParams struct {
	Offset      int
	Limit       int
	InStockOnly bool     // keep only products with stock > 0
	TagNames    []string // keep products carrying at least one of these tags
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(params ProductListParams) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	// ReplaceTags rewrites the product's tag set to exactly tags.
	ReplaceTags(product *models.Product, tags []models.Tag) error
	// AppendTags adds tags to the product's tag set, keeping existing
	// associations.
	AppendTags(product *models.Product, tags []models.Tag) error
}
