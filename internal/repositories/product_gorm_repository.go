package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalogue/internal/apperrors"
	"catalogue/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// filtered builds the WHERE clauses of params onto a fresh query. The
// tag filter matches products carrying at least one of the names (OR
// across names), via a subquery on the join table so a product never
// duplicates in the result.
func (r *GORMProductRepository) filtered(params ProductListParams) *gorm.DB {
	query := r.db.Model(&models.Product{})
	if params.InStockOnly {
		query = query.Where("stock > 0")
	}
	if len(params.TagNames) > 0 {
		sub := r.db.Table("product_tags").
			Select("product_tags.product_id").
			Joins("JOIN tags ON tags.id = product_tags.tag_id").
			Where("tags.name IN ?", params.TagNames)
		query = query.Where("products.id IN (?)", sub)
	}
	return query
}

// List retrieves one page of products matching params, together with
// the total match count before paging.
func (r *GORMProductRepository) List(params ProductListParams) ([]models.Product, int64, error) {
	var total int64
	if err := r.filtered(params).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := r.filtered(params).
		Preload("Tags").
		Order("products.id").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product with its tags.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Tags").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "Produit non trouvé")
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts the product; any tags already set on it become join
// rows in the same statement.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists the product's scalar fields. Tag associations are
// deliberately omitted here; they only move through ReplaceTags and
// AppendTags.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Omit(clause.Associations).Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.NotFound, "Produit non trouvé")
	}
	return nil
}

// Delete removes the product and its tag associations in one
// transaction, so no dangling join row survives.
func (r *GORMProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.NotFound, "Produit non trouvé")
			}
			return fmt.Errorf("failed to get product %d for deletion: %w", id, err)
		}
		if err := tx.Model(&product).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to clear tags of product %d: %w", id, err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product %d: %w", id, err)
		}
		return nil
	})
}

// ReplaceTags rewrites the product's tag set to exactly tags. Old
// associations not in tags are removed (set semantics).
func (r *GORMProductRepository) ReplaceTags(product *models.Product, tags []models.Tag) error {
	if err := r.db.Model(product).Association("Tags").Replace(tags); err != nil {
		return fmt.Errorf("failed to replace tags of product %d: %w", product.ID, err)
	}
	return nil
}

// AppendTags adds tags to the product, keeping existing associations.
// Appending an already-associated tag is a no-op.
func (r *GORMProductRepository) AppendTags(product *models.Product, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	if err := r.db.Model(product).Association("Tags").Append(tags); err != nil {
		return fmt.Errorf("failed to append tags to product %d: %w", product.ID, err)
	}
	return nil
}
