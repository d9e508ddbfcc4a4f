package services

import (
	"catalogue/internal/models"
	"catalogue/internal/repositories"
)

// ProductPage is one page of the visible catalog.
type ProductPage struct {
	Products      []models.Product `json:"products"`
	TotalProducts int64            `json:"totalProducts"`
	TotalPages    int              `json:"totalPages"`
	CurrentPage   int              `json:"currentPage"`
}

// CreateProductInput carries the fields of a product creation request.
// Tags is the requested tag-name set, reconciled strictly.
type CreateProductInput struct {
	Title       string
	Price       int
	Description string
	Stock       int
	Tags        []string
}

// UpdateProductInput carries a partial update; nil fields are left
// untouched. A non-nil Tags fully replaces the tag set (strict).
type UpdateProductInput struct {
	Title       *string
	Price       *int
	Description *string
	Stock       *int
	Tags        *[]string
}

// ProductService handles business logic related to products: the
// paginated/filtered catalog view and tag-reconciled mutation.
type ProductService struct {
	productRepo repositories.ProductRepository
	reconciler  *TagReconciler
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, reconciler *TagReconciler) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		reconciler:  reconciler,
	}
}

// List returns one page of in-stock products, optionally narrowed to
// those carrying at least one of tagNames. Malformed pagination input
// falls back to page 1, size 10.
func (s *ProductService) List(page, pageSize int, tagNames []string) (*ProductPage, error) {
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := s.productRepo.List(repositories.ProductListParams{
		Offset:      (page - 1) * pageSize,
		Limit:       pageSize,
		InStockOnly: true,
		TagNames:    dedupe(tagNames),
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	return &ProductPage{
		Products:      products,
		TotalProducts: total,
		TotalPages:    totalPages(total, pageSize),
		CurrentPage:   page,
	}, nil
}

// GetProductByID retrieves a single product with its tags.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct creates a product under strict tag reconciliation:
// any unknown tag name fails the whole request and nothing is written.
func (s *ProductService) CreateProduct(in CreateProductInput) (*models.Product, error) {
	tags, err := s.reconciler.Resolve(in.Tags, ReconcileStrict)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		Stock:       in.Stock,
		Tags:        tags,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a partial update. When Tags is supplied it is
// reconciled strictly and fully replaces the prior tag set; tag
// resolution runs before any write so a failure leaves the product
// untouched.
func (s *ProductService) UpdateProduct(id uint, in UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	var tags []models.Tag
	if in.Tags != nil {
		tags, err = s.reconciler.Resolve(*in.Tags, ReconcileStrict)
		if err != nil {
			return nil, err
		}
	}

	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	if in.Tags != nil {
		if err := s.productRepo.ReplaceTags(product, tags); err != nil {
			return nil, err
		}
	}

	return s.productRepo.GetByID(id)
}

// AddProductTags associates the named tags with the product under
// permissive reconciliation: missing tags are created, duplicates in
// the request collapse, and prior associations are kept (union).
func (s *ProductService) AddProductTags(id uint, names []string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	tags, err := s.reconciler.Resolve(names, ReconcilePermissive)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.AppendTags(product, tags); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(id)
}

// DeleteProduct removes the product and its tag associations.
func (s *ProductService) DeleteProduct(id uint) error {
	return s.productRepo.Delete(id)
}
