package handlers

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"catalogue/internal/apperrors"
	"catalogue/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Reads are public;
// mutations go through the adminOnly middleware chain.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, adminOnly ...fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/:id", h.HandleGetByID)
	products.Post("/", append(adminOnly, h.HandleCreate)...)
	products.Patch("/:id", append(adminOnly, h.HandleUpdate)...)
	products.Delete("/:id", append(adminOnly, h.HandleDelete)...)
	// Permissive, additive tag association. Unlike the strict tags
	// field on POST/PATCH, unknown names are created on demand and
	// prior associations are kept.
	products.Post("/:id/tags", append(adminOnly, h.HandleAddTags)...)
}

// HandleList serves the public catalog view: in-stock products,
// optionally filtered by tag names, paginated. Malformed page or
// pageSize values fall back to defaults instead of erroring.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	pageSize := c.QueryInt("pageSize", 0)
	tagNames := splitTagNames(c.Query("tags"))

	result, err := h.service.List(page, pageSize, tagNames)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGetByID serves a single product with its tags.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return respondError(c, apperrors.New(apperrors.NotFound, "Produit non trouvé"))
	}

	product, err := h.service.GetProductByID(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// CreateProductRequest is the body of POST /products. Tags must name
// existing tags; unknown names fail the whole request.
type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required"`
	Price       int      `json:"price" validate:"gte=0"`
	Description string   `json:"description" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Tags        []string `json:"tags"`
}

// HandleCreate creates a product under strict tag reconciliation.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return respondValidationError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	product, err := h.service.CreateProduct(services.CreateProductInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		Tags:        req.Tags,
	})
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// UpdateProductRequest is the partial body of PATCH /products/:id.
// Only supplied fields change; a supplied tags array strictly replaces
// the prior tag set.
type UpdateProductRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1"`
	Price       *int      `json:"price" validate:"omitempty,gte=0"`
	Description *string   `json:"description"`
	Stock       *int      `json:"stock" validate:"omitempty,gte=0"`
	Tags        *[]string `json:"tags"`
}

// HandleUpdate applies a partial product update.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return respondError(c, apperrors.New(apperrors.NotFound, "Produit non trouvé"))
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return respondValidationError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	product, err := h.service.UpdateProduct(uint(id), services.UpdateProductInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		Tags:        req.Tags,
	})
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(product)
}

// AddTagsRequest is the body of POST /products/:id/tags.
type AddTagsRequest struct {
	Tags []string `json:"tags" validate:"required,min=1"`
}

// HandleAddTags additively associates tags with a product, creating
// the ones that do not exist yet.
func (h *ProductHandler) HandleAddTags(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return respondError(c, apperrors.New(apperrors.NotFound, "Produit non trouvé"))
	}

	var req AddTagsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add tags body: %v", err)
		return respondValidationError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	product, err := h.service.AddProductTags(uint(id), req.Tags)
	if err != nil {
		log.Printf("Error adding tags to product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDelete removes a product and its tag associations.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return respondError(c, apperrors.New(apperrors.NotFound, "Produit non trouvé"))
	}

	if err := h.service.DeleteProduct(uint(id)); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// splitTagNames parses the comma-separated tags query parameter.
func splitTagNames(raw string) []string {
	if raw == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
