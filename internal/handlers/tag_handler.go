package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"catalogue/internal/apperrors"
	"catalogue/internal/services"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service *services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service *services.TagService) *TagHandler {
	return &TagHandler{
		service: service,
	}
}

// RegisterRoutes registers the tag routes. Reads are public; mutations
// go through the adminOnly middleware chain.
func (h *TagHandler) RegisterRoutes(router fiber.Router, adminOnly ...fiber.Handler) {
	tags := router.Group("/tags")
	tags.Get("/", h.HandleList)
	tags.Get("/:id", h.HandleGetByID)
	tags.Post("/", append(adminOnly, h.HandleCreate)...)
	tags.Patch("/:id", append(adminOnly, h.HandleUpdate)...)
	tags.Delete("/:id", append(adminOnly, h.HandleDelete)...)
}

// HandleList serves the paginated tag listing.
func (h *TagHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	pageSize := c.QueryInt("pageSize", 0)

	result, err := h.service.List(page, pageSize)
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGetByID serves a single tag.
func (h *TagHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return respondError(c, apperrors.New(apperrors.NotFound, "Tag non trouvé"))
	}

	tag, err := h.service.GetTagByID(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

// TagRequest is the body of tag create and update requests.
type TagRequest struct {
	Name string `json:"name"`
}

// HandleCreate creates a tag. Duplicate names conflict.
func (h *TagHandler) HandleCreate(c *fiber.Ctx) error {
	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create tag body: %v", err)
		return respondValidationError(c, err)
	}
	if req.Name == "" {
		return respondError(c, apperrors.New(apperrors.Validation, "Le champ obligatoire \"name\" n'est pas fourni."))
	}

	tag, err := h.service.CreateTag(req.Name)
	if err != nil {
		log.Printf("Error creating tag: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"tag":     tag,
	})
}

// HandleUpdate renames a tag. An absent name leaves it unchanged,
// matching the partial-update semantics of the other resources.
func (h *TagHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return respondError(c, apperrors.New(apperrors.NotFound, "Tag non trouvé"))
	}

	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update tag body: %v", err)
		return respondValidationError(c, err)
	}

	tag, err := h.service.UpdateTag(uint(id), req.Name)
	if err != nil {
		log.Printf("Error updating tag %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(tag)
}

// HandleDelete removes a tag and its product associations.
func (h *TagHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return respondError(c, apperrors.New(apperrors.NotFound, "Tag non trouvé"))
	}

	if err := h.service.DeleteTag(uint(id)); err != nil {
		log.Printf("Error deleting tag %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
