package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"catalogue/internal/apperrors"
)

// respondError maps any error to its HTTP response through the
// apperrors dispatch table. Errors outside the taxonomy are treated as
// unexpected: logged and surfaced as 500 with the error detail.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body := fiber.Map{"error": appErr.Message}
		if len(appErr.MissingTags) > 0 {
			body["missingTags"] = appErr.MissingTags
		}
		return c.Status(apperrors.HTTPStatus(appErr)).JSON(body)
	}

	log.Printf("unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// respondValidationError answers 400 naming each offending field.
func respondValidationError(c *fiber.Ctx, err error) error {
	fields := fiber.Map{}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Les champs obligatoires ne sont pas fournis.",
		"fields": fields,
	})
}
