package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"catalogue/internal/authorize"
	"catalogue/internal/models"
	"catalogue/internal/services"
)

// localsUserKey is where the auth gate stores the resolved identity.
const localsUserKey = "currentUser"

// CurrentUser returns the identity attached by the auth gate, or nil
// when the request was anonymous.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// authenticate verifies the bearer token and resolves it to a live
// account, attaching it to the request context. The gate is linear:
// any failure stops the pipeline with 401.
func authenticate(c *fiber.Ctx, authService *services.AuthService) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token manquant",
		})
	}

	userID, err := authService.VerifyToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token invalide",
		})
	}

	user, err := authService.GetUserByID(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Utilisateur non trouvé",
		})
	}

	c.Locals(localsUserKey, user)
	return c.Next()
}

// AuthRequired rejects any request without a valid bearer token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authenticate(c, authService)
	}
}

// OptionalAuth lets anonymous requests through but still authenticates
// when an Authorization header is present. A present-but-invalid token
// fails with 401 rather than silently downgrading to anonymous.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		return authenticate(c, authService)
	}
}

// RequireAction denies authenticated callers that the role policy does
// not allow to perform action. Denial is 403, never 401: the caller's
// identity is established, only its permissions fall short.
func RequireAction(action authorize.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authorize.Allow(CurrentUser(c), action) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Accès refusé. Vous n'avez pas les permissions.",
			})
		}
		return c.Next()
	}
}
