package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"catalogue/internal/middleware"
	"catalogue/internal/services"
)

// UserHandler handles HTTP requests for accounts and authentication.
type UserHandler struct {
	service  *services.AuthService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.AuthService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes. Signup goes through the
// optional auth gate so an admin token can accompany a role grant;
// listing all users requires the full admin chain.
func (h *UserHandler) RegisterRoutes(router fiber.Router, optionalAuth fiber.Handler, adminOnly ...fiber.Handler) {
	users := router.Group("/users")
	users.Post("/signup", optionalAuth, h.HandleSignup)
	users.Post("/login", h.HandleLogin)
	users.Get("/all", append(adminOnly, h.HandleGetAll)...)
}

// SignupRequest is the body of POST /users/signup. Role is honored
// only for authenticated admin callers.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// HandleSignup registers a new account.
func (h *UserHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signup body: %v", err)
		return respondValidationError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.service.Signup(services.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, middleware.CurrentUser(c))
	if err != nil {
		log.Printf("Error signing up %s: %v", req.Email, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates and returns a bearer token.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login body: %v", err)
		return respondValidationError(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	token, user, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// HandleGetAll lists every account. Admin only.
func (h *UserHandler) HandleGetAll(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return respondError(c, err)
	}
	return c.JSON(users)
}
