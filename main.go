package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"catalogue/internal/authorize"
	"catalogue/internal/config"
	"catalogue/internal/handlers"
	"catalogue/internal/middleware"
	"catalogue/internal/models"
	"catalogue/internal/repositories"
	"catalogue/internal/services"
)

func main() {
	// --- Configuration ---
	// Loaded once; the process dies here when the signing secret is
	// missing rather than running with unverifiable tokens.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Tag{}, &models.User{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Initialize Services ---
	reconciler := services.NewTagReconciler(tagRepo)
	productService := services.NewProductService(productRepo, reconciler)
	tagService := services.NewTagService(tagRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	tagHandler := handlers.NewTagHandler(tagService)
	userHandler := handlers.NewUserHandler(authService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${method} ${path}\n",
	}))

	// The admin chain: authenticate, then check the role policy.
	// Reads never pass through it.
	adminOnly := []fiber.Handler{
		middleware.AuthRequired(authService),
		middleware.RequireAction(authorize.ActionCatalogWrite),
	}

	// --- API Routes ---
	productHandler.RegisterRoutes(app, adminOnly...)
	tagHandler.RegisterRoutes(app, adminOnly...)
	userHandler.RegisterRoutes(app,
		middleware.OptionalAuth(authService),
		middleware.AuthRequired(authService),
		middleware.RequireAction(authorize.ActionUserList),
	)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
