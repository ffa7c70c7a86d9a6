// Package app assembles the storage, services and HTTP routes from a Config.
package app

import (
	"fmt"
	"log"
	"time"

	"devurai/internal/config"
	"devurai/internal/handlers"
	"devurai/internal/middleware"
	"devurai/internal/repositories"
	"devurai/internal/services"
	"devurai/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// App is a fully wired API server.
type App struct {
	Fiber    *fiber.App
	DB       *gorm.DB
	Auth     *services.AuthService
	Tokens   *services.TokenService
	Products *services.ProductService

	mq *rabbitmq.Client
}

// New opens the database, connects the optional event broker and registers
// every route.
func New(cfg *config.Config) (*App, error) {
	db, err := repositories.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	a := &App{DB: db}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		a.mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			a.closeDB()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		publisher = a.mq
	} else {
		log.Println("RABBITMQ_URL not set, product events are disabled")
	}

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	a.Tokens = services.NewTokenService(userRepo, cfg.JWTSecret)
	a.Auth = services.NewAuthService(userRepo, a.Tokens)
	a.Products = services.NewProductService(productRepo, publisher)

	a.Fiber = fiber.New()
	a.Fiber.Use(recover.New())
	if cfg.Env != config.EnvTest {
		a.Fiber.Use(logger.New())
	}
	a.registerRoutes(a.Tokens)
	return a, nil
}

func (a *App) registerRoutes(verifier middleware.TokenVerifier) {
	authenticate := middleware.Authenticate(verifier, services.AccessAuth)

	a.Fiber.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Registered ahead of the /products group so its middleware does not
	// authenticate a preflight a second time.
	a.Fiber.Options("/*", authenticate, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).Send(nil)
	})

	handlers.NewUserHandler(a.Auth).RegisterRoutes(a.Fiber, authenticate)
	handlers.NewProductHandler(a.Products).RegisterRoutes(a.Fiber.Group("/products", authenticate))
}

// Close releases the broker connection and the database pool.
func (a *App) Close() error {
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}
	return a.closeDB()
}

func (a *App) closeDB() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
