// Package app assembles the HTTP application from configuration and storage.
package app

import (
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services bundles the business services built for one store.
type Services struct {
	Products *services.ProductService
	Carts    *services.CartService
	Orders   *services.OrderService
	Auth     *services.AuthService
	Checkout *services.CheckoutService
}

// NewServices wires the services onto store. publisher may be nil.
func NewServices(cfg *config.Config, store *database.Store, publisher services.EventPublisher) *Services {
	return &Services{
		Products: services.NewProductService(store.Products),
		Carts:    services.NewCartService(store.Carts, store.Products),
		Orders:   services.NewOrderService(store.Orders, store.Carts, store.Users, store.Products, publisher),
		Auth:     services.NewAuthService(store.Users, cfg.JWTSecret, cfg.AdminSecret, cfg.JWTExpire),
		Checkout: services.NewCheckoutService(),
	}
}

// NewApp builds the Fiber application with every route mounted under /api.
func NewApp(cfg *config.Config, store *database.Store, publisher services.EventPublisher) *fiber.App {
	svc := NewServices(cfg, store, publisher)

	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		ErrorHandler: handlers.NewErrorHandler(cfg.IsDevelopment()),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDevelopment()}))
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": store.Driver(),
			"events":   publisher != nil,
		})
	})

	guards := handlers.Guards{
		Auth:  middleware.AuthRequired(svc.Auth),
		Admin: middleware.AdminRequired(svc.Auth),
	}

	api := app.Group("/api")
	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(api, guards)
	handlers.NewProductHandler(svc.Products).RegisterRoutes(api, guards)
	handlers.NewCartHandler(svc.Carts).RegisterRoutes(api, guards)
	handlers.NewCheckoutHandler(svc.Checkout).RegisterRoutes(api)
	handlers.NewOrderHandler(svc.Orders, svc.Carts).RegisterRoutes(api, guards)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})

	return app
}
