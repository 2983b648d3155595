package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddToCartRequest is the body of POST /cart.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty" validate:"required,gte=1"`
}

// CartHandler handles HTTP requests for the signed-in user's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	cartRoutes := router.Group("/cart", guards.Auth)
	cartRoutes.Get("/", h.HandleViewCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Delete("/:id", h.HandleRemoveFromCart)
}

// HandleViewCart returns the cart priced at current product prices.
func (h *CartHandler) HandleViewCart(c *fiber.Ctx) error {
	cart, err := h.service.View(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    cart,
	})
}

// HandleAddToCart reserves stock and adds it to the cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}
	if err := h.validate.Struct(req); err != nil {
		return services.ValidationError(err)
	}

	item, created, err := h.service.Add(c.UserContext(), middleware.UserID(c), req.ProductID, req.Qty)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": "Item added to cart",
		"data":    item,
	})
}

// HandleRemoveFromCart removes one cart line.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	if err := h.service.Remove(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item removed successfully",
	})
}
