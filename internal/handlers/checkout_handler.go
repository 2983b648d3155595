package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutRequest is the body of the legacy checkout.
type CheckoutRequest struct {
	CartItems []services.CheckoutLine `json:"cartItems"`
}

// CheckoutHandler serves the mock checkout that predates persisted orders.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers the checkout route.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// HandleCheckout returns a receipt for the posted lines.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	receipt, err := h.service.Receipt(req.CartItems)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    receipt,
	})
}
