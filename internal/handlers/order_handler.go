package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PlaceOrderRequest is the body of POST /orders. Lines come from the server-side cart.
type PlaceOrderRequest struct {
	ShippingAddress *models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
}

// UpdateStatusRequest is the body of the admin status update.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orders *services.OrderService
	carts  *services.CartService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *services.OrderService, carts *services.CartService) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		carts:  carts,
	}
}

// RegisterRoutes registers the order routes. Admin routes come first so that
// "/admin/all" is not taken for an order ID.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	orderRoutes := router.Group("/orders", guards.Auth)
	orderRoutes.Get("/admin/all", guards.Admin, h.HandleListAllOrders)
	orderRoutes.Put("/admin/:orderId/status", guards.Admin, h.HandleUpdateOrderStatus)

	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Get("/", h.HandleListMyOrders)
	orderRoutes.Get("/:orderId", h.HandleGetOrder)
	orderRoutes.Put("/:orderId/cancel", h.HandleCancelOrder)
}

// HandlePlaceOrder turns the caller's cart into an order.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	userID := middleware.UserID(c)
	cart, err := h.carts.View(c.UserContext(), userID)
	if err != nil {
		return err
	}

	order, err := h.orders.PlaceOrder(c.UserContext(), userID, cart.Items, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		log.Printf("Error placing order for user %s: %v", userID, err)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order placed successfully!",
		"data":    order,
	})
}

// HandleListMyOrders lists the caller's orders, newest first.
func (h *OrderHandler) HandleListMyOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListForUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"count":   len(orders),
	})
}

// HandleGetOrder retrieves one of the caller's orders.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.orders.GetByID(c.UserContext(), c.Params("orderId"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// HandleCancelOrder cancels one of the caller's orders.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	order, err := h.orders.Cancel(c.UserContext(), c.Params("orderId"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order cancelled successfully",
		"data":    order,
	})
}

// HandleListAllOrders lists every order with its owner. Admin only.
func (h *OrderHandler) HandleListAllOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"count":   len(orders),
	})
}

// HandleUpdateOrderStatus sets an order's status. Admin only.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), c.Params("orderId"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order status updated successfully",
		"data":    order,
	})
}
