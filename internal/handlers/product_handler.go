package handlers

import (
	"strconv"
	"strings"

	"storefront/internal/apperror"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the public catalog routes and the admin product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)

	adminRoutes := router.Group("/admin/products", guards.Auth, guards.Admin)
	adminRoutes.Get("/", h.HandleAdminListProducts)
	adminRoutes.Post("/", h.HandleCreateProduct)
	adminRoutes.Get("/:id", h.HandleGetProduct)
	adminRoutes.Put("/:id", h.HandleUpdateProduct)
	adminRoutes.Delete("/:id", h.HandleDeleteProduct)
}

func queryPrice(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperror.Validation("%s must be a number", key)
	}
	return &v, nil
}

// HandleListProducts lists the catalog with optional search, price range and sort.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	minPrice, err := queryPrice(c, "minPrice")
	if err != nil {
		return err
	}
	maxPrice, err := queryPrice(c, "maxPrice")
	if err != nil {
		return err
	}

	list, err := h.service.List(c.UserContext(), services.ProductFilter{
		Search:   c.Query("search"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		SortBy:   c.Query("sortBy"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    list.Products,
		"count":   list.Count,
		"total":   list.Total,
	})
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleAdminListProducts lists every product without seeding or filtering.
func (h *ProductHandler) HandleAdminListProducts(c *fiber.Ctx) error {
	products, err := h.service.All(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"count":   len(products),
	})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(err)
	}

	product, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(err)
	}

	product, err := h.service.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
		"data":    product,
	})
}
