package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DeleteAccountRequest confirms account deletion with the current password.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/register-admin", h.HandleRegisterAdmin)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/me", guards.Auth, h.HandleMe)
	authRoutes.Put("/profile", guards.Auth, h.HandleUpdateProfile)
	authRoutes.Delete("/account", guards.Auth, h.HandleDeleteAccount)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}
	// Only the admin endpoint may look at the secret.
	req.AdminSecret = ""

	result, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		log.Printf("Error registering user %s: %v", req.Email, err)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"token":   result.Token,
		"user":    result.User,
	})
}

// HandleRegisterAdmin registers an admin when the shared secret matches.
func (h *AuthHandler) HandleRegisterAdmin(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	result, err := h.authService.RegisterAdmin(c.UserContext(), req)
	if err != nil {
		log.Printf("Error registering admin %s: %v", req.Email, err)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Admin account created successfully!",
		"token":   result.Token,
		"user":    result.User,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

// HandleMe returns the signed-in user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// HandleUpdateProfile updates name, email or password of the signed-in user.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req services.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// HandleDeleteAccount deletes the signed-in user after checking their password.
func (h *AuthHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	var req DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	if err := h.authService.DeleteAccount(c.UserContext(), middleware.UserID(c), req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account deleted successfully",
	})
}
