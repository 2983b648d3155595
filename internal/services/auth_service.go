package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration or change.
const MinPasswordLength = 6

// RegisterRequest is the payload of both registration endpoints.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	AdminSecret     string `json:"adminSecret"`
}

// ProfileUpdate holds the optional fields of a profile change. A password change
// needs CurrentPassword, NewPassword and ConfirmPassword together.
type ProfileUpdate struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo    repositories.UserRepository
	jwtSecret   []byte
	adminSecret string
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, adminSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtSecret:   []byte(jwtSecret),
		adminSecret: adminSecret,
		tokenTTL:    tokenTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a regular user and signs them in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	return s.register(ctx, req, models.RoleUser)
}

// RegisterAdmin creates an admin user when the shared admin secret matches.
func (s *AuthService) RegisterAdmin(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if req.AdminSecret == "" || subtle.ConstantTimeCompare([]byte(req.AdminSecret), []byte(s.adminSecret)) != 1 {
		return nil, apperror.Authentication("Invalid admin secret key")
	}
	return s.register(ctx, req, models.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, req RegisterRequest, role models.Role) (*AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, apperror.Validation("Please provide all required fields")
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperror.Validation("Passwords do not match")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, apperror.Validation("Password must be at least %d characters", MinPasswordLength)
	}
	if err := validate.Struct(req); err != nil {
		return nil, ValidationError(err)
	}

	// Check if email already exists
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Conflict("Email already registered")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicate) {
			return nil, apperror.Wrap(apperror.KindConflict, err, "Email already registered")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	log.Printf("User registered: %s (role: %s)", user.Email, user.Role)

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login authenticates a user and returns a JWT token if successful.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.Validation("Please provide email and password")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Authentication("Invalid email or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.Authentication("Invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindAuthentication, err, "Not authorized, token failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperror.Authentication("Not authorized, token failed")
	}
	if id, _ := claims["user_id"].(string); id == "" {
		return nil, apperror.Authentication("Not authorized, token failed")
	}
	return claims, nil
}

// CurrentUser loads the user behind a validated token.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

// UpdateProfile changes name, email and, when requested, password.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.CurrentUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(upd.Name); name != "" {
		user.Name = name
	}

	if email := normalizeEmail(upd.Email); email != "" && email != user.Email {
		if err := validate.Var(email, "email"); err != nil {
			return nil, apperror.Validation("Please provide a valid email")
		}
		if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
			return nil, apperror.Conflict("Email already in use")
		} else if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		user.Email = email
	}

	if upd.NewPassword != "" || upd.CurrentPassword != "" {
		if upd.CurrentPassword == "" {
			return nil, apperror.Validation("Please provide current password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(upd.CurrentPassword)); err != nil {
			return nil, apperror.Authentication("Current password is incorrect")
		}
		if upd.NewPassword != upd.ConfirmPassword {
			return nil, apperror.Validation("New passwords do not match")
		}
		if len(upd.NewPassword) < MinPasswordLength {
			return nil, apperror.Validation("Password must be at least %d characters", MinPasswordLength)
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(upd.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicate) {
			return nil, apperror.Wrap(apperror.KindConflict, err, "Email already in use")
		}
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

// DeleteAccount removes the user after re-checking their password.
func (s *AuthService) DeleteAccount(ctx context.Context, id, password string) error {
	if password == "" {
		return apperror.Validation("Please provide your password to confirm account deletion")
	}
	user, err := s.CurrentUser(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return apperror.Authentication("Incorrect password. Account not deleted")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return notFound(err, "User not found")
	}
	log.Printf("User account deleted: %s", user.Email)
	return nil
}
