package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/pricing"
	"storefront/internal/repositories"
)

// CartService keeps per-user carts and reserves stock as lines are added.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// View returns the owner's cart joined with live product data. Lines whose
// product no longer exists are left out of the view and the total.
func (s *CartService) View(ctx context.Context, ownerID string) (*models.Cart, error) {
	items, err := s.carts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if errors.Is(err, apperror.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.CartLine{ID: item.ID, Product: product, Qty: item.Qty})
	}
	return &models.Cart{Items: lines, Total: pricing.Sum(lines)}, nil
}

// Add reserves qty units of the product and merges them into the owner's cart.
// The returned flag is true when a new line was created.
func (s *CartService) Add(ctx context.Context, ownerID, productID string, qty int) (*models.CartItem, bool, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, false, apperror.Validation("Please provide a product")
	}
	if qty < 1 {
		return nil, false, apperror.Validation("Quantity must be at least 1")
	}

	// Reserve first; the decrement only succeeds while stock >= qty.
	if err := s.products.DecrementStock(ctx, productID, qty); err != nil {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			return nil, false, apperror.Wrap(apperror.KindNotFound, err, "Product not found")
		case errors.Is(err, apperror.ErrInsufficientStock):
			return nil, false, apperror.Wrap(apperror.KindConflict, err, "Insufficient stock")
		}
		return nil, false, err
	}

	item, created, err := s.carts.AddQuantity(ctx, ownerID, productID, qty)
	if err != nil {
		if restoreErr := s.products.IncrementStock(ctx, productID, qty); restoreErr != nil {
			log.Printf("Failed to restore %d units of product %s: %v", qty, productID, restoreErr)
		}
		return nil, false, err
	}
	return item, created, nil
}

// Remove deletes one line from the owner's cart. Removing a missing line is not an error.
func (s *CartService) Remove(ctx context.Context, ownerID, lineID string) error {
	return s.carts.Delete(ctx, ownerID, lineID)
}

// Clear empties the owner's cart.
func (s *CartService) Clear(ctx context.Context, ownerID string) error {
	return s.carts.Clear(ctx, ownerID)
}
