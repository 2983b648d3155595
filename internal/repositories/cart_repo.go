package repositories

import (
	"context"

	"storefront/internal/models"
)

// CartRepository defines the interface for cart line data access. Every method is
// scoped to one owner's cart.
type CartRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.CartItem, error)
	// AddQuantity increments the owner's line for productID by qty, creating the line
	// when none exists. created reports which of the two happened.
	AddQuantity(ctx context.Context, ownerID, productID string, qty int) (item *models.CartItem, created bool, err error)
	// Delete removes one line. Removing a missing line is not an error.
	Delete(ctx context.Context, ownerID, id string) error
	Clear(ctx context.Context, ownerID string) error
}
