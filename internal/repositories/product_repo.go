package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetByIDs returns the products that exist among ids; missing ones are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	CreateMany(ctx context.Context, products []models.Product) error
	// Update writes the descriptive fields of an existing product. It never writes
	// stock; see SetStock.
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error

	// DecrementStock subtracts qty from the product's stock in a single conditional
	// write that only succeeds while stock >= qty. It returns apperror.ErrInsufficientStock
	// when the condition fails and apperror.ErrNotFound when the product is missing.
	DecrementStock(ctx context.Context, id string, qty int) error
	// IncrementStock adds qty back to the product's stock.
	IncrementStock(ctx context.Context, id string, qty int) error
	// SetStock overwrites the product's stock with an absolute value.
	SetStock(ctx context.Context, id string, stock int) error
}
