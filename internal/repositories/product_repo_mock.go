package repositories

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

func cloneProduct(p models.Product) models.Product {
	p.Features = slices.Clone(p.Features)
	return p
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, cloneProduct(r.products[id]))
	}
	return productList, nil
}

// Count returns the number of stored products.
func (r *MockProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, apperror.ErrNotFound)
	}
	product = cloneProduct(product)
	return &product, nil
}

// GetByIDs returns the stored products among ids.
func (r *MockProductRepository) GetByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			products = append(products, cloneProduct(product))
		}
	}
	return products, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(product)
	return nil
}

// CreateMany adds several products at once.
func (r *MockProductRepository) CreateMany(_ context.Context, products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range products {
		r.insert(&products[i])
	}
	return nil
}

func (r *MockProductRepository) insert(product *models.Product) {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = cloneProduct(*product)
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, apperror.ErrNotFound)
	}
	product.UpdatedAt = time.Now()
	updated := cloneProduct(*product)
	updated.Stock = existing.Stock
	updated.CreatedAt = existing.CreatedAt
	r.products[product.ID] = updated
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %s: %w", id, apperror.ErrNotFound)
	}
	delete(r.products, id)
	r.order = slices.DeleteFunc(r.order, func(existing string) bool { return existing == id })
	return nil
}

// DecrementStock subtracts qty from the product's stock while holding the write lock.
func (r *MockProductRepository) DecrementStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, apperror.ErrNotFound)
	}
	if product.Stock < qty {
		return fmt.Errorf("product with ID %s has %d left: %w", id, product.Stock, apperror.ErrInsufficientStock)
	}
	product.Stock -= qty
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return nil
}

// IncrementStock adds qty back to the product's stock.
func (r *MockProductRepository) IncrementStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, apperror.ErrNotFound)
	}
	product.Stock += qty
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return nil
}

// SetStock overwrites the product's stock.
func (r *MockProductRepository) SetStock(_ context.Context, id string, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, apperror.ErrNotFound)
	}
	product.Stock = stock
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return nil
}
