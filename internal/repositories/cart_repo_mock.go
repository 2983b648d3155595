package repositories

import (
	"context"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	// lines are kept per owner in insertion order.
	lines map[string][]models.CartItem
	mu    sync.Mutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		lines: make(map[string][]models.CartItem),
	}
}

// ListByOwner returns the owner's cart lines.
func (r *MockCartRepository) ListByOwner(_ context.Context, ownerID string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]models.CartItem, len(r.lines[ownerID]))
	copy(items, r.lines[ownerID])
	return items, nil
}

// AddQuantity increments an existing line or appends a new one.
func (r *MockCartRepository) AddQuantity(_ context.Context, ownerID, productID string, qty int) (*models.CartItem, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	lines := r.lines[ownerID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Qty += qty
			lines[i].UpdatedAt = now
			item := lines[i]
			return &item, false, nil
		}
	}

	item := models.CartItem{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		ProductID: productID,
		Qty:       qty,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.lines[ownerID] = append(lines, item)
	return &item, true, nil
}

// Delete removes one of the owner's lines if present.
func (r *MockCartRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.lines[ownerID]
	for i := range lines {
		if lines[i].ID == id {
			r.lines[ownerID] = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes all of the owner's lines.
func (r *MockCartRepository) Clear(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lines, ownerID)
	return nil
}
