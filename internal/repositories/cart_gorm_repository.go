package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// ListByOwner returns the owner's cart lines, oldest first.
func (r *GORMCartRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart for %s: %w", ownerID, err)
	}
	return items, nil
}

func (r *GORMCartRepository) increment(ctx context.Context, ownerID, productID string, qty int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("owner_id = ? AND product_id = ?", ownerID, productID).
		UpdateColumns(map[string]interface{}{
			"qty":        gorm.Expr("qty + ?", qty),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update cart line: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// AddQuantity increments the existing line or inserts a new one. The unique index on
// (owner_id, product_id) turns a lost insert race into a second increment.
func (r *GORMCartRepository) AddQuantity(ctx context.Context, ownerID, productID string, qty int) (*models.CartItem, bool, error) {
	updated, err := r.increment(ctx, ownerID, productID, qty)
	if err != nil {
		return nil, false, err
	}

	created := false
	if !updated {
		item := models.CartItem{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			ProductID: productID,
			Qty:       qty,
		}
		err := r.db.WithContext(ctx).Create(&item).Error
		switch {
		case err == nil:
			created = true
		case errors.Is(err, gorm.ErrDuplicatedKey):
			if _, err := r.increment(ctx, ownerID, productID, qty); err != nil {
				return nil, false, err
			}
		default:
			return nil, false, fmt.Errorf("failed to create cart line: %w", err)
		}
	}

	var item models.CartItem
	if err := r.db.WithContext(ctx).First(&item, "owner_id = ? AND product_id = ?", ownerID, productID).Error; err != nil {
		return nil, false, gormError(err, "cart line for product %s", productID)
	}
	return &item, created, nil
}

// Delete removes one of the owner's lines.
func (r *GORMCartRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		return fmt.Errorf("failed to delete cart line %s: %w", id, err)
	}
	return nil
}

// Clear removes all of the owner's lines.
func (r *GORMCartRepository) Clear(ctx context.Context, ownerID string) error {
	if err := r.db.WithContext(ctx).Delete(&models.CartItem{}, "owner_id = ?", ownerID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for %s: %w", ownerID, err)
	}
	return nil
}
