package repositories

import (
	"context"

	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are never deleted.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// ListByUser and ListAll return orders newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	// TransitionStatus sets status only while the stored status is one of from, in a
	// single conditional write. It returns apperror.ErrConditionFailed when the order
	// exists in another status.
	TransitionStatus(ctx context.Context, id string, from []models.OrderStatus, status models.OrderStatus) (*models.Order, error)
}
