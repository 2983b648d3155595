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

// OrderService handles business logic related to orders.
type OrderService struct {
	orders    repositories.OrderRepository
	carts     repositories.CartRepository
	users     repositories.UserRepository
	products  repositories.ProductRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orders repositories.OrderRepository, carts repositories.CartRepository, users repositories.UserRepository, products repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		users:     users,
		products:  products,
		publisher: publisher,
	}
}

// PlaceOrder snapshots lines into a new Pending order and empties the user's cart.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, lines []models.CartLine, address *models.ShippingAddress, paymentMethod string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, apperror.Validation("Cart is empty")
	}
	if address == nil {
		return nil, apperror.Validation("Please provide shipping address")
	}
	if err := validate.Struct(address); err != nil {
		return nil, ValidationError(err)
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Product == nil {
			return nil, apperror.Validation("Cart line %s has no product", line.ID)
		}
		if line.Qty < 1 {
			return nil, apperror.Validation("Quantity must be at least 1")
		}
		items = append(items, models.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Qty:       line.Qty,
		})
	}

	if strings.TrimSpace(paymentMethod) == "" {
		paymentMethod = models.DefaultPaymentMethod
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		Total:           pricing.Sum(items),
		ShippingAddress: *address,
		PaymentMethod:   paymentMethod,
		Status:          models.StatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	log.Printf("Order %s placed by user %s, total %.2f", order.ID, userID, order.Total)

	// The order is already committed; a failed clear only leaves stale lines behind.
	if err := s.carts.Clear(ctx, userID); err != nil {
		log.Printf("Failed to clear cart of user %s after order %s: %v", userID, order.ID, err)
	}

	publishOrderEvent(s.publisher, EventOrderCreated, order)
	return order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// GetByID returns an order only to its owner.
func (s *OrderService) GetByID(ctx context.Context, orderID, requesterID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "Order not found")
	}
	if order.UserID != requesterID {
		return nil, apperror.Forbidden("You don't have permission to view this order")
	}
	return order, nil
}

// ListAll returns every order, newest first, with its owner's summary and each
// line's live product attached.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}
	if err := s.attachOwners(ctx, orders); err != nil {
		return nil, err
	}
	if err := s.attachProducts(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) attachOwners(ctx context.Context, orders []models.Order) error {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	owners := make(map[string]*models.UserSummary, len(users))
	for i := range users {
		owners[users[i].ID] = users[i].Summary()
	}
	for i := range orders {
		orders[i].Owner = owners[orders[i].UserID]
	}
	return nil
}

func (s *OrderService) attachProducts(ctx context.Context, orders []models.Order) error {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, o := range orders {
		for _, item := range o.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	live := make(map[string]*models.Product, len(products))
	for i := range products {
		live[products[i].ID] = &products[i]
	}
	for i := range orders {
		for j := range orders[i].Items {
			orders[i].Items[j].Product = live[orders[i].Items[j].ProductID]
		}
	}
	return nil
}

// UpdateStatus sets any of the known statuses. Admin use only.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if strings.TrimSpace(status) == "" {
		return nil, apperror.Validation("Please provide a status")
	}
	next := models.OrderStatus(status)
	if !next.IsValid() {
		names := make([]string, len(models.OrderStatuses))
		for i, st := range models.OrderStatuses {
			names[i] = st.String()
		}
		return nil, apperror.Validation("Invalid status. Must be one of: %s", strings.Join(names, ", "))
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return nil, notFound(err, "Order not found")
	}
	log.Printf("Order %s status set to %s", order.ID, order.Status)

	publishOrderEvent(s.publisher, EventOrderStatusUpdated, order)
	return order, nil
}

// Cancel lets the owner cancel a Pending or Processing order.
func (s *OrderService) Cancel(ctx context.Context, orderID, userID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "Order not found")
	}
	if order.UserID != userID {
		return nil, apperror.Forbidden("You don't have permission to cancel this order")
	}
	if !order.Status.Cancellable() {
		return nil, cannotCancel(order.Status)
	}

	cancelled, err := s.orders.TransitionStatus(ctx, orderID, models.CancellableStatuses, models.StatusCancelled)
	if errors.Is(err, apperror.ErrConditionFailed) {
		if current, getErr := s.orders.GetByID(ctx, orderID); getErr == nil {
			return nil, cannotCancel(current.Status)
		}
		return nil, apperror.Wrap(apperror.KindConflict, err, "Order can no longer be cancelled")
	}
	if err != nil {
		return nil, notFound(err, "Order not found")
	}
	log.Printf("Order %s cancelled by user %s", cancelled.ID, userID)

	publishOrderEvent(s.publisher, EventOrderCancelled, cancelled)
	return cancelled, nil
}

func cannotCancel(status models.OrderStatus) error {
	return apperror.Conflict("Cannot cancel %s orders. Only Pending or Processing orders can be cancelled.", status)
}
