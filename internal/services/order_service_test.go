package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	products  *repositories.MockProductRepository
	carts     *repositories.MockCartRepository
	users     *repositories.MockUserRepository
	cart      *services.CartService
	orders    *services.OrderService
	publisher *MockPublisher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		products:  repositories.NewMockProductRepository(),
		carts:     repositories.NewMockCartRepository(),
		users:     repositories.NewMockUserRepository(),
		publisher: new(MockPublisher),
	}
	f.cart = services.NewCartService(f.carts, f.products)
	f.orders = services.NewOrderService(repositories.NewMockOrderRepository(), f.carts, f.users, f.products, f.publisher)
	return f
}

func address() *models.ShippingAddress {
	return &models.ShippingAddress{
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Phone:  "555-0100",
		Street: "1 Analytical Way",
		City:   "London",
		Zip:    "N1",
	}
}

// placeFromCart fills the cart and places an order from its server-side view.
func (f *orderFixture) placeFromCart(t *testing.T, userID string, price float64, qty int) *models.Order {
	t.Helper()
	ctx := context.Background()
	product := seedProduct(t, f.products, "Widget", price, 100)
	_, _, err := f.cart.Add(ctx, userID, product.ID, qty)
	require.NoError(t, err)
	cart, err := f.cart.View(ctx, userID)
	require.NoError(t, err)
	order, err := f.orders.PlaceOrder(ctx, userID, cart.Items, address(), "")
	require.NoError(t, err)
	return order
}

func TestOrderService_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.publisher.On("Publish", services.EventOrderCreated, mock.Anything).Return(nil).Once()

	order := f.placeFromCart(t, "user-1", 19.99, 3)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 59.97, order.Total)
	assert.Equal(t, models.DefaultPaymentMethod, order.PaymentMethod)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Widget", order.Items[0].Name)
	assert.Equal(t, 19.99, order.Items[0].Price)
	assert.Equal(t, 3, order.Items[0].Qty)

	cart, err := f.cart.View(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	f.publisher.AssertExpectations(t)
	body := f.publisher.Calls[0].Arguments.Get(1).([]byte)
	var event services.OrderEvent
	require.NoError(t, json.Unmarshal(body, &event))
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, services.EventOrderCreated, event.Type)
}

func TestOrderService_PlaceOrderKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	order := f.placeFromCart(t, "user-1", 25, 2)

	product, err := f.products.GetByID(ctx, order.Items[0].ProductID)
	require.NoError(t, err)
	product.Price = 99
	require.NoError(t, f.products.Update(ctx, product))

	stored, err := f.orders.GetByID(ctx, order.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 25.0, stored.Items[0].Price)
	assert.Equal(t, 50.0, stored.Total)
}

func TestOrderService_PlaceOrderValidation(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	product := seedProduct(t, f.products, "Widget", 5, 10)
	lines := []models.CartLine{{ID: "line-1", Product: product, Qty: 1}}

	_, err := f.orders.PlaceOrder(ctx, "user-1", nil, address(), "")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.orders.PlaceOrder(ctx, "user-1", lines, nil, "")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	incomplete := address()
	incomplete.Zip = ""
	_, err = f.orders.PlaceOrder(ctx, "user-1", lines, incomplete, "")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	noEmail := address()
	noEmail.Email = ""
	_, err = f.orders.PlaceOrder(ctx, "user-1", lines, noEmail, "")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	orders, err := f.orders.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, orders)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrderAcceptsFreeFormEmail(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	product := seedProduct(t, f.products, "Widget", 5, 10)

	addr := address()
	addr.Email = "ada at example"
	order, err := f.orders.PlaceOrder(ctx, "user-1", []models.CartLine{{ID: "line-1", Product: product, Qty: 1}}, addr, "")
	require.NoError(t, err)
	assert.Equal(t, "ada at example", order.ShippingAddress.Email)
}

func TestOrderService_PublisherFailureDoesNotFailOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	order := f.placeFromCart(t, "user-1", 10, 1)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestOrderService_NilPublisher(t *testing.T) {
	ctx := context.Background()
	products := repositories.NewMockProductRepository()
	product := seedProduct(t, products, "Widget", 10, 10)
	orders := services.NewOrderService(repositories.NewMockOrderRepository(), repositories.NewMockCartRepository(), repositories.NewMockUserRepository(), products, nil)

	order, err := orders.PlaceOrder(ctx, "user-1", []models.CartLine{{Product: product, Qty: 2}}, address(), "PayPal")
	require.NoError(t, err)
	assert.Equal(t, "PayPal", order.PaymentMethod)
	assert.Equal(t, 20.0, order.Total)
}

func TestOrderService_GetByIDOwnership(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	order := f.placeFromCart(t, "user-1", 10, 1)

	got, err := f.orders.GetByID(ctx, order.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.orders.GetByID(ctx, order.ID, "user-2")
	assert.True(t, apperror.Is(err, apperror.KindAuthorization))

	_, err = f.orders.GetByID(ctx, "missing", "user-1")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	mine, err := f.orders.ListForUser(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestOrderService_ListAllAttachesOwner(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	owner := &models.User{Name: "Ada", Email: "ada@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, f.users.Create(ctx, owner))
	kept := f.placeFromCart(t, owner.ID, 10, 1)
	gone := f.placeFromCart(t, "ghost", 10, 1)

	all, err := f.orders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, o := range all {
		if o.UserID == owner.ID {
			require.NotNil(t, o.Owner)
			assert.Equal(t, "Ada", o.Owner.Name)
			assert.Equal(t, "ada@example.com", o.Owner.Email)
		} else {
			assert.Nil(t, o.Owner)
		}
		require.Len(t, o.Items, 1)
		require.NotNil(t, o.Items[0].Product)
		assert.Equal(t, o.Items[0].ProductID, o.Items[0].Product.ID)
		assert.Equal(t, "Widget", o.Items[0].Product.Name)
	}

	// A deleted product leaves its snapshot in place with no live product.
	require.NoError(t, f.products.Delete(ctx, gone.Items[0].ProductID))
	all, err = f.orders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, o := range all {
		require.Len(t, o.Items, 1)
		switch o.ID {
		case kept.ID:
			assert.NotNil(t, o.Items[0].Product)
		case gone.ID:
			assert.Nil(t, o.Items[0].Product)
			assert.Equal(t, "Widget", o.Items[0].Name)
			assert.Equal(t, 10.0, o.Items[0].Price)
		}
	}

	// Owner-facing reads never carry the join.
	mine, err := f.orders.ListForUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Nil(t, mine[0].Items[0].Product)
}

func TestOrderService_UpdateStatusIsPermissive(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	order := f.placeFromCart(t, "user-1", 10, 1)

	for _, status := range []models.OrderStatus{models.StatusDelivered, models.StatusPending, models.StatusCancelled, models.StatusProcessing} {
		updated, err := f.orders.UpdateStatus(ctx, order.ID, status.String())
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err := f.orders.UpdateStatus(ctx, order.ID, "Lost")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.orders.UpdateStatus(ctx, order.ID, "")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.orders.UpdateStatus(ctx, "missing", models.StatusShipped.String())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	f.publisher.AssertCalled(t, "Publish", services.EventOrderStatusUpdated, mock.Anything)
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	t.Run("owner cancels pending order", func(t *testing.T) {
		order := f.placeFromCart(t, "user-1", 10, 1)
		cancelled, err := f.orders.Cancel(ctx, order.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
		f.publisher.AssertCalled(t, "Publish", services.EventOrderCancelled, mock.Anything)
	})

	t.Run("processing order can be cancelled", func(t *testing.T) {
		order := f.placeFromCart(t, "user-1", 10, 1)
		_, err := f.orders.UpdateStatus(ctx, order.ID, models.StatusProcessing.String())
		require.NoError(t, err)
		cancelled, err := f.orders.Cancel(ctx, order.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
	})

	t.Run("shipped order conflicts", func(t *testing.T) {
		order := f.placeFromCart(t, "user-1", 10, 1)
		_, err := f.orders.UpdateStatus(ctx, order.ID, models.StatusShipped.String())
		require.NoError(t, err)
		_, err = f.orders.Cancel(ctx, order.ID, "user-1")
		assert.True(t, apperror.Is(err, apperror.KindConflict))

		stored, err := f.orders.GetByID(ctx, order.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusShipped, stored.Status)
	})

	t.Run("cancelled twice conflicts", func(t *testing.T) {
		order := f.placeFromCart(t, "user-1", 10, 1)
		_, err := f.orders.Cancel(ctx, order.ID, "user-1")
		require.NoError(t, err)
		_, err = f.orders.Cancel(ctx, order.ID, "user-1")
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		order := f.placeFromCart(t, "user-1", 10, 1)
		_, err := f.orders.Cancel(ctx, order.ID, "user-2")
		assert.True(t, apperror.Is(err, apperror.KindAuthorization))
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := f.orders.Cancel(ctx, "missing", "user-1")
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

// shippingOrderRepository ships an order right after its first read, as an admin
// would between an owner's read and write.
type shippingOrderRepository struct {
	*repositories.MockOrderRepository
	shipOnRead bool
}

func (r *shippingOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	order, err := r.MockOrderRepository.GetByID(ctx, id)
	if err == nil && r.shipOnRead {
		r.shipOnRead = false
		if _, err := r.MockOrderRepository.UpdateStatus(ctx, id, models.StatusShipped); err != nil {
			return nil, err
		}
	}
	return order, err
}

func TestOrderService_CancelLosesToConcurrentShipment(t *testing.T) {
	ctx := context.Background()
	products := repositories.NewMockProductRepository()
	carts := repositories.NewMockCartRepository()
	repo := &shippingOrderRepository{MockOrderRepository: repositories.NewMockOrderRepository()}
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	orders := services.NewOrderService(repo, carts, repositories.NewMockUserRepository(), products, publisher)

	product := seedProduct(t, products, "Widget", 10, 10)
	order, err := orders.PlaceOrder(ctx, "user-1", []models.CartLine{{ID: "line-1", Product: product, Qty: 1}}, address(), "")
	require.NoError(t, err)

	repo.shipOnRead = true
	_, err = orders.Cancel(ctx, order.ID, "user-1")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Contains(t, err.Error(), "Cannot cancel Shipped orders")

	stored, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, stored.Status)
	publisher.AssertNotCalled(t, "Publish", services.EventOrderCancelled, mock.Anything)
}

func TestCheckoutService_Receipt(t *testing.T) {
	service := services.NewCheckoutService()

	receipt, err := service.Receipt([]services.CheckoutLine{
		{ProductID: "1", Name: "Headphones", Price: 2999, Qty: 2},
		{ProductID: "2", Name: "Mouse", Price: 1499, Qty: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 7497.0, receipt.Total)
	assert.NotEmpty(t, receipt.Message)
	assert.False(t, receipt.Timestamp.IsZero())

	_, err = service.Receipt(nil)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
