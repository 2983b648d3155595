package services_test

import (
	"context"
	"testing"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestProductService_ListSeedsEmptyStoreOnce(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)

	list, err := service.List(ctx, services.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 6, list.Total)
	assert.Equal(t, 6, list.Count)
	for _, p := range list.Products {
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, models.DefaultCategory, p.Category)
	}

	// Emptying the catalog afterwards must not trigger a second seed.
	for _, p := range list.Products {
		require.NoError(t, repo.Delete(ctx, p.ID))
	}
	list, err = service.List(ctx, services.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.Empty(t, list.Products)
}

func TestProductService_ListDoesNotSeedPopulatedStore(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockProductRepository()
	require.NoError(t, repo.Create(ctx, &models.Product{Name: "Only", Price: 1, Image: "x"}))

	list, err := services.NewProductService(repo).List(ctx, services.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, []string{"Only"}, names(list.Products))
}

func TestFilterProducts(t *testing.T) {
	products := []models.Product{
		{Name: "Wireless Headphones", Price: 2999},
		{Name: "Smart Watch", Price: 4999},
		{Name: "Bluetooth Speaker", Price: 1999},
		{Name: "Gaming Mouse", Price: 1499},
		{Name: "keyboard", Price: 999},
		{Name: "USB-C Charger", Price: 1299},
	}

	tests := []struct {
		name   string
		filter services.ProductFilter
		want   []string
	}{
		{
			name: "no filter keeps original order",
			want: []string{"Wireless Headphones", "Smart Watch", "Bluetooth Speaker", "Gaming Mouse", "keyboard", "USB-C Charger"},
		},
		{
			name:   "search is case insensitive substring",
			filter: services.ProductFilter{Search: "MOUSE"},
			want:   []string{"Gaming Mouse"},
		},
		{
			name:   "blank search is ignored",
			filter: services.ProductFilter{Search: "   ", SortBy: services.SortPriceLow},
			want:   []string{"keyboard", "USB-C Charger", "Gaming Mouse", "Bluetooth Speaker", "Wireless Headphones", "Smart Watch"},
		},
		{
			name:   "price range is inclusive",
			filter: services.ProductFilter{MinPrice: ptr(1299.0), MaxPrice: ptr(1999.0)},
			want:   []string{"Bluetooth Speaker", "Gaming Mouse", "USB-C Charger"},
		},
		{
			name:   "min only",
			filter: services.ProductFilter{MinPrice: ptr(3000.0)},
			want:   []string{"Smart Watch"},
		},
		{
			name:   "max only sorted high to low",
			filter: services.ProductFilter{MaxPrice: ptr(1500.0), SortBy: services.SortPriceHigh},
			want:   []string{"Gaming Mouse", "USB-C Charger", "keyboard"},
		},
		{
			name:   "sort by name ignores case",
			filter: services.ProductFilter{SortBy: services.SortName},
			want:   []string{"Bluetooth Speaker", "Gaming Mouse", "keyboard", "Smart Watch", "USB-C Charger", "Wireless Headphones"},
		},
		{
			name:   "search then range then sort",
			filter: services.ProductFilter{Search: "e", MaxPrice: ptr(2000.0), SortBy: services.SortPriceLow},
			want:   []string{"keyboard", "USB-C Charger", "Gaming Mouse", "Bluetooth Speaker"},
		},
		{
			name:   "unknown sort key keeps order",
			filter: services.ProductFilter{SortBy: "rating"},
			want:   []string{"Wireless Headphones", "Smart Watch", "Bluetooth Speaker", "Gaming Mouse", "keyboard", "USB-C Charger"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.FilterProducts(products, tt.filter)
			assert.Equal(t, tt.want, names(got))
		})
	}
	assert.Equal(t, "Wireless Headphones", products[0].Name, "input must not be reordered")
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	service := services.NewProductService(repositories.NewMockProductRepository())

	_, err := service.Create(ctx, services.ProductInput{Name: "Lamp", Price: ptr(10.0)})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = service.Create(ctx, services.ProductInput{Name: "Lamp", Price: ptr(0.0), Image: "lamp.png"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = service.Create(ctx, services.ProductInput{Name: "Lamp", Price: ptr(10.0), Image: "lamp.png", Rating: ptr(7.0)})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	product, err := service.Create(ctx, services.ProductInput{Name: " Lamp ", Price: ptr(10.0), Image: "lamp.png"})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Lamp", product.Name)
	assert.Equal(t, models.DefaultCategory, product.Category)
	assert.Equal(t, models.DefaultStock, product.Stock)
	assert.Equal(t, models.DefaultRating, product.Rating)

	soldOut, err := service.Create(ctx, services.ProductInput{Name: "Rare", Price: ptr(5.0), Image: "rare.png", Stock: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, soldOut.Stock)
}

func TestProductService_UpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	service := services.NewProductService(repositories.NewMockProductRepository())

	product, err := service.Create(ctx, services.ProductInput{
		Name: "Lamp", Price: ptr(10.0), Image: "lamp.png", Description: ptr("warm light"), Stock: ptr(4),
	})
	require.NoError(t, err)

	updated, err := service.Update(ctx, product.ID, services.ProductInput{Price: ptr(12.5)})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, "Lamp", updated.Name)
	assert.Equal(t, "warm light", updated.Description)
	assert.Equal(t, 4, updated.Stock)

	_, err = service.Update(ctx, product.ID, services.ProductInput{Price: ptr(-1.0)})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = service.Update(ctx, product.ID, services.ProductInput{Stock: ptr(-3)})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	stored, err := service.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.5, stored.Price)
	assert.Equal(t, 4, stored.Stock)

	_, err = service.Update(ctx, "missing", services.ProductInput{Price: ptr(1.0)})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

// interleavingProductRepository runs beforeUpdate once, between the service's
// read of a product and its write.
type interleavingProductRepository struct {
	*repositories.MockProductRepository
	beforeUpdate func()
}

func (r *interleavingProductRepository) Update(ctx context.Context, product *models.Product) error {
	if r.beforeUpdate != nil {
		hook := r.beforeUpdate
		r.beforeUpdate = nil
		hook()
	}
	return r.MockProductRepository.Update(ctx, product)
}

func TestProductService_UpdateKeepsConcurrentReservation(t *testing.T) {
	ctx := context.Background()
	inner := repositories.NewMockProductRepository()
	repo := &interleavingProductRepository{MockProductRepository: inner}
	service := services.NewProductService(repo)
	cart := services.NewCartService(repositories.NewMockCartRepository(), inner)
	product := seedProduct(t, inner, "Mouse", 1499, 5)

	repo.beforeUpdate = func() {
		_, _, err := cart.Add(ctx, "user-1", product.ID, 3)
		require.NoError(t, err)
	}
	updated, err := service.Update(ctx, product.ID, services.ProductInput{Description: ptr("quiet clicks")})
	require.NoError(t, err)
	assert.Equal(t, "quiet clicks", updated.Description)
	assert.Equal(t, 2, updated.Stock)
	assert.Equal(t, 2, stockOf(t, inner, product.ID))
}

func TestProductService_UpdateSetsExplicitStock(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)
	product := seedProduct(t, repo, "Mouse", 1499, 5)

	updated, err := service.Update(ctx, product.ID, services.ProductInput{Stock: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, 0, stockOf(t, repo, product.ID))

	updated, err = service.Update(ctx, product.ID, services.ProductInput{Name: "Mouse Pro", Stock: ptr(9)})
	require.NoError(t, err)
	assert.Equal(t, "Mouse Pro", updated.Name)
	assert.Equal(t, 9, stockOf(t, repo, product.ID))
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	service := services.NewProductService(repositories.NewMockProductRepository())

	product, err := service.Create(ctx, services.ProductInput{Name: "Lamp", Price: ptr(10.0), Image: "lamp.png"})
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, deleted.ID)

	_, err = service.Get(ctx, product.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = service.Delete(ctx, product.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
