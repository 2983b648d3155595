package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"

	"storefront/internal/apperror"
	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// Sort keys accepted by ProductFilter.SortBy.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

// ProductFilter narrows a catalog listing. Nil bounds mean 0 and +Inf.
type ProductFilter struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
}

// ProductList is a filtered listing plus the size of the whole catalog.
type ProductList struct {
	Products []models.Product
	Count    int
	Total    int
}

// ProductInput carries the fields of a create or partial update. Nil pointers and
// empty strings leave the stored value alone on update.
type ProductInput struct {
	Name           string                 `json:"name"`
	Price          *float64               `json:"price"`
	Image          string                 `json:"image"`
	Description    *string                `json:"description"`
	Category       string                 `json:"category"`
	Stock          *int                   `json:"stock"`
	Rating         *float64               `json:"rating"`
	Reviews        *int                   `json:"reviews"`
	Specifications *models.Specifications `json:"specifications"`
	Features       []string               `json:"features"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository

	seedMu sync.Mutex
	seeded bool
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// EnsureSeeded loads the demonstration catalog when the store is empty. Once the
// store has been seen non-empty it never checks again.
func (s *ProductService) EnsureSeeded(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	if s.seeded {
		return nil
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		products := catalog.Products()
		if err := s.repo.CreateMany(ctx, products); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		log.Printf("Seeded %d demonstration products", len(products))
	}
	s.seeded = true
	return nil
}

// List returns the catalog filtered by search, then price range, then sorted.
func (s *ProductService) List(ctx context.Context, filter ProductFilter) (*ProductList, error) {
	if err := s.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := FilterProducts(all, filter)
	return &ProductList{Products: filtered, Count: len(filtered), Total: len(all)}, nil
}

// FilterProducts applies filter to products without touching the input slice.
func FilterProducts(products []models.Product, filter ProductFilter) []models.Product {
	out := make([]models.Product, 0, len(products))

	search := strings.ToLower(filter.Search)
	hasSearch := strings.TrimSpace(filter.Search) != ""
	hasRange := filter.MinPrice != nil || filter.MaxPrice != nil
	minPrice, maxPrice := 0.0, math.Inf(1)
	if filter.MinPrice != nil {
		minPrice = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		maxPrice = *filter.MaxPrice
	}

	for _, p := range products {
		if hasSearch && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if hasRange && (p.Price < minPrice || p.Price > maxPrice) {
			continue
		}
		out = append(out, p)
	}

	switch filter.SortBy {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

// All returns every product without seeding or filtering.
func (s *ProductService) All(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// Get retrieves a single product by its ID.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Product not found")
	}
	return product, nil
}

func checkInput(in ProductInput) error {
	if in.Price != nil && *in.Price <= 0 {
		return apperror.Validation("Price must be a positive number")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return apperror.Validation("Stock cannot be negative")
	}
	return nil
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price == nil || strings.TrimSpace(in.Image) == "" {
		return nil, apperror.Validation("Please provide name, price, and image")
	}
	if err := checkInput(in); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:     strings.TrimSpace(in.Name),
		Price:    *in.Price,
		Image:    strings.TrimSpace(in.Image),
		Category: models.DefaultCategory,
		Stock:    models.DefaultStock,
		Rating:   models.DefaultRating,
		Features: []string{},
	}
	applyInput(product, in)

	if err := validate.Struct(product); err != nil {
		return nil, ValidationError(err)
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	log.Printf("Product created: %s (ID: %s)", product.Name, product.ID)
	return product, nil
}

// Update applies a partial update to an existing product.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkInput(in); err != nil {
		return nil, err
	}
	applyInput(product, in)

	if err := validate.Struct(product); err != nil {
		return nil, ValidationError(err)
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, notFound(err, "Product not found")
	}
	if in.Stock != nil {
		if err := s.repo.SetStock(ctx, id, *in.Stock); err != nil {
			return nil, notFound(err, "Product not found")
		}
	}
	log.Printf("Product updated: %s (ID: %s)", product.Name, product.ID)
	return s.Get(ctx, id)
}

func applyInput(p *models.Product, in ProductInput) {
	if name := strings.TrimSpace(in.Name); name != "" {
		p.Name = name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if image := strings.TrimSpace(in.Image); image != "" {
		p.Image = image
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.Reviews != nil {
		p.Reviews = *in.Reviews
	}
	if in.Specifications != nil {
		p.Specifications = *in.Specifications
	}
	if in.Features != nil {
		p.Features = in.Features
	}
}

// Delete removes a product and returns what was deleted.
func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, notFound(err, "Product not found")
	}
	log.Printf("Product deleted: %s (ID: %s)", product.Name, product.ID)
	return product, nil
}
