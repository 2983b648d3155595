package repositories

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(productsCollection)}
}

// GetAll returns all products, oldest first.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	products, err := decodeAll[models.Product](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Count returns the number of stored products.
func (r *MongoProductRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// GetByID returns a product by ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, mongoError(err, "product with ID %s", id)
	}
	return &product, nil
}

// GetByIDs returns the products whose IDs are in ids.
func (r *MongoProductRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	products, err := decodeAll[models.Product](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func stampProduct(p *models.Product) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Features == nil {
		p.Features = []string{}
	}
}

// Create inserts a new product.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	stampProduct(product)
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return mongoError(err, "product %s", product.Name)
	}
	return nil
}

// CreateMany inserts several products at once.
func (r *MongoProductRepository) CreateMany(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, len(products))
	for i := range products {
		stampProduct(&products[i])
		docs[i] = products[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create products: %w", err)
	}
	return nil
}

// Update sets the descriptive fields of an existing product, leaving stock untouched.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	features := product.Features
	if features == nil {
		features = []string{}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": bson.M{
		"name":           product.Name,
		"price":          product.Price,
		"image":          product.Image,
		"description":    product.Description,
		"category":       product.Category,
		"rating":         product.Rating,
		"reviews":        product.Reviews,
		"specifications": product.Specifications,
		"features":       features,
		"updatedAt":      product.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, apperror.ErrNotFound)
	}
	return nil
}

// Delete removes a product by ID.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("product with ID %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}

// DecrementStock applies $inc only to a document whose stock still covers qty.
func (r *MongoProductRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to reserve stock for product %s: %w", id, err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	product, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("product with ID %s has %d left: %w", id, product.Stock, apperror.ErrInsufficientStock)
}

// IncrementStock adds qty back to the product's stock.
func (r *MongoProductRepository) IncrementStock(ctx context.Context, id string, qty int) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to restore stock for product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("product with ID %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}

// SetStock overwrites the product's stock.
func (r *MongoProductRepository) SetStock(ctx context.Context, id string, stock int) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"stock": stock, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set stock for product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("product with ID %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}
