package repositories

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartRepository is a MongoDB implementation of CartRepository. Each line is
// its own document keyed by (ownerId, productId).
type MongoCartRepository struct {
	coll *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{coll: db.Collection(cartItemsCollection)}
}

// ListByOwner returns the owner's cart lines, oldest first.
func (r *MongoCartRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.CartItem, error) {
	cur, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list cart for %s: %w", ownerID, err)
	}
	items, err := decodeAll[models.CartItem](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cart for %s: %w", ownerID, err)
	}
	return items, nil
}

// AddQuantity upserts the line with $inc so concurrent adds of the same product
// accumulate instead of overwriting each other.
func (r *MongoCartRepository) AddQuantity(ctx context.Context, ownerID, productID string, qty int) (*models.CartItem, bool, error) {
	now := time.Now()
	newID := uuid.New().String()

	var item models.CartItem
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"ownerId": ownerID, "productId": productID},
		bson.M{
			"$inc":         bson.M{"qty": qty},
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{"_id": newID, "createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&item)
	if err != nil {
		return nil, false, mongoError(err, "cart line for product %s", productID)
	}
	return &item, item.ID == newID, nil
}

// Delete removes one of the owner's lines.
func (r *MongoCartRepository) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID}); err != nil {
		return fmt.Errorf("failed to delete cart line %s: %w", id, err)
	}
	return nil
}

// Clear removes all of the owner's lines.
func (r *MongoCartRepository) Clear(ctx context.Context, ownerID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"ownerId": ownerID}); err != nil {
		return fmt.Errorf("failed to clear cart for %s: %w", ownerID, err)
	}
	return nil
}
