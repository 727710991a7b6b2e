package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"itemhub/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ItemRepository defines operations for item data
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Item, error)
	FindAll(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Search(ctx context.Context, query string, page, limit int) ([]model.Item, int64, error)
}

type itemRepository struct {
	coll *mongo.Collection
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *mongo.Database) ItemRepository {
	return &itemRepository{coll: db.Collection("items")}
}

// Create inserts a new item into the database
func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

// FindByID retrieves an item by its ID. A missing item returns (nil, nil).
func (r *itemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Item, error) {
	item := &model.Item{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return item, nil
}

// FindAll retrieves all items, newest first
func (r *itemRepository) FindAll(ctx context.Context) ([]model.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []model.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

// Update replaces the mutable fields of an existing item
func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	update := bson.M{"$set": bson.M{
		"title":     item.Title,
		"content":   item.Content,
		"updatedAt": item.UpdatedAt,
	}}
	res, err := r.coll.UpdateByID(ctx, item.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("item not found for update")
	}
	return nil
}

// Delete removes an item, reporting whether it existed
func (r *itemRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Search performs a case-insensitive substring match on title and content,
// returning one page of results plus the total match count
func (r *itemRepository) Search(ctx context.Context, query string, page, limit int) ([]model.Item, int64, error) {
	filter := bson.M{}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
		}}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []model.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search results: %w", err)
	}
	return items, total, nil
}
