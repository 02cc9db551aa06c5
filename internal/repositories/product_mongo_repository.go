package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"katalog/internal/models"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		coll: db.Collection("products"),
	}
}

// filter builds the Mongo filter document for a listing. Every listing
// is restricted to active products.
func (r *MongoProductRepository) filter(q ListQuery) bson.M {
	filter := bson.M{"isActive": true}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Brand != "" {
		filter["brand"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Brand), Options: "i"}
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	return filter
}

// List returns one filtered, sorted page of products and the total
// number of matching documents.
func (r *MongoProductRepository) List(ctx context.Context, q ListQuery) ([]models.Product, int64, error) {
	filter := r.filter(q)

	direction := 1
	if q.SortOrder == OrderDesc {
		direction = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: direction}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its hex identifier.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product. The store assigns the identifier and
// timestamps, which are written back onto the given product.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update replaces every user-settable field of the addressed product and
// returns the post-update document. CreatedAt is left untouched.
func (r *MongoProductRepository) Update(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"category":    product.Category,
		"brand":       product.Brand,
		"stock":       product.Stock,
		"images":      product.Images,
		"rating":      product.Rating,
		"reviews":     product.Reviews,
		"isActive":    product.IsActive,
		"updatedAt":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a product permanently.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

// DistinctCategories returns the category values present in the collection.
func (r *MongoProductRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}
