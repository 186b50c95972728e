package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pds/internal/models"
	"pds/pkg/mongodb"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	db DatabaseProvider
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db DatabaseProvider) *MongoProductRepository {
	return &MongoProductRepository{db: db}
}

func (r *MongoProductRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(mongodb.ProductsCollection), nil
}

// GetAll retrieves every product in insertion order.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product with ID %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id.Hex(), err)
	}
	return &product, nil
}

// Create inserts the product and sets its store-assigned ID.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

// Update sets every mutable product field, including the update timestamp.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": product.ID},
		bson.M{"$set": bson.M{
			"productName":  product.ProductName,
			"description":  product.Description,
			"stock":        product.Stock,
			"sellingPrice": product.SellingPrice,
			"brandId":      product.BrandID,
			"updatedAt":    product.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID.Hex(), ErrNotFound)
	}
	return nil
}

// Delete removes a product by its ID. Deleting a missing product is not an error.
func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if _, err := coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
