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

// MongoBrandRepository is a MongoDB implementation of BrandRepository.
type MongoBrandRepository struct {
	db DatabaseProvider
}

// NewMongoBrandRepository creates a new instance of MongoBrandRepository.
func NewMongoBrandRepository(db DatabaseProvider) *MongoBrandRepository {
	return &MongoBrandRepository{db: db}
}

func (r *MongoBrandRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(mongodb.BrandsCollection), nil
}

// GetAll retrieves every brand in insertion order.
func (r *MongoBrandRepository) GetAll(ctx context.Context) ([]models.Brand, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all brands: %w", err)
	}

	brands := make([]models.Brand, 0)
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, fmt.Errorf("failed to decode brands: %w", err)
	}
	return brands, nil
}

// GetByID retrieves a single brand by its ID.
func (r *MongoBrandRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var brand models.Brand
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&brand); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("brand with ID %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get brand by ID %s: %w", id.Hex(), err)
	}
	return &brand, nil
}

// Create inserts the brand and sets its store-assigned ID.
func (r *MongoBrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.InsertOne(ctx, brand)
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		brand.ID = oid
	}
	return nil
}

// Update sets the brand's name and description.
func (r *MongoBrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": brand.ID},
		bson.M{"$set": bson.M{
			"brandName":   brand.BrandName,
			"description": brand.Description,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("brand with ID %s: %w", brand.ID.Hex(), ErrNotFound)
	}
	return nil
}

// Delete removes a brand by its ID. Deleting a missing brand is not an error.
func (r *MongoBrandRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if _, err := coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	return nil
}
