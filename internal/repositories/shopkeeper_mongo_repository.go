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

// MongoShopkeeperRepository stores shopkeeper accounts in the users collection.
type MongoShopkeeperRepository struct {
	db DatabaseProvider
}

func NewMongoShopkeeperRepository(db DatabaseProvider) *MongoShopkeeperRepository {
	return &MongoShopkeeperRepository{db: db}
}

func (r *MongoShopkeeperRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(mongodb.UsersCollection), nil
}

func (r *MongoShopkeeperRepository) FindByEmailOrShopID(ctx context.Context, email, shopID string) (*models.Shopkeeper, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"shopId": shopID},
	}}

	var shopkeeper models.Shopkeeper
	if err := coll.FindOne(ctx, filter).Decode(&shopkeeper); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("shopkeeper with email %s or shop ID %s: %w", email, shopID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up shopkeeper: %w", err)
	}
	return &shopkeeper, nil
}

func (r *MongoShopkeeperRepository) Create(ctx context.Context, shopkeeper *models.Shopkeeper) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.InsertOne(ctx, shopkeeper)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("shopkeeper %s: %w", shopkeeper.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create shopkeeper: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		shopkeeper.ID = oid
	}
	return nil
}
