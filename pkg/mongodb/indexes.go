package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by the repositories and the index bootstrap.
const (
	BrandsCollection   = "brands"
	ProductsCollection = "products"
	UsersCollection    = "users"
)

// EnsureIndexes creates the indexes the application relies on. Creating an
// index that already exists is a no-op on the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection(UsersCollection)

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "shopId", Value: 1}},
			Options: options.Index().SetName("shopId_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("location_2dsphere"),
		},
	}

	if _, err := users.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", UsersCollection, err)
	}
	return nil
}
