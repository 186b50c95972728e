package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pds/internal/models"
)

// DatabaseProvider hands out a database handle per operation.
// *mongodb.Pool is the production implementation.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// BrandRepository defines the interface for brand data access.
type BrandRepository interface {
	GetAll(ctx context.Context) ([]models.Brand, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error)
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ShopkeeperRepository defines the interface for shopkeeper account data access.
type ShopkeeperRepository interface {
	// FindByEmailOrShopID returns the first account using either value, or ErrNotFound.
	FindByEmailOrShopID(ctx context.Context, email, shopID string) (*models.Shopkeeper, error)
	Create(ctx context.Context, shopkeeper *models.Shopkeeper) error
}
