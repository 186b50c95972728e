//go:build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"pds/internal/models"
	"pds/internal/repositories"
	"pds/pkg/mongodb"
)

type MongoRepositorySuite struct {
	suite.Suite
	ctx       context.Context
	container *tcmongo.MongoDBContainer
	pool      *mongodb.Pool
}

func TestMongoRepositorySuite(t *testing.T) {
	suite.Run(t, new(MongoRepositorySuite))
}

func (s *MongoRepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	var err error
	s.container, err = tcmongo.Run(s.ctx, "mongo:7")
	s.Require().NoError(err)

	uri, err := s.container.ConnectionString(s.ctx)
	s.Require().NoError(err)

	s.pool = mongodb.NewPool(mongodb.Config{
		URI:                    uri,
		Database:               "pds_test",
		ServerSelectionTimeout: 10 * time.Second,
	}, zap.NewNop())

	db, err := s.pool.Database(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(mongodb.EnsureIndexes(s.ctx, db))
}

func (s *MongoRepositorySuite) TearDownSuite() {
	if s.pool != nil {
		_ = s.pool.Close(s.ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *MongoRepositorySuite) SetupTest() {
	db, err := s.pool.Database(s.ctx)
	s.Require().NoError(err)
	for _, name := range []string{mongodb.BrandsCollection, mongodb.ProductsCollection, mongodb.UsersCollection} {
		_, err := db.Collection(name).DeleteMany(s.ctx, bson.D{})
		s.Require().NoError(err)
	}
}

func (s *MongoRepositorySuite) TestBrandLifecycle() {
	repo := repositories.NewMongoBrandRepository(s.pool)

	empty, err := repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)

	first := &models.Brand{BrandName: "Tata", Description: "Salt"}
	second := &models.Brand{BrandName: "Amul", Description: "Dairy"}
	s.Require().NoError(repo.Create(s.ctx, first))
	s.Require().NoError(repo.Create(s.ctx, second))
	s.False(first.ID.IsZero())

	all, err := repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Tata", all[0].BrandName)
	s.Equal("Amul", all[1].BrandName)

	s.Require().NoError(repo.Update(s.ctx, &models.Brand{ID: first.ID, BrandName: "Tata Salt", Description: "Iodised"}))
	got, err := repo.GetByID(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal("Tata Salt", got.BrandName)

	err = repo.Update(s.ctx, &models.Brand{ID: primitive.NewObjectID(), BrandName: "x", Description: "y"})
	s.ErrorIs(err, repositories.ErrNotFound)

	s.Require().NoError(repo.Delete(s.ctx, first.ID))
	s.Require().NoError(repo.Delete(s.ctx, primitive.NewObjectID()))

	_, err = repo.GetByID(s.ctx, first.ID)
	s.ErrorIs(err, repositories.ErrNotFound)
}

func (s *MongoRepositorySuite) TestProductStoresNumbersAndUpdatedAt() {
	repo := repositories.NewMongoProductRepository(s.pool)

	p := &models.Product{ProductName: "Rice", Description: "5kg", Stock: 50, SellingPrice: 250.5, BrandID: "b1"}
	s.Require().NoError(repo.Create(s.ctx, p))

	now := time.Now().UTC().Truncate(time.Millisecond)
	p.Stock = 40
	p.UpdatedAt = &now
	s.Require().NoError(repo.Update(s.ctx, p))

	got, err := repo.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(int64(40), got.Stock)
	s.Equal(250.5, got.SellingPrice)
	s.Require().NotNil(got.UpdatedAt)
	s.True(now.Equal(*got.UpdatedAt))

	db, err := s.pool.Database(s.ctx)
	s.Require().NoError(err)
	var raw bson.M
	s.Require().NoError(db.Collection(mongodb.ProductsCollection).FindOne(s.ctx, bson.M{"_id": p.ID}).Decode(&raw))
	s.IsType(float64(0), raw["sellingPrice"])
}

func (s *MongoRepositorySuite) TestShopkeeperUniqueness() {
	repo := repositories.NewMongoShopkeeperRepository(s.pool)

	_, err := repo.FindByEmailOrShopID(s.ctx, "ravi@example.com", "PDS-001")
	s.ErrorIs(err, repositories.ErrNotFound)

	s.Require().NoError(repo.Create(s.ctx, &models.Shopkeeper{
		Email:    "ravi@example.com",
		ShopID:   "PDS-001",
		Location: models.NewGeoPoint(12.97, 77.59),
		Status:   models.StatusPending,
	}))

	found, err := repo.FindByEmailOrShopID(s.ctx, "someone@example.com", "PDS-001")
	s.Require().NoError(err)
	s.Equal("ravi@example.com", found.Email)

	err = repo.Create(s.ctx, &models.Shopkeeper{
		Email:    "ravi@example.com",
		ShopID:   "PDS-002",
		Location: models.NewGeoPoint(12.97, 77.59),
	})
	s.ErrorIs(err, repositories.ErrDuplicate)
}
