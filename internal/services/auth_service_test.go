package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pds/internal/models"
	"pds/internal/repositories"
	"pds/internal/services"
)

func newShopkeeper() *models.Shopkeeper {
	return &models.Shopkeeper{
		Name:        "Ravi Kumar",
		Email:       "ravi@example.com",
		Password:    "password123",
		PhoneNumber: "9876543210",
		ShopName:    "Ravi Ration Store",
		ShopID:      "PDS-001",
		Location:    models.NewGeoPoint(12.9716, 77.5946),
	}
}

func TestAuthService_RegisterShopkeeper(t *testing.T) {
	mockRepo := new(MockShopkeeperRepository)
	publisher := new(MockPublisher)
	authService := services.NewAuthService(mockRepo, publisher, zap.NewNop(), bcrypt.MinCost)
	ctx := context.Background()

	shopkeeper := newShopkeeper()
	mockRepo.On("FindByEmailOrShopID", ctx, shopkeeper.Email, shopkeeper.ShopID).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Shopkeeper")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Shopkeeper).ID = primitive.NewObjectID()
	}).Return(nil).Once()
	publisher.On("Publish", ctx, models.EventShopkeeperRegistered, mock.MatchedBy(func(e models.ShopkeeperRegistered) bool {
		return e.ShopID == "PDS-001" && e.Status == models.StatusPending
	})).Return(nil).Once()

	err := authService.RegisterShopkeeper(ctx, shopkeeper)
	require.NoError(t, err)

	assert.NotEqual(t, "password123", shopkeeper.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(shopkeeper.Password), []byte("password123")))
	assert.Equal(t, models.RoleShopkeeper, shopkeeper.Role)
	assert.Equal(t, models.StatusPending, shopkeeper.Status)
	assert.False(t, shopkeeper.CreatedAt.IsZero())
	assert.Equal(t, []float64{77.5946, 12.9716}, shopkeeper.Location.Coordinates)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAuthService_RegisterShopkeeper_DefaultCost(t *testing.T) {
	mockRepo := new(MockShopkeeperRepository)
	authService := services.NewAuthService(mockRepo, nil, zap.NewNop(), 0)
	ctx := context.Background()

	shopkeeper := newShopkeeper()
	mockRepo.On("FindByEmailOrShopID", ctx, shopkeeper.Email, shopkeeper.ShopID).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", ctx, shopkeeper).Return(nil).Once()

	require.NoError(t, authService.RegisterShopkeeper(ctx, shopkeeper))
	cost, err := bcrypt.Cost([]byte(shopkeeper.Password))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestAuthService_RegisterShopkeeper_Conflicts(t *testing.T) {
	mockRepo := new(MockShopkeeperRepository)
	authService := services.NewAuthService(mockRepo, nil, zap.NewNop(), bcrypt.MinCost)
	ctx := context.Background()

	// Test email already registered
	shopkeeper := newShopkeeper()
	mockRepo.On("FindByEmailOrShopID", ctx, shopkeeper.Email, shopkeeper.ShopID).
		Return(&models.Shopkeeper{Email: shopkeeper.Email, ShopID: "OTHER"}, nil).Once()
	err := authService.RegisterShopkeeper(ctx, shopkeeper)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	assert.Equal(t, "password123", shopkeeper.Password, "password must not be hashed on conflict")

	// Test shop ID already registered
	mockRepo.On("FindByEmailOrShopID", ctx, shopkeeper.Email, shopkeeper.ShopID).
		Return(&models.Shopkeeper{Email: "someone@example.com", ShopID: shopkeeper.ShopID}, nil).Once()
	err = authService.RegisterShopkeeper(ctx, shopkeeper)
	assert.ErrorIs(t, err, services.ErrShopIDTaken)

	// Test unique index race
	mockRepo.On("FindByEmailOrShopID", ctx, shopkeeper.Email, shopkeeper.ShopID).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", ctx, shopkeeper).Return(repositories.ErrDuplicate).Once()
	err = authService.RegisterShopkeeper(ctx, shopkeeper)
	assert.ErrorIs(t, err, services.ErrAlreadyRegistered)
}

func TestAuthService_RegisterShopkeeper_LookupFailure(t *testing.T) {
	mockRepo := new(MockShopkeeperRepository)
	authService := services.NewAuthService(mockRepo, nil, zap.NewNop(), bcrypt.MinCost)
	ctx := context.Background()

	shopkeeper := newShopkeeper()
	mockRepo.On("FindByEmailOrShopID", ctx, shopkeeper.Email, shopkeeper.ShopID).Return(nil, errors.New("server selection timeout")).Once()

	err := authService.RegisterShopkeeper(ctx, shopkeeper)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to look up shopkeeper")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
