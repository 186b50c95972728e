package repositories

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pds/internal/models"
)

// MockShopkeeperRepository is an in-memory implementation of ShopkeeperRepository.
// Like the unique indexes on users, it rejects a second account with the same email or shop ID.
type MockShopkeeperRepository struct {
	shopkeepers []models.Shopkeeper
	mu          sync.RWMutex
}

func NewMockShopkeeperRepository() *MockShopkeeperRepository {
	return &MockShopkeeperRepository{}
}

func (r *MockShopkeeperRepository) FindByEmailOrShopID(_ context.Context, email, shopID string) (*models.Shopkeeper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.shopkeepers {
		if s.Email == email || s.ShopID == shopID {
			found := s
			return &found, nil
		}
	}
	return nil, fmt.Errorf("shopkeeper with email %s or shop ID %s: %w", email, shopID, ErrNotFound)
}

func (r *MockShopkeeperRepository) Create(_ context.Context, shopkeeper *models.Shopkeeper) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.shopkeepers {
		if s.Email == shopkeeper.Email || s.ShopID == shopkeeper.ShopID {
			return fmt.Errorf("shopkeeper %s: %w", shopkeeper.Email, ErrDuplicate)
		}
	}
	if shopkeeper.ID.IsZero() {
		shopkeeper.ID = primitive.NewObjectID()
	}
	r.shopkeepers = append(r.shopkeepers, *shopkeeper)
	return nil
}

// All returns a copy of every stored account.
func (r *MockShopkeeperRepository) All() []models.Shopkeeper {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Shopkeeper, len(r.shopkeepers))
	copy(out, r.shopkeepers)
	return out
}
