package repositories

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pds/internal/models"
)

// MockBrandRepository is an in-memory implementation of BrandRepository.
// It keeps insertion order like a natural-order collection scan.
type MockBrandRepository struct {
	brands []models.Brand
	index  map[primitive.ObjectID]int
	mu     sync.RWMutex
}

// NewMockBrandRepository creates a new instance of MockBrandRepository.
func NewMockBrandRepository() *MockBrandRepository {
	return &MockBrandRepository{
		index: make(map[primitive.ObjectID]int),
	}
}

// GetAll returns all brands.
func (r *MockBrandRepository) GetAll(_ context.Context) ([]models.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	brandList := make([]models.Brand, len(r.brands))
	copy(brandList, r.brands)
	return brandList, nil
}

// GetByID returns a brand by its ID.
func (r *MockBrandRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("brand with ID %s: %w", id.Hex(), ErrNotFound)
	}
	brand := r.brands[i]
	return &brand, nil
}

// Create adds a new brand.
func (r *MockBrandRepository) Create(_ context.Context, brand *models.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if brand.ID.IsZero() {
		brand.ID = primitive.NewObjectID()
	}
	if _, exists := r.index[brand.ID]; exists {
		return fmt.Errorf("brand with ID %s: %w", brand.ID.Hex(), ErrDuplicate)
	}
	r.index[brand.ID] = len(r.brands)
	r.brands = append(r.brands, *brand)
	return nil
}

// Update modifies an existing brand's name and description.
func (r *MockBrandRepository) Update(_ context.Context, brand *models.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[brand.ID]
	if !ok {
		return fmt.Errorf("brand with ID %s: %w", brand.ID.Hex(), ErrNotFound)
	}
	r.brands[i].BrandName = brand.BrandName
	r.brands[i].Description = brand.Description
	return nil
}

// Delete removes a brand by its ID. Missing brands are ignored.
func (r *MockBrandRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil
	}
	r.brands = append(r.brands[:i], r.brands[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.brands); j++ {
		r.index[r.brands[j].ID] = j
	}
	return nil
}
