package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"pds/internal/models"
	"pds/internal/repositories"
)

// BrandService handles business logic related to brands.
type BrandService struct {
	repo   repositories.BrandRepository
	events EventPublisher
	log    *zap.Logger
}

// NewBrandService creates a new BrandService. events may be nil.
func NewBrandService(repo repositories.BrandRepository, events EventPublisher, log *zap.Logger) *BrandService {
	return &BrandService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// GetAllBrands retrieves all brands in insertion order.
func (s *BrandService) GetAllBrands(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

// GetBrandByID retrieves a single brand by its ID.
func (s *BrandService) GetBrandByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateBrand creates a new brand. The store assigns the ID.
func (s *BrandService) CreateBrand(ctx context.Context, brand *models.Brand) error {
	brand.ID = primitive.NilObjectID
	if err := s.repo.Create(ctx, brand); err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	publishEvent(ctx, s.events, s.log, models.EventBrandCreated, models.EntityChanged{ID: brand.ID.Hex()})
	return nil
}

// UpdateBrand replaces the name and description of an existing brand.
func (s *BrandService) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	if err := s.repo.Update(ctx, brand); err != nil {
		return err
	}
	publishEvent(ctx, s.events, s.log, models.EventBrandUpdated, models.EntityChanged{ID: brand.ID.Hex()})
	return nil
}

// DeleteBrand deletes a brand by its ID. Deleting a missing brand is not an error.
func (s *BrandService) DeleteBrand(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	publishEvent(ctx, s.events, s.log, models.EventBrandDeleted, models.EntityChanged{ID: id.Hex()})
	return nil
}
