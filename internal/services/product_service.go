package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"pds/internal/models"
	"pds/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
	log    *zap.Logger
	now    func() time.Time
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, log *zap.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new product. brandId is stored as given.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NilObjectID
	product.UpdatedAt = nil
	if err := s.repo.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	publishEvent(ctx, s.events, s.log, models.EventProductCreated, models.EntityChanged{ID: product.ID.Hex()})
	return nil
}

// UpdateProduct updates an existing product and stamps updatedAt.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	now := s.now().UTC()
	product.UpdatedAt = &now
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	publishEvent(ctx, s.events, s.log, models.EventProductUpdated, models.EntityChanged{ID: product.ID.Hex()})
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	publishEvent(ctx, s.events, s.log, models.EventProductDeleted, models.EntityChanged{ID: id.Hex()})
	return nil
}
