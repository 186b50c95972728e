package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pds/internal/models"
	"pds/internal/repositories"
)

// AuthService handles shopkeeper registration.
type AuthService struct {
	repo       repositories.ShopkeeperRepository
	events     EventPublisher
	log        *zap.Logger
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates a new AuthService. A bcryptCost of 0 means bcrypt.DefaultCost.
func NewAuthService(repo repositories.ShopkeeperRepository, events EventPublisher, log *zap.Logger, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:       repo,
		events:     events,
		log:        log,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// RegisterShopkeeper stores a new pending shopkeeper account with a hashed password.
// It returns ErrEmailTaken or ErrShopIDTaken when either value is already in use.
func (s *AuthService) RegisterShopkeeper(ctx context.Context, shopkeeper *models.Shopkeeper) error {
	existing, err := s.repo.FindByEmailOrShopID(ctx, shopkeeper.Email, shopkeeper.ShopID)
	switch {
	case err == nil:
		if existing.Email == shopkeeper.Email {
			return ErrEmailTaken
		}
		return ErrShopIDTaken
	case !errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("failed to look up shopkeeper: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(shopkeeper.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	shopkeeper.Password = string(hashedPassword)
	shopkeeper.Role = models.RoleShopkeeper
	shopkeeper.Status = models.StatusPending
	shopkeeper.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, shopkeeper); err != nil {
		// Lost a race with a concurrent signup between the lookup and the insert.
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to register shopkeeper: %w", err)
	}

	s.log.Info("shopkeeper registered",
		zap.String("shop_id", shopkeeper.ShopID),
		zap.String("id", shopkeeper.ID.Hex()))
	publishEvent(ctx, s.events, s.log, models.EventShopkeeperRegistered, models.ShopkeeperRegistered{
		ID:       shopkeeper.ID.Hex(),
		Name:     shopkeeper.Name,
		Email:    shopkeeper.Email,
		ShopName: shopkeeper.ShopName,
		ShopID:   shopkeeper.ShopID,
		Location: shopkeeper.Location,
		Status:   shopkeeper.Status,
	})
	return nil
}
