package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pds/internal/dto"
	"pds/internal/models"
	"pds/internal/services"
)

// AuthHandler handles shopkeeper signup.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber router.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
}

// HandleSignup registers a new shopkeeper in the pending state.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var input dto.SignupInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	location, err := input.Location()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgValidationFailed)
	}

	shopkeeper := models.Shopkeeper{
		Name:          input.Name,
		Email:         input.Email,
		Password:      input.Password,
		PhoneNumber:   input.PhoneNumber,
		AadhaarNumber: input.AadhaarNumber,
		ShopName:      input.ShopName,
		ShopID:        input.ShopID,
		ShopAddress:   input.ShopAddress,
		Location:      location,
	}

	if err := h.authService.RegisterShopkeeper(c.UserContext(), &shopkeeper); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return fiber.NewError(fiber.StatusConflict, "User with this email already exists")
		case errors.Is(err, services.ErrShopIDTaken):
			return fiber.NewError(fiber.StatusConflict, "Shop ID already registered")
		case errors.Is(err, services.ErrAlreadyRegistered):
			return fiber.NewError(fiber.StatusConflict, "User with this email or shop ID already exists")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Shopkeeper registered successfully",
	})
}
