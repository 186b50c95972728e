package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pds/internal/dto"
	"pds/internal/services"
)

// BrandHandler handles HTTP requests for brands.
type BrandHandler struct {
	brandService *services.BrandService
	validate     *validator.Validate
	log          *zap.Logger
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(brandService *services.BrandService, validate *validator.Validate, log *zap.Logger) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		validate:     validate,
		log:          log,
	}
}

// RegisterRoutes registers the brand routes with the Fiber router.
func (h *BrandHandler) RegisterRoutes(router fiber.Router) {
	brandRoutes := router.Group("/brands")
	brandRoutes.Get("", h.GetAllBrands)
	brandRoutes.Post("/create", h.CreateBrand)
	brandRoutes.Get("/update/:brandId", h.GetBrandByID)
	brandRoutes.Put("/update/:brandId", h.UpdateBrand)
	brandRoutes.Delete("/delete/:brandId", h.DeleteBrand)
}

// GetAllBrands handles fetching all brands.
func (h *BrandHandler) GetAllBrands(c *fiber.Ctx) error {
	brands, err := h.brandService.GetAllBrands(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"brands":  brands,
	})
}

// GetBrandByID handles fetching one brand for the edit form.
func (h *BrandHandler) GetBrandByID(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "brandId", "Invalid Brand ID")
	if err != nil {
		return err
	}

	brand, err := h.brandService.GetBrandByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Brand not found")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"brand":   brand,
	})
}

// CreateBrand handles creating a new brand.
func (h *BrandHandler) CreateBrand(c *fiber.Ctx) error {
	var input dto.BrandInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	brand := input.ToModel()
	if err := h.brandService.CreateBrand(c.UserContext(), &brand); err != nil {
		return err
	}
	h.log.Info("brand created", zap.String("id", brand.ID.Hex()))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Brand created successfully",
	})
}

// UpdateBrand handles replacing a brand's name and description.
func (h *BrandHandler) UpdateBrand(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "brandId", "Invalid Brand ID")
	if err != nil {
		return err
	}

	var input dto.BrandInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	brand := input.ToModel()
	brand.ID = id
	if err := h.brandService.UpdateBrand(c.UserContext(), &brand); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Brand not found")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Brand updated successfully",
	})
}

// DeleteBrand handles deleting a brand. Unknown ids still succeed.
func (h *BrandHandler) DeleteBrand(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "brandId", "Invalid Brand ID")
	if err != nil {
		return err
	}

	if err := h.brandService.DeleteBrand(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Brand deleted successfully",
	})
}
