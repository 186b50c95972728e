package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pds/internal/dto"
	"pds/internal/models"
	"pds/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
	log            *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, validate *validator.Validate, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validate,
		log:            log,
	}
}

// RegisterRoutes registers the product routes with the Fiber router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("", h.GetAllProducts)
	productRoutes.Post("/create", h.CreateProduct)
	productRoutes.Get("/update/:productId", h.GetProductByID)
	productRoutes.Put("/update/:productId", h.UpdateProduct)
	productRoutes.Delete("/delete/:productId", h.DeleteProduct)
}

// GetAllProducts handles fetching all products.
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
	})
}

// GetProductByID handles fetching a single product.
func (h *ProductHandler) GetProductByID(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "productId", "Invalid Product ID")
	if err != nil {
		return err
	}

	product, err := h.productService.GetProductByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// CreateProduct handles creating a new product.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	product, ok, err := h.parseProduct(c)
	if !ok {
		return err
	}

	if err := h.productService.CreateProduct(c.UserContext(), &product); err != nil {
		return err
	}
	h.log.Info("product created", zap.String("id", product.ID.Hex()), zap.String("brand_id", product.BrandID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
	})
}

// UpdateProduct handles updating an existing product.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "productId", "Invalid Product ID")
	if err != nil {
		return err
	}

	product, ok, err := h.parseProduct(c)
	if !ok {
		return err
	}

	product.ID = id
	if err := h.productService.UpdateProduct(c.UserContext(), &product); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
	})
}

// DeleteProduct handles deleting a product.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "productId", "Invalid Product ID")
	if err != nil {
		return err
	}

	if err := h.productService.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func (h *ProductHandler) parseProduct(c *fiber.Ctx) (models.Product, bool, error) {
	var input dto.ProductInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return models.Product{}, false, err
	}

	product, err := input.ToModel()
	if err != nil {
		return models.Product{}, false, fiber.NewError(fiber.StatusBadRequest, msgValidationFailed)
	}
	return product, true, nil
}
