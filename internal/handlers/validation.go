package handlers

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pds/internal/dto"
)

const (
	msgMissingFields    = "Missing required fields"
	msgValidationFailed = "Validation failed"
	msgInvalidBody      = "Invalid request body"
)

// formatValidationError maps each failed field to a readable message.
// It reports whether any failure was a missing required field.
func formatValidationError(err error) (map[string]string, bool) {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out, false
	}

	missing := false
	for _, e := range verrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			missing = true
			out[field] = fmt.Sprintf("%s is required", field)
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		case "len":
			out[field] = fmt.Sprintf("%s must be exactly %s digits", field, e.Param())
		case "email":
			out[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "number":
			out[field] = fmt.Sprintf("%s must contain digits only", field)
		case "nonnegative":
			out[field] = fmt.Sprintf("%s must be between 0 and %.0f", field, dto.MaxSellingPrice)
		case "wholenumber":
			out[field] = fmt.Sprintf("%s must be a whole number between 0 and %d", field, int64(math.MaxInt64))
		case "latitude", "longitude":
			out[field] = fmt.Sprintf("%s must be a valid %s", field, e.Tag())
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return out, missing
}

// bindAndValidate parses the request body into dst and validates it.
// On failure it writes the 400 response itself and returns ok=false.
func bindAndValidate(c *fiber.Ctx, validate *validator.Validate, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": msgInvalidBody,
		})
	}

	if err := validate.Struct(dst); err != nil {
		fields, missing := formatValidationError(err)
		message := msgValidationFailed
		if missing {
			message = msgMissingFields
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": message,
			"errors":  fields,
		})
	}
	return true, nil
}
