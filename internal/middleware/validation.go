package middleware

import (
	"github.com/gofiber/fiber/v2"

	"quiz-spark/internal/validation"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	if v == nil {
		v = validation.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidateIDParam rejects requests whose :id path parameter is not a ULID.
func (vm *ValidationMiddleware) ValidateIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateSessionID(c.Params("id")); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		return c.Next()
	}
}
