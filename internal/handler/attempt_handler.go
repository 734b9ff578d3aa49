package handler

import (
	"github.com/gofiber/fiber/v2"

	"quiz-spark/internal/service"
)

// AttemptHandler serves archived quiz attempts
type AttemptHandler struct {
	service service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler instance
func NewAttemptHandler(service service.AttemptService) *AttemptHandler {
	return &AttemptHandler{service: service}
}

// GetAttempt godoc
// @Summary Get an archived attempt
// @Description Returns the graded results of a submitted quiz
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *fiber.Ctx) error {
	resp, err := h.service.GetAttempt(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
