package handler

import (
	"github.com/gofiber/fiber/v2"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/dto"
	"quiz-spark/internal/service"
)

// QuizHandler handles quiz generation requests
type QuizHandler struct {
	service service.QuizGenerationService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizGenerationService) *QuizHandler {
	return &QuizHandler{service: service}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates multiple-choice questions from source text. numQuestions defaults to 10.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Source text and question count"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = domain.DefaultQuestions
	}

	quiz, err := h.service.Generate(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.GenerateQuizResponse{Quiz: quiz.Questions()})
}
