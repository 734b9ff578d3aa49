package handler

import (
	"github.com/gofiber/fiber/v2"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/dto"
	"quiz-spark/internal/service"
)

// ExtractionHandler handles document text extraction requests
type ExtractionHandler struct {
	service service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler instance
func NewExtractionHandler(service service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{service: service}
}

// ExtractText godoc
// @Summary Extract text from a document
// @Description Extracts plain text from a base64 data URI (PDF, image or text file)
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body dto.ExtractTextRequest true "Document as data URI"
// @Success 200 {object} dto.ExtractTextResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /extract-text [post]
func (h *ExtractionHandler) ExtractText(c *fiber.Ctx) error {
	return h.extract(c, "")
}

// ExtractPDF godoc
// @Summary Extract text from a PDF
// @Description Older entry point; a data URI without a media type is treated as a PDF
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body dto.ExtractTextRequest true "Document as data URI"
// @Success 200 {object} dto.ExtractTextResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /extract-pdf [post]
func (h *ExtractionHandler) ExtractPDF(c *fiber.Ctx) error {
	return h.extract(c, service.LegacyPDFMediaType)
}

func (h *ExtractionHandler) extract(c *fiber.Ctx, hint string) error {
	var req dto.ExtractTextRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
	}

	text, err := h.service.ExtractTextWithHint(c.UserContext(), req.FileDataURI, hint)
	if err != nil {
		return err
	}
	return c.JSON(dto.ExtractTextResponse{Text: text})
}
