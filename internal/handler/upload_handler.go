package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quiz-spark/internal/dto"
	"quiz-spark/internal/logger"
	"quiz-spark/internal/service"
)

// UploadHandler issues signed upload URLs
type UploadHandler struct {
	service service.UploadService
}

// NewUploadHandler creates a new UploadHandler instance
func NewUploadHandler(service service.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// IssueUploadURL godoc
// @Summary Issue a signed upload URL
// @Description Returns a short-lived PUT URL for uploading a file to object storage
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body dto.UploadURLRequest true "File name and content type"
// @Success 200 {object} dto.UploadURLResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /gcs-upload [post]
func (h *UploadHandler) IssueUploadURL(c *fiber.Ctx) error {
	// An unreadable body is treated as empty; the service reports the bucket
	// configuration before it reports missing fields.
	var req dto.UploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Upload request body could not be parsed", zap.Error(err))
		req = dto.UploadURLRequest{}
	}

	resp, err := h.service.IssueUploadURL(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
