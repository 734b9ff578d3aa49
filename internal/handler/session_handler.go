package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/dto"
	"quiz-spark/internal/middleware"
	"quiz-spark/internal/service"
	"quiz-spark/internal/validation"
)

// SessionHandler exposes the configuration, quiz and results views of a session
type SessionHandler struct {
	service   service.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService, validator *validation.Validator) *SessionHandler {
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &SessionHandler{service: service, validator: validator}
}

func respond(c *fiber.Ctx, id string, w *domain.Workflow) error {
	return c.JSON(dto.SessionResponse{SessionID: id, View: w.View()})
}

// Create godoc
// @Summary Start a session
// @Description Creates a session in the configuration view and returns its bearer token
// @Tags sessions
// @Produce json
// @Success 201 {object} dto.CreateSessionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	resp, err := h.service.Create(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get godoc
// @Summary Get the current view
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id := middleware.SessionIDFromContext(c)
	w, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, id, w)
}

// UpdateConfig godoc
// @Summary Edit the quiz configuration
// @Description Sets the source text and/or the number of questions. Omitted fields are unchanged.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.UpdateConfigRequest true "Configuration"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{id}/config [put]
func (h *SessionHandler) UpdateConfig(c *fiber.Ctx) error {
	var req dto.UpdateConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
	}
	id := middleware.SessionIDFromContext(c)
	w, err := h.service.UpdateConfig(c.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return respond(c, id, w)
}

// Extract godoc
// @Summary Fill the source text from a document
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SessionExtractRequest true "Document as data URI"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{id}/extract [post]
func (h *SessionHandler) Extract(c *fiber.Ctx) error {
	var req dto.SessionExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return err
	}
	id := middleware.SessionIDFromContext(c)
	w, err := h.service.ExtractInto(c.UserContext(), id, req.FileDataURI)
	if err != nil {
		return err
	}
	return respond(c, id, w)
}

// Generate godoc
// @Summary Generate the quiz and start taking it
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{id}/generate [post]
func (h *SessionHandler) Generate(c *fiber.Ctx) error {
	id := middleware.SessionIDFromContext(c)
	w, err := h.service.Generate(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, id, w)
}

// SelectAnswer godoc
// @Summary Select an answer for the current question
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectAnswerRequest true "Answer"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{id}/answer [put]
func (h *SessionHandler) SelectAnswer(c *fiber.Ctx) error {
	var req dto.SelectAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return err
	}
	id := middleware.SessionIDFromContext(c)
	w, err := h.service.SelectAnswer(c.UserContext(), id, req.Answer)
	if err != nil {
		return err
	}
	return respond(c, id, w)
}

// Next godoc
// @Summary Move to the next question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{id}/next [post]
func (h *SessionHandler) Next(c *fiber.Ctx) error {
	return h.step(c, h.service.Next)
}

// Back godoc
// @Summary Move to the previous question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{id}/back [post]
func (h *SessionHandler) Back(c *fiber.Ctx) error {
	return h.step(c, h.service.Back)
}

// Submit godoc
// @Summary Submit the quiz
// @Description Grades the answers and shows the results view
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	return h.step(c, h.service.Submit)
}

// Restart godoc
// @Summary Start over
// @Description Leaves the results view and clears the session back to an empty configuration
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{id}/restart [post]
func (h *SessionHandler) Restart(c *fiber.Ctx) error {
	return h.step(c, h.service.Restart)
}

func (h *SessionHandler) step(c *fiber.Ctx, op func(ctx context.Context, id string) (*domain.Workflow, error)) error {
	id := middleware.SessionIDFromContext(c)
	w, err := op(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, id, w)
}
