package handler

import (
	"github.com/gofiber/fiber/v2"

	"quiz-spark/internal/middleware"
	"quiz-spark/internal/service"
)

// Handlers groups every HTTP handler the API serves
type Handlers struct {
	Upload     *UploadHandler
	Extraction *ExtractionHandler
	Quiz       *QuizHandler
	Session    *SessionHandler
	Attempt    *AttemptHandler
	Health     *HealthHandler
}

// RegisterRoutes mounts the API under /api and the health check at /health.
func RegisterRoutes(app *fiber.App, h Handlers, sessions service.SessionService, vm *middleware.ValidationMiddleware) {
	app.Get("/health", h.Health.Health)

	api := app.Group("/api")

	api.Post("/gcs-upload", h.Upload.IssueUploadURL)
	api.Post("/uploads", h.Upload.IssueUploadURL)

	api.Post("/extract-text", h.Extraction.ExtractText)
	api.Post("/extract-pdf", h.Extraction.ExtractPDF)

	api.Post("/quiz/generate", h.Quiz.GenerateQuiz)

	api.Get("/attempts/:id", vm.ValidateIDParam(), h.Attempt.GetAttempt)

	api.Post("/sessions", h.Session.Create)
	session := api.Group("/sessions/:id", vm.ValidateIDParam(), middleware.SessionAuth(sessions))
	session.Get("/", h.Session.Get)
	session.Put("/config", h.Session.UpdateConfig)
	session.Post("/extract", h.Session.Extract)
	session.Post("/generate", h.Session.Generate)
	session.Put("/answer", h.Session.SelectAnswer)
	session.Post("/next", h.Session.Next)
	session.Post("/back", h.Session.Back)
	session.Post("/submit", h.Session.Submit)
	session.Post("/restart", h.Session.Restart)
}
