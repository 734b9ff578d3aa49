package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quiz-spark/internal/domain"
)

// SessionClaims binds a bearer token to one workflow session.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionResponse is returned by every session operation
type SessionResponse struct {
	SessionID string      `json:"sessionId"`
	View      domain.View `json:"view"`
}

// CreateSessionResponse additionally carries the bearer token for the new session
type CreateSessionResponse struct {
	SessionID string      `json:"sessionId"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	View      domain.View `json:"view"`
}

// UpdateConfigRequest edits the configuration view. Omitted fields are left unchanged.
type UpdateConfigRequest struct {
	Text         *string `json:"text,omitempty"`
	NumQuestions *int    `json:"numQuestions,omitempty"`
}

// SessionExtractRequest extracts a document into the session's text field
type SessionExtractRequest struct {
	FileDataURI string `json:"fileDataUri" validate:"notblank"`
}

// SelectAnswerRequest records the answer for the current question
type SelectAnswerRequest struct {
	Answer string `json:"answer" validate:"notblank"`
}

// AttemptResponse is an archived, graded attempt
type AttemptResponse struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Results   domain.Results `json:"results"`
}
