package dto

import (
	"quiz-spark/internal/domain"
)

// UploadURLRequest asks for a signed upload URL
// @Description Request body for issuing an upload URL
type UploadURLRequest struct {
	Filename    string `json:"filename" validate:"notblank"`
	ContentType string `json:"contentType" validate:"notblank"`
}

// UploadURLResponse carries the signed URL and the generated object key
type UploadURLResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// ExtractTextRequest represents a document to extract text from
// @Description Request body for text extraction. fileDataUri is a base64 data URI.
type ExtractTextRequest struct {
	FileDataURI string `json:"fileDataUri" validate:"notblank"`
}

// ExtractTextResponse represents the extracted text
type ExtractTextResponse struct {
	Text string `json:"text"`
}

// GenerateQuizRequest represents a quiz generation request
// @Description Request body for generating a quiz from source text
type GenerateQuizRequest struct {
	Text         string `json:"text" validate:"notblank"`
	NumQuestions int    `json:"numQuestions" validate:"min=5,max=50"`
}

// GenerateQuizResponse represents a generated quiz
type GenerateQuizResponse struct {
	Quiz []domain.Question `json:"quiz"`
}
