package domain

import (
	"context"
	"time"
)

// QuizGenerator turns source text into questions using a hosted language model.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, text string, numQuestions int) ([]Question, error)
}

// TextExtractor asks a hosted document-understanding model for the text of a blob.
// mediaType is always resolved by the caller.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, mediaType string) (string, error)
}

// MediaTypeDetector infers a media type from content. It returns "" when it cannot tell.
type MediaTypeDetector interface {
	Detect(data []byte) string
}

// URLSigner issues time-limited write URLs for a storage object key.
type URLSigner interface {
	SignedUploadURL(ctx context.Context, bucket, key, contentType string, expires time.Time) (string, error)
}

// Attempt is an archived, finished quiz.
type Attempt struct {
	ID         string
	Quiz       *Quiz
	Answers    AnswerSet
	SourceText string
	Score      int
	Total      int
	CreatedAt  time.Time
}

// Results grades the archived attempt.
func (a *Attempt) Results() Results {
	return Grade(a.Quiz, a.Answers, a.SourceText)
}

// AttemptRepository persists finished attempts.
type AttemptRepository interface {
	SaveAttempt(ctx context.Context, attempt *Attempt) error
	GetAttemptByID(ctx context.Context, id string) (*Attempt, error)
}
