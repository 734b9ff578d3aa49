package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-spark/internal/adapter/llm"
	"quiz-spark/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const extractionPrompt = "Extract all text content from the following document. " +
	"Return only the extracted text, preserving paragraph breaks. " +
	"Do not summarize, translate, or add commentary."

// LLMTextExtractor sends a document to a multimodal model and returns its text.
type LLMTextExtractor struct {
	model   llms.Model
	timeout time.Duration
	logger  *zap.Logger
}

func NewLLMTextExtractor(model llms.Model, timeout time.Duration, logger *zap.Logger) (*LLMTextExtractor, error) {
	if model == nil {
		return nil, errors.New("LLM model cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMTextExtractor{model: model, timeout: timeout, logger: logger}, nil
}

// ExtractText returns the model's text for data. A successful call that yields
// only whitespace returns "" with a nil error.
func (e *LLMTextExtractor) ExtractText(ctx context.Context, data []byte, mediaType string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(extractionPrompt),
				llms.BinaryPart(mediaType, data),
			},
		},
	}

	start := time.Now()
	resp, err := e.model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		e.logger.Error("Text extraction failed",
			zap.String("media_type", mediaType),
			zap.Int("bytes", len(data)),
			zap.Error(err))
		return "", domain.NewLLMServiceError(fmt.Errorf("text extraction: %w", err))
	}

	text, err := llm.FirstChoice(resp)
	if err != nil {
		return "", domain.NewLLMServiceError(err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		e.logger.Warn("Model returned no text for document",
			zap.String("media_type", mediaType),
			zap.Int("bytes", len(data)))
		return "", nil
	}

	e.logger.Info("Text extracted",
		zap.String("media_type", mediaType),
		zap.Int("bytes", len(data)),
		zap.Int("text_length", len(text)),
		zap.Duration("duration", time.Since(start)))
	return text, nil
}

var _ domain.TextExtractor = (*LLMTextExtractor)(nil)
