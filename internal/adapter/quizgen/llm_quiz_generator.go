package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-spark/internal/adapter/llm"
	"quiz-spark/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const quizPrompt = `You are an expert quiz generator. Create exactly %d multiple-choice questions
that test understanding of the source text below.

Rules:
1. Every question must be answerable from the source text alone.
2. Each question has between 3 and 5 candidate answers, all plausible and of similar length.
3. Exactly one answer is correct, and "correctAnswer" must repeat that answer word for word.
4. Do not number or letter the answers.

Respond with ONLY a JSON object in the following format:
{
  "quiz": [
    {
      "question": "What is the capital of France?",
      "answers": ["Berlin", "Paris", "Madrid", "Rome"],
      "correctAnswer": "Paris"
    }
  ]
}

Source text:
"""
%s
"""`

// LLMQuizGenerator implements domain.QuizGenerator with a langchaingo model.
type LLMQuizGenerator struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewLLMQuizGenerator creates a generator; timeout <= 0 disables the per-call deadline.
func NewLLMQuizGenerator(model llms.Model, temperature float64, timeout time.Duration, logger *zap.Logger) (*LLMQuizGenerator, error) {
	if model == nil {
		return nil, errors.New("LLM model cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMQuizGenerator{
		model:       model,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}, nil
}

type generatedQuiz struct {
	Quiz []generatedQuestion `json:"quiz"`
}

type generatedQuestion struct {
	Question      *string  `json:"question"`
	Answers       []string `json:"answers"`
	CorrectAnswer *string  `json:"correctAnswer"`
}

// GenerateQuiz asks the model for numQuestions questions and validates the whole
// response. A single malformed question fails the call.
func (g *LLMQuizGenerator) GenerateQuiz(ctx context.Context, text string, numQuestions int) ([]domain.Question, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(quizPrompt, numQuestions, text)
	g.logger.Debug("Generating quiz", zap.Int("num_questions", numQuestions), zap.Int("text_length", len(text)))

	resp, err := g.model.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithTemperature(g.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.Error("LLM request timed out", zap.Error(err))
			return nil, domain.NewLLMServiceError(fmt.Errorf("LLM request timed out: %w", err))
		}
		g.logger.Error("Failed to get response from LLM", zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("LLM call failed: %w", err))
	}

	raw, err := llm.FirstChoice(resp)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	questions, err := ParseQuiz(raw)
	if err != nil {
		g.logger.Error("LLM returned a malformed quiz",
			zap.Error(err),
			zap.String("raw_response", llm.Truncate(raw, 500)))
		return nil, err
	}

	if len(questions) != numQuestions {
		g.logger.Warn("LLM returned a different number of questions than requested",
			zap.Int("requested", numQuestions),
			zap.Int("received", len(questions)))
	}
	g.logger.Info("Quiz generated", zap.Int("num_questions", len(questions)))
	return questions, nil
}

// ParseQuiz decodes and validates a model response. It never returns a partial quiz.
func ParseQuiz(raw string) ([]domain.Question, error) {
	extracted, ok := llm.ExtractJSONObject(raw)
	if !ok {
		return nil, domain.NewMalformedModelOutputError(errors.New("no JSON object found in LLM response"))
	}

	var parsed generatedQuiz
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		return nil, domain.NewMalformedModelOutputError(fmt.Errorf("failed to unmarshal quiz JSON: %w", err))
	}
	if len(parsed.Quiz) == 0 {
		return nil, domain.NewMalformedModelOutputError(errors.New(`response has no "quiz" entries`))
	}

	questions := make([]domain.Question, 0, len(parsed.Quiz))
	for i, gq := range parsed.Quiz {
		if gq.Question == nil || gq.CorrectAnswer == nil || gq.Answers == nil {
			return nil, domain.NewMalformedModelOutputError(fmt.Errorf("question %d is missing required fields", i+1))
		}
		q := domain.Question{
			Question:      strings.TrimSpace(*gq.Question),
			Answers:       trimAll(gq.Answers),
			CorrectAnswer: strings.TrimSpace(*gq.CorrectAnswer),
		}
		if err := q.Validate(); err != nil {
			return nil, domain.NewMalformedModelOutputError(fmt.Errorf("question %d: %w", i+1, err))
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

var _ domain.QuizGenerator = (*LLMQuizGenerator)(nil)
