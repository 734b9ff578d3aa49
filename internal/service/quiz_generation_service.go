package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/dto"
	"quiz-spark/internal/logger"
	"quiz-spark/internal/metrics"
	"quiz-spark/internal/validation"
)

// QuizGenerationService builds a quiz from source text.
type QuizGenerationService interface {
	Generate(ctx context.Context, req *dto.GenerateQuizRequest) (*domain.Quiz, error)
}

type quizGenerationServiceImpl struct {
	generator domain.QuizGenerator
	validator *validation.Validator
	metrics   *metrics.Metrics
}

func NewQuizGenerationService(generator domain.QuizGenerator, validator *validation.Validator, m *metrics.Metrics) QuizGenerationService {
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &quizGenerationServiceImpl{generator: generator, validator: validator, metrics: m}
}

// Generate validates the request and returns a complete, validated quiz.
func (s *quizGenerationServiceImpl) Generate(ctx context.Context, req *dto.GenerateQuizRequest) (*domain.Quiz, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("request body is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	start := time.Now()
	questions, err := s.generator.GenerateQuiz(ctx, req.Text, req.NumQuestions)
	s.metrics.ObserveUpstream("generate_quiz", start, err)
	if err != nil {
		return nil, err
	}

	quiz, err := domain.NewQuiz(questions)
	if err != nil {
		logger.Get().Error("Generator returned an invalid quiz", zap.Error(err))
		return nil, domain.NewMalformedModelOutputError(err)
	}
	return quiz, nil
}
