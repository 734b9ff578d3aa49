package service

import (
	"context"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/dto"
)

// AttemptService reads archived attempts.
type AttemptService interface {
	GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error)
}

type attemptServiceImpl struct {
	repo domain.AttemptRepository
}

// NewAttemptService returns a service that reports FEATURE_DISABLED when repo is nil.
func NewAttemptService(repo domain.AttemptRepository) AttemptService {
	return &attemptServiceImpl{repo: repo}
}

func (s *attemptServiceImpl) GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error) {
	if s.repo == nil {
		return nil, domain.NewFeatureDisabledError("attempt archive")
	}
	attempt, err := s.repo.GetAttemptByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("attempt not found")
	}
	return &dto.AttemptResponse{
		ID:        attempt.ID,
		CreatedAt: attempt.CreatedAt,
		Results:   attempt.Results(),
	}, nil
}
