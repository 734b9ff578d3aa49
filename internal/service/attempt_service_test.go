package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-spark/internal/domain"
)

func TestAttemptService_Disabled(t *testing.T) {
	_, err := NewAttemptService(nil).GetAttempt(context.Background(), "x")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeFeatureDisabled, domainErr.Code)
}

func TestAttemptService_GetAttempt(t *testing.T) {
	quiz, err := domain.NewQuiz(sampleQuestions(2))
	require.NoError(t, err)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	repo := new(MockAttemptRepository)
	repo.On("GetAttemptByID", context.Background(), "A1").Return(&domain.Attempt{
		ID: "A1", Quiz: quiz, Answers: domain.AnswerSet{"A", "B"}, SourceText: "src", CreatedAt: created,
	}, nil)
	repo.On("GetAttemptByID", context.Background(), "missing").Return(nil, domain.NewNotFoundError("attempt not found"))

	svc := NewAttemptService(repo)
	resp, err := svc.GetAttempt(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", resp.ID)
	assert.Equal(t, created, resp.CreatedAt)
	assert.Equal(t, 1, resp.Results.Score)
	assert.Equal(t, 2, resp.Results.Total)

	_, err = svc.GetAttempt(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
