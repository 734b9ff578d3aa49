package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/dto"
)

func sampleQuestions(n int) []domain.Question {
	qs := make([]domain.Question, n)
	for i := range qs {
		qs[i] = domain.Question{
			Question:      fmt.Sprintf("Question %d?", i+1),
			Answers:       []string{"A", "B", "C"},
			CorrectAnswer: "A",
		}
	}
	return qs
}

func TestQuizGenerationService_Generate(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("GenerateQuiz", mock.Anything, "source text", 5).Return(sampleQuestions(5), nil).Once()

	svc := NewQuizGenerationService(gen, nil, nil)
	quiz, err := svc.Generate(context.Background(), &dto.GenerateQuizRequest{Text: "source text", NumQuestions: 5})

	require.NoError(t, err)
	assert.Equal(t, 5, quiz.Len())
	gen.AssertExpectations(t)
}

func TestQuizGenerationService_ValidationStopsBeforeProvider(t *testing.T) {
	gen := new(MockQuizGenerator)
	svc := NewQuizGenerationService(gen, nil, nil)

	tests := []struct {
		name string
		req  *dto.GenerateQuizRequest
	}{
		{"nil request", nil},
		{"blank text", &dto.GenerateQuizRequest{Text: "  ", NumQuestions: 10}},
		{"too few", &dto.GenerateQuizRequest{Text: "t", NumQuestions: 4}},
		{"too many", &dto.GenerateQuizRequest{Text: "t", NumQuestions: 51}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.req)
			require.Error(t, err)
		})
	}
	gen.AssertNotCalled(t, "GenerateQuiz", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuizGenerationService_ProviderErrorsPassThrough(t *testing.T) {
	gen := new(MockQuizGenerator)
	upstream := domain.NewLLMServiceError(errors.New("rate limited"))
	gen.On("GenerateQuiz", mock.Anything, mock.Anything, mock.Anything).Return(nil, upstream)

	svc := NewQuizGenerationService(gen, nil, nil)
	_, err := svc.Generate(context.Background(), &dto.GenerateQuizRequest{Text: "t", NumQuestions: 5})

	assert.ErrorIs(t, err, upstream)
}

func TestQuizGenerationService_EmptyResultIsMalformed(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Question{}, nil)

	svc := NewQuizGenerationService(gen, nil, nil)
	_, err := svc.Generate(context.Background(), &dto.GenerateQuizRequest{Text: "t", NumQuestions: 5})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeMalformedModelOut, domainErr.Code)
}
