package handler_test

import (
	"context"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/dto"
)

// --- Manual Mocks ---

type MockUploadService struct {
	IssueUploadURLFunc func(ctx context.Context, req *dto.UploadURLRequest) (*dto.UploadURLResponse, error)
}

func (m *MockUploadService) IssueUploadURL(ctx context.Context, req *dto.UploadURLRequest) (*dto.UploadURLResponse, error) {
	if m.IssueUploadURLFunc != nil {
		return m.IssueUploadURLFunc(ctx, req)
	}
	panic("MockUploadService.IssueUploadURLFunc not implemented")
}

type MockExtractionService struct {
	ExtractTextWithHintFunc func(ctx context.Context, uri, hint string) (string, error)
}

func (m *MockExtractionService) ExtractText(ctx context.Context, uri string) (string, error) {
	return m.ExtractTextWithHint(ctx, uri, "")
}

func (m *MockExtractionService) ExtractTextWithHint(ctx context.Context, uri, hint string) (string, error) {
	if m.ExtractTextWithHintFunc != nil {
		return m.ExtractTextWithHintFunc(ctx, uri, hint)
	}
	panic("MockExtractionService.ExtractTextWithHintFunc not implemented")
}

type MockQuizGenerationService struct {
	GenerateFunc func(ctx context.Context, req *dto.GenerateQuizRequest) (*domain.Quiz, error)
}

func (m *MockQuizGenerationService) Generate(ctx context.Context, req *dto.GenerateQuizRequest) (*domain.Quiz, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	panic("MockQuizGenerationService.GenerateFunc not implemented")
}

type MockAttemptService struct {
	GetAttemptFunc func(ctx context.Context, id string) (*dto.AttemptResponse, error)
}

func (m *MockAttemptService) GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error) {
	if m.GetAttemptFunc != nil {
		return m.GetAttemptFunc(ctx, id)
	}
	panic("MockAttemptService.GetAttemptFunc not implemented")
}

type MockSessionService struct {
	CreateFunc        func(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetFunc           func(ctx context.Context, id string) (*domain.Workflow, error)
	UpdateConfigFunc  func(ctx context.Context, id string, req *dto.UpdateConfigRequest) (*domain.Workflow, error)
	ExtractIntoFunc   func(ctx context.Context, id, uri string) (*domain.Workflow, error)
	GenerateFunc      func(ctx context.Context, id string) (*domain.Workflow, error)
	SelectAnswerFunc  func(ctx context.Context, id, answer string) (*domain.Workflow, error)
	NextFunc          func(ctx context.Context, id string) (*domain.Workflow, error)
	BackFunc          func(ctx context.Context, id string) (*domain.Workflow, error)
	SubmitFunc        func(ctx context.Context, id string) (*domain.Workflow, error)
	RestartFunc       func(ctx context.Context, id string) (*domain.Workflow, error)
	ValidateTokenFunc func(ctx context.Context, token string) (*dto.SessionClaims, error)
}

func (m *MockSessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx)
	}
	panic("MockSessionService.CreateFunc not implemented")
}

func (m *MockSessionService) Get(ctx context.Context, id string) (*domain.Workflow, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockSessionService.GetFunc not implemented")
}

func (m *MockSessionService) UpdateConfig(ctx context.Context, id string, req *dto.UpdateConfigRequest) (*domain.Workflow, error) {
	if m.UpdateConfigFunc != nil {
		return m.UpdateConfigFunc(ctx, id, req)
	}
	panic("MockSessionService.UpdateConfigFunc not implemented")
}

func (m *MockSessionService) ExtractInto(ctx context.Context, id, uri string) (*domain.Workflow, error) {
	if m.ExtractIntoFunc != nil {
		return m.ExtractIntoFunc(ctx, id, uri)
	}
	panic("MockSessionService.ExtractIntoFunc not implemented")
}

func (m *MockSessionService) Generate(ctx context.Context, id string) (*domain.Workflow, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, id)
	}
	panic("MockSessionService.GenerateFunc not implemented")
}

func (m *MockSessionService) SelectAnswer(ctx context.Context, id, answer string) (*domain.Workflow, error) {
	if m.SelectAnswerFunc != nil {
		return m.SelectAnswerFunc(ctx, id, answer)
	}
	panic("MockSessionService.SelectAnswerFunc not implemented")
}

func (m *MockSessionService) Next(ctx context.Context, id string) (*domain.Workflow, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, id)
	}
	panic("MockSessionService.NextFunc not implemented")
}

func (m *MockSessionService) Back(ctx context.Context, id string) (*domain.Workflow, error) {
	if m.BackFunc != nil {
		return m.BackFunc(ctx, id)
	}
	panic("MockSessionService.BackFunc not implemented")
}

func (m *MockSessionService) Submit(ctx context.Context, id string) (*domain.Workflow, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, id)
	}
	panic("MockSessionService.SubmitFunc not implemented")
}

func (m *MockSessionService) Restart(ctx context.Context, id string) (*domain.Workflow, error) {
	if m.RestartFunc != nil {
		return m.RestartFunc(ctx, id)
	}
	panic("MockSessionService.RestartFunc not implemented")
}

func (m *MockSessionService) ValidateToken(ctx context.Context, token string) (*dto.SessionClaims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	panic("MockSessionService.ValidateTokenFunc not implemented")
}
