package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"quiz-spark/internal/domain"
)

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	args := m.Called(ctx, key, expiration)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// memoryCache is a map-backed domain.Cache for tests that care about stored state.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = expiration
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; !ok {
		return domain.ErrCacheMiss
	}
	c.ttls[key] = expiration
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

// --- MockTextExtractor ---
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, data []byte, mediaType string) (string, error) {
	args := m.Called(ctx, data, mediaType)
	return args.String(0), args.Error(1)
}

// --- MockMediaTypeDetector ---
type MockMediaTypeDetector struct {
	mock.Mock
}

func (m *MockMediaTypeDetector) Detect(data []byte) string {
	args := m.Called(data)
	return args.String(0)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuiz(ctx context.Context, text string, numQuestions int) ([]domain.Question, error) {
	args := m.Called(ctx, text, numQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

// --- MockURLSigner ---
type MockURLSigner struct {
	mock.Mock
}

func (m *MockURLSigner) SignedUploadURL(ctx context.Context, bucket, key, contentType string, expires time.Time) (string, error) {
	args := m.Called(ctx, bucket, key, contentType, expires)
	return args.String(0), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

var (
	_ domain.Cache             = (*MockCache)(nil)
	_ domain.Cache             = (*memoryCache)(nil)
	_ domain.TextExtractor     = (*MockTextExtractor)(nil)
	_ domain.MediaTypeDetector = (*MockMediaTypeDetector)(nil)
	_ domain.QuizGenerator     = (*MockQuizGenerator)(nil)
	_ domain.URLSigner         = (*MockURLSigner)(nil)
	_ domain.AttemptRepository = (*MockAttemptRepository)(nil)
)
