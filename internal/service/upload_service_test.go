package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/dto"
)

func newTestUploadService(signer domain.URLSigner, bucket string, now time.Time) *uploadServiceImpl {
	svc := NewUploadService(signer, bucket, 15*time.Minute, nil, nil).(*uploadServiceImpl)
	svc.now = func() time.Time { return now }
	svc.newID = func() string { return "3f2c7a9e-1111-4222-8333-444455556666" }
	return svc
}

func TestUploadService_IssueUploadURL(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	signer := new(MockURLSigner)
	signer.On("SignedUploadURL", mock.Anything, "quiz-uploads",
		"3f2c7a9e-1111-4222-8333-444455556666-notes.pdf", "application/pdf", now.Add(15*time.Minute)).
		Return("https://storage.googleapis.com/quiz-uploads/signed", nil).Once()

	svc := newTestUploadService(signer, "quiz-uploads", now)
	resp, err := svc.IssueUploadURL(context.Background(), &dto.UploadURLRequest{Filename: "notes.pdf", ContentType: "application/pdf"})

	require.NoError(t, err)
	assert.Equal(t, "https://storage.googleapis.com/quiz-uploads/signed", resp.URL)
	assert.NotEqual(t, "notes.pdf", resp.Filename)
	assert.True(t, len(resp.Filename) > len("notes.pdf"))
	assert.Contains(t, resp.Filename, "-notes.pdf")
	signer.AssertExpectations(t)
}

func TestUploadService_RealKeysAreUnique(t *testing.T) {
	signer := new(MockURLSigner)
	signer.On("SignedUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("u", nil)

	svc := NewUploadService(signer, "b", 0, nil, nil)
	a, err := svc.IssueUploadURL(context.Background(), &dto.UploadURLRequest{Filename: "f.txt", ContentType: "text/plain"})
	require.NoError(t, err)
	b, err := svc.IssueUploadURL(context.Background(), &dto.UploadURLRequest{Filename: "f.txt", ContentType: "text/plain"})
	require.NoError(t, err)
	assert.NotEqual(t, a.Filename, b.Filename)
}

func TestUploadService_MissingFields(t *testing.T) {
	signer := new(MockURLSigner)
	svc := newTestUploadService(signer, "quiz-uploads", time.Now())

	for _, req := range []*dto.UploadURLRequest{
		{Filename: "notes.pdf"},
		{ContentType: "application/pdf"},
		nil,
	} {
		_, err := svc.IssueUploadURL(context.Background(), req)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
		assert.Equal(t, "filename and contentType are required", domainErr.Message)
	}
	signer.AssertNotCalled(t, "SignedUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_BucketCheckedBeforeInput(t *testing.T) {
	signer := new(MockURLSigner)
	svc := newTestUploadService(signer, "", time.Now())

	_, err := svc.IssueUploadURL(context.Background(), &dto.UploadURLRequest{})
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeConfiguration, domainErr.Code)
	assert.Equal(t, "GCS_BUCKET_NAME environment variable not set", domainErr.Message)
	signer.AssertNotCalled(t, "SignedUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_ProviderFailure(t *testing.T) {
	signer := new(MockURLSigner)
	signer.On("SignedUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("permission denied on service account"))

	svc := newTestUploadService(signer, "quiz-uploads", time.Now())
	_, err := svc.IssueUploadURL(context.Background(), &dto.UploadURLRequest{Filename: "a.png", ContentType: "image/png"})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeStorageServiceError, domainErr.Code)
	assert.Equal(t, "Failed to generate signed URL", domainErr.Message)
}
