package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/dto"
	"quiz-spark/internal/logger"
	"quiz-spark/internal/metrics"
	"quiz-spark/internal/validation"
)

const (
	errBucketNotConfigured = "GCS_BUCKET_NAME environment variable not set"
	errUploadFieldsMissing = "filename and contentType are required"
	errSignedURLFailed     = "Failed to generate signed URL"
)

// UploadService issues short-lived URLs that let a client write a file directly to object storage.
type UploadService interface {
	IssueUploadURL(ctx context.Context, req *dto.UploadURLRequest) (*dto.UploadURLResponse, error)
}

type uploadServiceImpl struct {
	signer    domain.URLSigner
	bucket    string
	expiry    time.Duration
	validator *validation.Validator
	metrics   *metrics.Metrics
	now       func() time.Time
	newID     func() string
}

func NewUploadService(signer domain.URLSigner, bucket string, expiry time.Duration, validator *validation.Validator, m *metrics.Metrics) UploadService {
	if validator == nil {
		validator = validation.NewValidator()
	}
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &uploadServiceImpl{
		signer:    signer,
		bucket:    strings.TrimSpace(bucket),
		expiry:    expiry,
		validator: validator,
		metrics:   m,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// IssueUploadURL checks configuration before input, and input before calling the provider.
func (s *uploadServiceImpl) IssueUploadURL(ctx context.Context, req *dto.UploadURLRequest) (*dto.UploadURLResponse, error) {
	if s.bucket == "" || s.signer == nil {
		logger.Get().Error("Upload requested but no storage bucket is configured")
		return nil, domain.NewConfigurationError(errBucketNotConfigured)
	}
	if req == nil {
		return nil, domain.NewInvalidInputError(errUploadFieldsMissing)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, domain.NewError(domain.CodeInvalidInput, errUploadFieldsMissing, err)
	}

	key := s.newID() + "-" + req.Filename
	start := time.Now()
	url, err := s.signer.SignedUploadURL(ctx, s.bucket, key, req.ContentType, s.now().Add(s.expiry))
	s.metrics.ObserveUpstream("sign_upload_url", start, err)
	if err != nil {
		logger.Get().Error("Failed to generate signed upload URL",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err))
		return nil, domain.NewStorageServiceError(errSignedURLFailed, err)
	}

	logger.Get().Info("Issued upload URL", zap.String("key", key), zap.Duration("expires_in", s.expiry))
	return &dto.UploadURLResponse{URL: url, Filename: key}, nil
}
