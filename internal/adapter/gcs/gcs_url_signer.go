package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"quiz-spark/internal/domain"
)

// ErrSignerClosed is returned for URLs requested after Close.
var ErrSignerClosed = errors.New("url signer is closed")

// GCSURLSigner issues V4 signed PUT URLs for Cloud Storage objects.
// The storage client is created on first use so the server can start
// without cloud credentials.
type GCSURLSigner struct {
	credentialsFile string
	logger          *zap.Logger

	once      sync.Once
	client    *storage.Client
	clientErr error
}

func NewGCSURLSigner(credentialsFile string, logger *zap.Logger) *GCSURLSigner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GCSURLSigner{credentialsFile: credentialsFile, logger: logger}
}

func (s *GCSURLSigner) storageClient(ctx context.Context) (*storage.Client, error) {
	s.once.Do(func() {
		opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
		if s.credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(s.credentialsFile))
		} else {
			s.logger.Warn("No storage credentials file configured, falling back to application default credentials")
		}
		// The client outlives the request that created it.
		s.client, s.clientErr = storage.NewClient(context.WithoutCancel(ctx), opts...)
	})
	return s.client, s.clientErr
}

// SignedUploadURL returns a URL that accepts a single PUT of contentType to bucket/key until expires.
func (s *GCSURLSigner) SignedUploadURL(ctx context.Context, bucket, key, contentType string, expires time.Time) (string, error) {
	client, err := s.storageClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create storage client: %w", err)
	}

	url, err := client.Bucket(bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		ContentType: contentType,
		Expires:     expires,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s/%s: %w", bucket, key, err)
	}
	return url, nil
}

// Close releases the underlying client if one was created. It waits for a
// client that is being created, and no client is created afterwards.
func (s *GCSURLSigner) Close() error {
	s.once.Do(func() { s.clientErr = ErrSignerClosed })
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

var _ domain.URLSigner = (*GCSURLSigner)(nil)
