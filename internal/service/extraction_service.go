package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"quiz-spark/internal/cache"
	"quiz-spark/internal/domain"
	"quiz-spark/internal/logger"
	"quiz-spark/internal/metrics"
)

// LegacyPDFMediaType is assumed by the PDF-only endpoint when the URI declares no type.
const LegacyPDFMediaType = "application/pdf"

// ExtractionService turns an uploaded document into plain text.
type ExtractionService interface {
	// ExtractText decodes a data URI, resolves its media type and returns the document text.
	ExtractText(ctx context.Context, fileDataURI string) (string, error)
	// ExtractTextWithHint is ExtractText with a fallback media type used only when
	// the URI declares none.
	ExtractTextWithHint(ctx context.Context, fileDataURI, hint string) (string, error)
}

type extractionServiceImpl struct {
	extractor domain.TextExtractor
	detector  domain.MediaTypeDetector
	cache     domain.Cache
	cacheTTL  time.Duration
	maxBytes  int64
	metrics   *metrics.Metrics
	group     singleflight.Group
}

// ExtractionOptions tunes the extraction service. Zero values disable the feature.
type ExtractionOptions struct {
	Cache    domain.Cache
	CacheTTL time.Duration
	MaxBytes int64
	Metrics  *metrics.Metrics
}

func NewExtractionService(extractor domain.TextExtractor, detector domain.MediaTypeDetector, opts ExtractionOptions) ExtractionService {
	return &extractionServiceImpl{
		extractor: extractor,
		detector:  detector,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		maxBytes:  opts.MaxBytes,
		metrics:   opts.Metrics,
	}
}

// ResolveMediaType applies the media type policy: the declared type wins, then
// the hint, then content sniffing. It fails when none of them produce a type.
func ResolveMediaType(blob *domain.Blob, hint string, detector domain.MediaTypeDetector) (string, error) {
	if blob.Declared() {
		return blob.MediaType, nil
	}
	if hint != "" {
		return hint, nil
	}
	if detector != nil {
		if detected := detector.Detect(blob.Data); detected != "" {
			return detected, nil
		}
	}
	return "", domain.NewUndeterminedMediaTypeError()
}

func (s *extractionServiceImpl) ExtractText(ctx context.Context, fileDataURI string) (string, error) {
	return s.ExtractTextWithHint(ctx, fileDataURI, "")
}

func (s *extractionServiceImpl) ExtractTextWithHint(ctx context.Context, fileDataURI, hint string) (string, error) {
	blob, err := domain.ParseDataURI(fileDataURI)
	if err != nil {
		return "", err
	}
	if s.maxBytes > 0 && int64(len(blob.Data)) > s.maxBytes {
		return "", domain.ValidationErrors{{
			Code:    domain.CodeOutOfRange,
			Field:   "fileDataUri",
			Message: "file is too large",
			Value:   len(blob.Data),
		}}
	}

	mediaType, err := ResolveMediaType(blob, hint, s.detector)
	if err != nil {
		logger.Get().Warn("Could not determine media type of uploaded file",
			zap.Int("bytes", len(blob.Data)))
		return "", err
	}

	key := cache.GenerateCacheKey(cache.ServiceExtraction, "text", contentDigest(blob.Data), mediaType)
	if text, ok := s.lookup(ctx, key); ok {
		return text, nil
	}

	// The shared call outlives any single caller; the extractor bounds it with its own timeout.
	callCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		start := time.Now()
		text, err := s.extractor.ExtractText(callCtx, blob.Data, mediaType)
		s.metrics.ObserveUpstream("extract_text", start, err)
		if err != nil {
			return "", err
		}
		s.store(callCtx, key, text)
		return text, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-ch:
	}
	if err := res.Err; err != nil {
		var domainErr *domain.DomainError
		if !errors.As(err, &domainErr) {
			err = domain.NewLLMServiceError(err)
		}
		return "", err
	}
	if res.Shared {
		logger.Get().Debug("Extraction result shared with a concurrent request", zap.String("key", key))
	}
	return res.Val.(string), nil
}

func (s *extractionServiceImpl) lookup(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	text, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Extraction cache read failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.ObserveCache("extraction", false)
		return "", false
	}
	s.metrics.ObserveCache("extraction", true)
	logger.Get().Debug("Extraction cache hit", zap.String("key", key))
	if s.cacheTTL > 0 {
		// frequently re-uploaded documents stay cached
		if err := s.cache.Expire(ctx, key, s.cacheTTL); err != nil && !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Extraction cache TTL refresh failed", zap.String("key", key), zap.Error(err))
		}
	}
	return text, true
}

func (s *extractionServiceImpl) store(ctx context.Context, key, text string) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, text, s.cacheTTL); err != nil {
		logger.Get().Warn("Extraction cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func contentDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
