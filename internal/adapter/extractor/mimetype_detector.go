package extractor

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"quiz-spark/internal/domain"
)

// MimetypeDetector sniffs media types from file signatures.
type MimetypeDetector struct{}

func NewMimetypeDetector() MimetypeDetector {
	return MimetypeDetector{}
}

// Detect returns the base media type of data, or "" when only the generic
// binary fallback matches.
func (MimetypeDetector) Detect(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	mt := mimetype.Detect(data)
	if mt.Is("application/octet-stream") {
		return ""
	}
	base, _, _ := strings.Cut(mt.String(), ";")
	return strings.TrimSpace(base)
}

var _ domain.MediaTypeDetector = MimetypeDetector{}
