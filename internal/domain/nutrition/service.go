package nutrition

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	defaultMIMEType      = "image/jpeg"
	defaultMaxImageBytes = 5 * 1024 * 1024
)

var allowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/heic": {},
}

type Service struct {
	analyzer      Analyzer
	maxImageBytes int
}

// NewService returns a service backed by analyzer. A nil analyzer leaves the
// feature disabled.
func NewService(analyzer Analyzer, maxImageBytes int) *Service {
	if maxImageBytes <= 0 {
		maxImageBytes = defaultMaxImageBytes
	}
	return &Service{analyzer: analyzer, maxImageBytes: maxImageBytes}
}

func (s *Service) Enabled() bool {
	return s.analyzer != nil
}

func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) (Analysis, error) {
	if s.analyzer == nil {
		return Analysis{}, ErrAnalyzerDisabled
	}

	image, mimeType, err := s.decodeImage(input)
	if err != nil {
		return Analysis{}, err
	}

	return s.analyzer.Analyze(ctx, image, mimeType)
}

func (s *Service) decodeImage(input AnalyzeInput) ([]byte, string, error) {
	payload := strings.TrimSpace(input.ImageBase64)
	mimeType := strings.ToLower(strings.TrimSpace(input.MIMEType))

	// data:image/png;base64,....
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, "", fmt.Errorf("%w: unsupported data url", ErrInvalidImage)
		}
		if mimeType == "" {
			mimeType = strings.TrimSuffix(header, ";base64")
		}
		payload = data
	}

	if payload == "" {
		return nil, "", fmt.Errorf("%w: no image provided", ErrInvalidImage)
	}
	if mimeType == "" {
		mimeType = defaultMIMEType
	}
	if _, ok := allowedMIMETypes[mimeType]; !ok {
		return nil, "", fmt.Errorf("%w: unsupported mime type %q", ErrInvalidImage, mimeType)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > s.maxImageBytes+3 {
		return nil, "", ErrImageTooLarge
	}

	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(image) > s.maxImageBytes {
		return nil, "", ErrImageTooLarge
	}
	return image, mimeType, nil
}
