package nutrition

import "errors"

var (
	ErrAnalyzerDisabled  = errors.New("food analysis is not configured")
	ErrInvalidImage      = errors.New("invalid image")
	ErrImageTooLarge     = errors.New("image too large")
	ErrMalformedAnalysis = errors.New("malformed analysis response")
)
