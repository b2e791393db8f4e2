package providers

import (
	"context"
	"errors"
)

// ErrAnalysisUnauthorized indicates the AI analysis service rejected our credentials
var ErrAnalysisUnauthorized = errors.New("ai analysis unauthorized")

// AnalysisProvider runs a risk analysis prompt against the AI service
// and returns the raw response text. The response may be structured
// JSON, a doubly encoded JSON string, or free text; callers normalize
// it downstream.
type AnalysisProvider interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}
