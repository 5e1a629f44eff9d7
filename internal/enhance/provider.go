// File path: internal/enhance/provider.go
package enhance

import (
	"context"
	"os"
	"strings"

	"faqforge/internal/common"
)

// Request carries the base text of one step plus the FAQ question it belongs
// to. Providers are stateless per call; identical input yields an equivalent
// enhancement.
type Request struct {
	Question string
	StepText string
}

// Response is the raw provider output before it is attached to a step.
type Response struct {
	EnhancedText string
	Confidence   float64
}

// Provider abstracts the model backend used for step enhancement.
type Provider interface {
	Enhance(ctx context.Context, req Request) (Response, error)
	Name() string
}

// NewProvider selects a backend from the environment: Gemini when
// GEMINI_API_KEY is set, OpenAI when OPENAI_API_KEY is set, otherwise a
// deterministic local fallback so the service stays usable offline.
func NewProvider(ctx context.Context) Provider {
	logger := common.Logger()
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		provider, err := NewGeminiProvider(ctx, key)
		if err != nil {
			logger.Error("enhance: gemini client init failed; falling back to local provider", "error", err)
			return NewLocalProvider()
		}
		logger.Info("enhance: gemini provider selected", "model", provider.model)
		return provider
	}
	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		provider := NewOpenAIProvider(key)
		logger.Info("enhance: openai provider selected", "model", provider.model)
		return provider
	}
	logger.Warn("enhance: no API key configured; using local provider")
	return NewLocalProvider()
}
