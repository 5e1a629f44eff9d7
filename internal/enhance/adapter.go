// File path: internal/enhance/adapter.go
package enhance

import (
	"context"
	"fmt"
	"strings"

	"faqforge/internal/common"
	"faqforge/internal/faq"
)

// Adapter wraps a Provider with caching and the error contract the
// reconciliation engine relies on: every failure surfaces as
// faq.ErrAdapterUnavailable so callers can degrade to a pending step instead
// of aborting.
type Adapter struct {
	provider Provider
	cache    *resultCache
}

func NewAdapter(provider Provider) *Adapter {
	return &Adapter{provider: provider, cache: newResultCache(256)}
}

// ProviderName reports the backing model backend.
func (a *Adapter) ProviderName() string {
	if a == nil || a.provider == nil {
		return "none"
	}
	return a.provider.Name()
}

// Enhance produces an enhancement for one step. The call is idempotent per
// step text: repeated calls with identical text hit the cache and never reach
// the provider again.
func (a *Adapter) Enhance(ctx context.Context, question string, step faq.StepRecord) faq.EnhancementResult {
	result := faq.EnhancementResult{StepIndex: step.Index}
	text := strings.TrimSpace(step.UserText)
	if text == "" {
		result.Err = fmt.Errorf("step %d has no user text: %w", step.Index, faq.ErrAdapterUnavailable)
		return result
	}
	key := faq.TextFingerprint(question, text)
	if cached, ok := a.cache.get(key); ok {
		result.EnhancedText = cached.EnhancedText
		result.Confidence = cached.Confidence
		return result
	}
	resp, err := a.provider.Enhance(ctx, Request{Question: question, StepText: text})
	if err != nil {
		common.Logger().Warn("enhance: step enhancement failed", "step", step.Index, "provider", a.provider.Name(), "error", err)
		result.Err = fmt.Errorf("enhance step %d: %v: %w", step.Index, err, faq.ErrAdapterUnavailable)
		return result
	}
	a.cache.put(key, resp)
	result.EnhancedText = resp.EnhancedText
	result.Confidence = resp.Confidence
	return result
}
