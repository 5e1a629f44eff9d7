// File path: internal/enhance/adapter_test.go
package enhance

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"faqforge/internal/faq"
)

type countingProvider struct {
	calls int
	fail  bool
}

func (p *countingProvider) Enhance(ctx context.Context, req Request) (Response, error) {
	p.calls++
	if p.fail {
		return Response{}, fmt.Errorf("backend down")
	}
	return Response{EnhancedText: "enhanced: " + req.StepText, Confidence: 0.9}, nil
}

func (p *countingProvider) Name() string { return "counting" }

func TestAdapterCachesByStepText(t *testing.T) {
	provider := &countingProvider{}
	adapter := NewAdapter(provider)
	ctx := context.Background()
	step := faq.StepRecord{Index: 0, UserText: "click save"}

	first := adapter.Enhance(ctx, "How do I save?", step)
	if first.Err != nil {
		t.Fatalf("enhance: %v", first.Err)
	}
	second := adapter.Enhance(ctx, "How do I save?", step)
	if second.Err != nil {
		t.Fatalf("enhance: %v", second.Err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", provider.calls)
	}
	if first.EnhancedText != second.EnhancedText {
		t.Fatalf("cached result differs: %q vs %q", first.EnhancedText, second.EnhancedText)
	}

	// Same index, new text: the cache key follows content, not position.
	step.UserText = "click export"
	third := adapter.Enhance(ctx, "How do I save?", step)
	if third.Err != nil {
		t.Fatalf("enhance: %v", third.Err)
	}
	if provider.calls != 2 {
		t.Fatalf("expected 2 provider calls after text change, got %d", provider.calls)
	}
	if third.EnhancedText == first.EnhancedText {
		t.Fatalf("stale enhancement returned after text change")
	}
}

func TestAdapterWrapsFailuresAsUnavailable(t *testing.T) {
	adapter := NewAdapter(&countingProvider{fail: true})
	result := adapter.Enhance(context.Background(), "q", faq.StepRecord{Index: 3, UserText: "text"})
	if !errors.Is(result.Err, faq.ErrAdapterUnavailable) {
		t.Fatalf("expected ErrAdapterUnavailable, got %v", result.Err)
	}
	if result.StepIndex != 3 {
		t.Fatalf("result lost step index: %d", result.StepIndex)
	}
}

func TestAdapterRejectsEmptyStepText(t *testing.T) {
	provider := &countingProvider{}
	adapter := NewAdapter(provider)
	result := adapter.Enhance(context.Background(), "q", faq.StepRecord{Index: 0})
	if !errors.Is(result.Err, faq.ErrAdapterUnavailable) {
		t.Fatalf("expected ErrAdapterUnavailable, got %v", result.Err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider called for empty text")
	}
}

func TestParseModelResponseJSON(t *testing.T) {
	resp := parseModelResponse(`{"enhanced_text": "Click the save button.", "confidence": 0.87}`)
	if resp.EnhancedText != "Click the save button." {
		t.Fatalf("unexpected text: %q", resp.EnhancedText)
	}
	if resp.Confidence != 0.87 {
		t.Fatalf("unexpected confidence: %v", resp.Confidence)
	}
}

func TestParseModelResponseFencedJSON(t *testing.T) {
	raw := "```json\n{\"enhanced_text\": \"Open settings.\", \"confidence\": 1.4}\n```"
	resp := parseModelResponse(raw)
	if resp.EnhancedText != "Open settings." {
		t.Fatalf("unexpected text: %q", resp.EnhancedText)
	}
	if resp.Confidence != 1 {
		t.Fatalf("confidence not clamped: %v", resp.Confidence)
	}
}

func TestParseModelResponseProseFallback(t *testing.T) {
	resp := parseModelResponse("The step looks fine, but mention the toolbar.")
	if resp.EnhancedText != "The step looks fine, but mention the toolbar." {
		t.Fatalf("unexpected text: %q", resp.EnhancedText)
	}
	if resp.Confidence != 0.5 {
		t.Fatalf("unexpected fallback confidence: %v", resp.Confidence)
	}
}

func TestLocalProviderDeterministic(t *testing.T) {
	provider := NewLocalProvider()
	ctx := context.Background()
	first, err := provider.Enhance(ctx, Request{Question: "q", StepText: "  click   save "})
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	second, err := provider.Enhance(ctx, Request{Question: "q", StepText: "  click   save "})
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if first != second {
		t.Fatalf("local provider not deterministic: %+v vs %+v", first, second)
	}
	if first.EnhancedText != "Click save." {
		t.Fatalf("unexpected cleanup: %q", first.EnhancedText)
	}
}

func TestResultCacheEvictsOldest(t *testing.T) {
	cache := newResultCache(2)
	cache.put("a", Response{EnhancedText: "a"})
	cache.put("b", Response{EnhancedText: "b"})
	cache.put("c", Response{EnhancedText: "c"})
	if _, ok := cache.get("a"); ok {
		t.Fatalf("oldest entry not evicted")
	}
	if _, ok := cache.get("b"); !ok {
		t.Fatalf("recent entry evicted")
	}
	if _, ok := cache.get("c"); !ok {
		t.Fatalf("newest entry missing")
	}
}
