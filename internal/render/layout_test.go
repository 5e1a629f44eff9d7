// File path: internal/render/layout_test.go
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"faqforge/internal/faq"
)

func sampleDoc() faq.Document {
	return faq.Document{
		Identity: "faq-1",
		Version:  1,
		Question: "How do I export a report?",
		Summary:  "Exporting basics.",
		Notes:    "Admins only.",
		Steps: []faq.StepRecord{
			{Index: 0, UserText: "click save", AIText: "Click the Save button.", AIConfidence: 0.9, Source: faq.SourceUserEntered},
			{Index: 1, UserText: "click export", Query: "SELECT * FROM reports", Source: faq.SourceUserEntered, EnhancementPending: true},
			{Index: 2, Source: faq.SourceUserEntered, EnhancementPending: true},
		},
	}
}

func textBlocks(blocks []block) []string {
	var out []string
	for _, b := range blocks {
		if b.kind == blockText {
			out = append(out, b.text)
		}
	}
	return out
}

func TestUserVariantNeverLeaksAIText(t *testing.T) {
	doc := sampleDoc()
	blocks, err := layout(doc, faq.VariantUser)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	for _, text := range textBlocks(blocks) {
		for _, step := range doc.Steps {
			if step.AIText != "" && text == step.AIText && text != step.UserText {
				t.Fatalf("user render contains AI text: %q", text)
			}
		}
	}
	joined := strings.Join(textBlocks(blocks), "\n")
	if !strings.Contains(joined, "click save") || !strings.Contains(joined, "click export") {
		t.Fatalf("user render missing user text: %q", joined)
	}
	if strings.Contains(joined, pendingPlaceholder) {
		t.Fatalf("user render contains pending marker")
	}
}

func TestAIVariantFallbackOrder(t *testing.T) {
	doc := sampleDoc()
	blocks, err := layout(doc, faq.VariantAIEnhanced)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	joined := strings.Join(textBlocks(blocks), "\n")
	if !strings.Contains(joined, "Click the Save button.") {
		t.Fatalf("ai render missing enhancement: %q", joined)
	}
	if !strings.Contains(joined, "click export") {
		t.Fatalf("ai render missing user fallback: %q", joined)
	}
	if !strings.Contains(joined, pendingPlaceholder) {
		t.Fatalf("ai render missing pending placeholder for empty step: %q", joined)
	}
}

func TestLayoutNeverOmitsSteps(t *testing.T) {
	doc := sampleDoc()
	for _, variant := range []faq.Variant{faq.VariantUser, faq.VariantAIEnhanced} {
		blocks, err := layout(doc, variant)
		if err != nil {
			t.Fatalf("layout %s: %v", variant, err)
		}
		for i := range doc.Steps {
			marker := fmt.Sprintf("[Step %d]", i+1)
			found := false
			for _, b := range blocks {
				if b.kind == blockLabel && b.text == marker {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("variant %s omits %s", variant, marker)
			}
		}
	}
}

func TestLayoutIncludesQueryAndScreenshotSections(t *testing.T) {
	doc := sampleDoc()
	doc.Steps[0].ScreenshotRef = "shot.png"
	blocks, err := layout(doc, faq.VariantUser)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var sawQueryLabel, sawQueryText, sawImage bool
	for _, b := range blocks {
		switch {
		case b.kind == blockLabel && b.text == "[Query Template]":
			sawQueryLabel = true
		case b.kind == blockText && b.text == "SELECT * FROM reports":
			sawQueryText = true
		case b.kind == blockImage && b.ref == "shot.png":
			sawImage = true
		}
	}
	if !sawQueryLabel || !sawQueryText {
		t.Fatalf("query template section missing")
	}
	if !sawImage {
		t.Fatalf("screenshot block missing")
	}
}

func TestLayoutRejectsNonContiguousSteps(t *testing.T) {
	doc := sampleDoc()
	doc.Steps[2].Index = 5
	if _, err := layout(doc, faq.VariantUser); !errors.Is(err, faq.ErrIndexGap) {
		t.Fatalf("expected ErrIndexGap, got %v", err)
	}
}

type failingResolver struct{}

func (failingResolver) Resolve(ctx context.Context, ref string) ([]byte, error) {
	return nil, fmt.Errorf("ref %q: %w", ref, faq.ErrAssetUnavailable)
}

func TestRenderProducesDocxBytes(t *testing.T) {
	doc := sampleDoc()
	doc.Steps[0].ScreenshotRef = "missing.png"
	renderer := New(failingResolver{})
	data, err := renderer.Render(context.Background(), doc, faq.VariantAIEnhanced)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty render output")
	}
	// DOCX is a zip container; the magic bytes are a cheap sanity check.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("output does not look like a docx container: % x", data[:4])
	}
}
