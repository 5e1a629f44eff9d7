// File path: internal/enhance/local.go
package enhance

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// LocalProvider is a deterministic offline fallback. It tidies the step text
// instead of rewriting it, so documents stay usable when no model backend is
// configured.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Enhance(ctx context.Context, req Request) (Response, error) {
	text := strings.Join(strings.Fields(req.StepText), " ")
	if text == "" {
		return Response{}, fmt.Errorf("no step text provided")
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	text = string(runes)
	if !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		text += "."
	}
	return Response{EnhancedText: text, Confidence: 0.3}, nil
}

func (l *LocalProvider) Name() string {
	return "local"
}
